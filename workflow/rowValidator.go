package workflow

import (
	"fmt"
	"strings"

	"github.com/mmdatafocus/autoservice_backend/models"
)

const validationSampleLimit = 5

// ValidationError aggregates every business-key problem found in a batch.
// One bad row rejects the whole upload; nothing is persisted.
type ValidationError struct {
	FileType     models.FileType
	MissingField string
	MissingCount int
	SampleRows   []int
}

func (e *ValidationError) Error() string {
	if e.MissingCount == 0 {
		return fmt.Sprintf("column %q is missing from the uploaded %s file", e.MissingField, e.FileType)
	}
	samples := make([]string, len(e.SampleRows))
	for i, row := range e.SampleRows {
		samples[i] = fmt.Sprintf("%d", row)
	}
	return fmt.Sprintf("%d row(s) in the uploaded %s file have no %s (e.g. row %s)",
		e.MissingCount, e.FileType, e.MissingField, strings.Join(samples, ", "))
}

func invalidKeyValue(field string, value string) bool {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return true
	}
	// Dealer exports pad empty part-code cells with a literal zero.
	if field == "part_code" && trimmed == "0" {
		return true
	}
	return false
}

// ValidateBatch checks that every canonical row carries a usable value for
// each business-key field of its file type. Row numbers in the error are
// 1-based spreadsheet data rows.
func ValidateBatch(rows []map[string]string, fileType models.FileType) error {
	spec, err := models.SpecForFileType(fileType)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("the uploaded %s file has no data rows", fileType)
	}

	for _, field := range spec.Key.Fields {
		if _, ok := rows[0][field]; !ok {
			return &ValidationError{FileType: fileType, MissingField: field}
		}

		missing := 0
		var samples []int
		for i, row := range rows {
			if invalidKeyValue(field, row[field]) {
				missing++
				if len(samples) < validationSampleLimit {
					samples = append(samples, i+1)
				}
			}
		}
		if missing > 0 {
			return &ValidationError{
				FileType:     fileType,
				MissingField: field,
				MissingCount: missing,
				SampleRows:   samples,
			}
		}
	}
	return nil
}
