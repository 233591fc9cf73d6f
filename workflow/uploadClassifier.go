package workflow

import (
	"context"
	"fmt"

	"github.com/mmdatafocus/autoservice_backend/config"
	"github.com/mmdatafocus/autoservice_backend/models"
)

// ClassificationError marks a failure while deciding the reconciliation
// case, as opposed to a row-content problem (ValidationError).
type ClassificationError struct {
	Stage string
	Err   error
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("upload classification failed at %s: %v", e.Stage, e.Err)
}

func (e *ClassificationError) Unwrap() error {
	return e.Err
}

// Classification is the classifier's verdict for one incoming batch: which
// reconciliation case applies and how the rows split between keys already in
// the store and keys never seen before.
type Classification struct {
	Case         models.ReconcileCase
	ExistingRows []map[string]string
	NewRows      []map[string]string
}

// partitionRows splits canonical rows by membership of their business key in
// the existing-key snapshot. Pure; row order is preserved within each side.
func partitionRows(rows []map[string]string, key models.RecordKey, existing map[string]bool) (existingRows, newRows []map[string]string) {
	for _, row := range rows {
		if existing[key.KeyOf(row)] {
			existingRows = append(existingRows, row)
		} else {
			newRows = append(newRows, row)
		}
	}
	return existingRows, newRows
}

// ClassifyUpload decides the reconciliation case for a validated batch.
// An exact fingerprint duplicate wins outright: a file the tenant already
// uploaded is a refresh of every row, never a mixed file, even when some of
// its keys would look new against the store.
func ClassifyUpload(ctx context.Context, businessId string, fileType models.FileType, rows []map[string]string, contentHash string) (*Classification, error) {
	spec, err := models.SpecForFileType(fileType)
	if err != nil {
		return nil, &ClassificationError{Stage: "record spec lookup", Err: err}
	}

	duplicate, err := models.FindDuplicateUpload(ctx, businessId, fileType, contentHash)
	if err != nil {
		return nil, &ClassificationError{Stage: "duplicate lookup", Err: err}
	}
	if duplicate {
		return &Classification{
			Case:         models.ReconcileCaseDuplicateFile,
			ExistingRows: rows,
		}, nil
	}
	existingKeys, err := spec.ExistingKeys(ctx, config.GetDB(), businessId)
	if err != nil {
		return nil, &ClassificationError{Stage: "existing key snapshot", Err: err}
	}

	existingRows, newRows := partitionRows(rows, spec.Key, existingKeys)
	if len(existingRows) == 0 {
		return &Classification{
			Case:    models.ReconcileCaseNewFile,
			NewRows: rows,
		}, nil
	}
	return &Classification{
		Case:         models.ReconcileCaseMixedFile,
		ExistingRows: existingRows,
		NewRows:      newRows,
	}, nil
}
