package workflow

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/mmdatafocus/autoservice_backend/config"
	"github.com/mmdatafocus/autoservice_backend/models"
	"github.com/mmdatafocus/autoservice_backend/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// IngestRows runs the full pipeline for one parsed spreadsheet: column
// mapping, batch validation, fingerprinting, case classification and the
// reconciliation transaction. The returned UploadedFile carries the final
// status either way; on error it is "failed" with the cause recorded and no
// business record from this batch persisted.
func IngestRows(ctx context.Context, businessId string, fileType models.FileType, fileName string, uploadedBy string, rawRows []map[string]string) (*models.UploadedFile, error) {
	logger := config.GetLogger()

	if businessId == "" {
		return nil, errors.New("business id is required")
	}
	if !fileType.Valid() {
		return nil, errors.New("invalid file type")
	}
	if len(rawRows) == 0 {
		return nil, errors.New("the uploaded file has no data rows")
	}

	rows := make([]map[string]string, len(rawRows))
	for i, raw := range rawRows {
		rows[i] = MapColumns(raw, fileType)
	}

	contentHash, err := Fingerprint(rows, fileType)
	if err != nil {
		config.LogError(logger, "reconcileWorkflow.go", "IngestRows", "Fingerprint", fileName, err)
		return nil, err
	}

	file, err := models.CreateUploadedFile(ctx, businessId, fileType, fileName, uploadedBy, len(rows), contentHash)
	if err != nil {
		config.LogError(logger, "reconcileWorkflow.go", "IngestRows", "CreateUploadedFile", fileName, err)
		return nil, err
	}

	if err := ValidateBatch(rows, fileType); err != nil {
		_ = models.MarkUploadedFileFailed(ctx, file, err)
		return file, err
	}

	classification, err := ClassifyUpload(ctx, businessId, fileType, rows, contentHash)
	if err != nil {
		config.LogError(logger, "reconcileWorkflow.go", "IngestRows", "ClassifyUpload", file.ID, err)
		_ = models.MarkUploadedFileFailed(ctx, file, err)
		return file, err
	}

	if err := Reconcile(ctx, file, rows, classification); err != nil {
		config.LogError(logger, "reconcileWorkflow.go", "IngestRows", "Reconcile", file.ID, err)
		_ = models.MarkUploadedFileFailed(ctx, file, err)
		return file, err
	}
	return file, nil
}

// rowWriteError tags a failed write with its 1-based data row number.
// Error 1062 means a unique index outside the upsert's conflict target
// rejected the row; the upsert already absorbs key collisions.
func rowWriteError(rowNumber int, err error) error {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return fmt.Errorf("row %d: duplicate key outside the business key: %w", rowNumber, err)
	}
	return fmt.Errorf("row %d: %w", rowNumber, err)
}

// Reconcile applies one classified batch inside a single transaction.
// Every row goes through an upsert keyed on (business key, business): rows
// the classifier saw as existing update in place, new rows insert, and a key
// created by a concurrent upload mid-batch degrades to an update instead of
// a duplicate-key failure. Key columns are never in the assignment set, so
// an update can't rewrite a record's identity. Any row error rolls the whole
// batch back.
func Reconcile(ctx context.Context, file *models.UploadedFile, rows []map[string]string, classification *Classification) error {
	spec, err := models.SpecForFileType(file.FileType)
	if err != nil {
		return err
	}

	// Best-effort cross-instance serialization before touching the DB.
	if err := utils.BusinessLock(ctx, file.BusinessId, "ingest", "reconcileWorkflow.go", "Reconcile"); err != nil {
		return err
	}

	db := config.GetDB()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := AcquireBusinessIngestLock(tx, file.BusinessId); err != nil {
			return err
		}
		defer ReleaseBusinessIngestLock(tx, file.BusinessId)

		conflictColumns := make([]clause.Column, len(spec.ConflictColumns))
		for i, column := range spec.ConflictColumns {
			conflictColumns[i] = clause.Column{Name: column}
		}
		upsert := clause.OnConflict{
			Columns:   conflictColumns,
			DoUpdates: clause.AssignmentColumns(spec.AssignColumns),
		}

		// Rows are written in file order, not partition order.
		for i, row := range rows {
			record := spec.Build(file.BusinessId, file.ID, row)
			if err := tx.Clauses(upsert).Create(record).Error; err != nil {
				return rowWriteError(i+1, err)
			}
		}

		inserted := len(classification.NewRows)
		updated := len(classification.ExistingRows)
		return models.MarkUploadedFileCompleted(tx, ctx, file, classification.Case, inserted, updated)
	})
}
