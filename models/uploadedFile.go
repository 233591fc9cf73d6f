package models

import (
	"context"
	"errors"
	"time"

	"github.com/mmdatafocus/autoservice_backend/config"
	"github.com/mmdatafocus/autoservice_backend/utils"
	"gorm.io/gorm"
)

// UploadedFile represents one ingested spreadsheet. It is created in
// "processing" state and finalized exactly once to completed/failed;
// afterwards it is only ever touched by explicit deletion (which cascades
// to the business records it owns).
type UploadedFile struct {
	ID            int           `gorm:"primary_key" json:"id"`
	BusinessId    string        `gorm:"index;not null" json:"business_id"`
	FileType      FileType      `gorm:"size:30;index;not null" json:"file_type"`
	FileName      string        `gorm:"size:255" json:"file_name"`
	UploadedBy    string        `gorm:"size:100" json:"uploaded_by"`
	RowCount      int           `gorm:"not null;default:0" json:"row_count"`
	ContentHash   string        `gorm:"size:64;index" json:"content_hash"`
	Status        UploadStatus  `gorm:"size:20;not null;default:pending" json:"status"`
	ReconcileCase ReconcileCase `gorm:"size:20" json:"reconcile_case"`
	InsertedCount int           `gorm:"not null;default:0" json:"inserted_count"`
	UpdatedCount  int           `gorm:"not null;default:0" json:"updated_count"`
	ErrorMessage  string        `gorm:"type:text" json:"error_message"`
	CreatedAt     time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

func CreateUploadedFile(ctx context.Context, businessId string, fileType FileType, fileName string, uploadedBy string, rowCount int, contentHash string) (*UploadedFile, error) {
	if businessId == "" {
		return nil, errors.New("business id is required")
	}
	if !fileType.Valid() {
		return nil, errors.New("invalid file type")
	}

	file := UploadedFile{
		BusinessId:  businessId,
		FileType:    fileType,
		FileName:    fileName,
		UploadedBy:  uploadedBy,
		RowCount:    rowCount,
		ContentHash: contentHash,
		Status:      UploadStatusProcessing,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&file).Error; err != nil {
		return nil, err
	}
	return &file, nil
}

// MarkUploadedFileCompleted finalizes the record with the classified case and
// the insert/update split. Uses tx so the finalization commits atomically
// with the reconciled rows.
func MarkUploadedFileCompleted(tx *gorm.DB, ctx context.Context, file *UploadedFile, reconcileCase ReconcileCase, inserted int, updated int) error {
	return tx.WithContext(ctx).Model(file).Updates(map[string]interface{}{
		"status":         UploadStatusCompleted,
		"reconcile_case": reconcileCase,
		"inserted_count": inserted,
		"updated_count":  updated,
	}).Error
}

// MarkUploadedFileFailed records the failure outside any transaction: the
// failed status must survive the reconciliation rollback.
func MarkUploadedFileFailed(ctx context.Context, file *UploadedFile, cause error) error {
	db := config.GetDB()
	message := ""
	if cause != nil {
		message = cause.Error()
	}
	return db.WithContext(ctx).Model(file).Updates(map[string]interface{}{
		"status":        UploadStatusFailed,
		"error_message": message,
	}).Error
}

// FindDuplicateUpload reports whether a prior completed upload of the same
// business + file type carries an identical content hash.
func FindDuplicateUpload(ctx context.Context, businessId string, fileType FileType, contentHash string) (bool, error) {
	db := config.GetDB()
	var count int64
	err := db.WithContext(ctx).Model(&UploadedFile{}).
		Where("business_id = ? AND file_type = ? AND content_hash = ? AND status = ?",
			businessId, fileType, contentHash, UploadStatusCompleted).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func GetUploadedFile(ctx context.Context, businessId string, id int) (*UploadedFile, error) {
	return utils.FetchModel[UploadedFile](ctx, businessId, id)
}

func ListUploadedFiles(ctx context.Context, businessId string, fileType *FileType) ([]*UploadedFile, error) {
	if businessId == "" {
		return nil, errors.New("business id is required")
	}

	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Where("business_id = ?", businessId)
	if fileType != nil && *fileType != "" {
		dbCtx = dbCtx.Where("file_type = ?", *fileType)
	}
	var results []*UploadedFile
	if err := dbCtx.Order("created_at DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// DeleteUploadedFile removes the upload record and every business record
// that still references it, in one transaction.
func DeleteUploadedFile(ctx context.Context, businessId string, id int) (*UploadedFile, error) {
	file, err := utils.FetchModel[UploadedFile](ctx, businessId, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var delErr error
		switch file.FileType {
		case FileTypeROBilling:
			delErr = tx.Where("business_id = ? AND uploaded_file_id = ?", businessId, id).Delete(&ROBilling{}).Error
		case FileTypeWarranty:
			delErr = tx.Where("business_id = ? AND uploaded_file_id = ?", businessId, id).Delete(&WarrantyClaim{}).Error
		case FileTypeBookingList:
			delErr = tx.Where("business_id = ? AND uploaded_file_id = ?", businessId, id).Delete(&Booking{}).Error
		case FileTypeOperationsPart:
			delErr = tx.Where("business_id = ? AND uploaded_file_id = ?", businessId, id).Delete(&OperationsPart{}).Error
		case FileTypeRepairOrderList:
			delErr = tx.Where("business_id = ? AND uploaded_file_id = ?", businessId, id).Delete(&RepairOrder{}).Error
		default:
			delErr = errors.New("invalid file type")
		}
		if delErr != nil {
			return delErr
		}
		return tx.Delete(file).Error
	})
	if err != nil {
		return nil, err
	}
	return file, nil
}
