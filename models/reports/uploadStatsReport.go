package reports

import (
	"context"
	"errors"
	"time"

	"github.com/mmdatafocus/autoservice_backend/config"
	"github.com/mmdatafocus/autoservice_backend/models"
	"github.com/mmdatafocus/autoservice_backend/utils"
)

type FileTypeStats struct {
	FileType      models.FileType `json:"file_type"`
	UploadCount   int             `json:"upload_count"`
	FailedCount   int             `json:"failed_count"`
	InsertedTotal int             `json:"inserted_total"`
	UpdatedTotal  int             `json:"updated_total"`
	RecordCount   int64           `json:"record_count"`
	LastUploadAt  *time.Time      `json:"last_upload_at"`
}

type UploadStatsResponse struct {
	TotalUploads     int             `json:"total_uploads"`
	CompletedUploads int             `json:"completed_uploads"`
	FailedUploads    int             `json:"failed_uploads"`
	ByFileType       []FileTypeStats `json:"by_file_type"`
}

func uploadStatsCacheKey(businessId string) string {
	return "UploadStatsReport:" + businessId
}

// InvalidateUploadStats drops the cached report for a business. Called after
// every ingestion attempt and every upload deletion.
func InvalidateUploadStats(businessId string) {
	cacheInvalidate(uploadStatsCacheKey(businessId))
}

func recordCount(ctx context.Context, businessId string, fileType models.FileType) (int64, error) {
	switch fileType {
	case models.FileTypeROBilling:
		return utils.ResourceCountWhere[models.ROBilling](ctx, businessId, "1 = 1")
	case models.FileTypeWarranty:
		return utils.ResourceCountWhere[models.WarrantyClaim](ctx, businessId, "1 = 1")
	case models.FileTypeBookingList:
		return utils.ResourceCountWhere[models.Booking](ctx, businessId, "1 = 1")
	case models.FileTypeOperationsPart:
		return utils.ResourceCountWhere[models.OperationsPart](ctx, businessId, "1 = 1")
	case models.FileTypeRepairOrderList:
		return utils.ResourceCountWhere[models.RepairOrder](ctx, businessId, "1 = 1")
	default:
		return 0, errors.New("invalid file type")
	}
}

// GetUploadStats aggregates upload history and stored-record counts per file
// type for the dashboard's ingestion overview.
func GetUploadStats(ctx context.Context) (*UploadStatsResponse, error) {
	started := time.Now()
	defer logSlowReport(ctx, "upload_stats", started, nil)

	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	cacheKey := uploadStatsCacheKey(businessId)
	if reportCacheEnabled() {
		var cached UploadStatsResponse
		if exists, err := cacheGet(cacheKey, &cached); err == nil && exists {
			return &cached, nil
		}
	}

	db := config.GetDB()

	var rows []struct {
		FileType      models.FileType
		UploadCount   int
		CompletedCnt  int
		FailedCount   int
		InsertedTotal int
		UpdatedTotal  int
		LastUploadAt  *time.Time
	}
	query := `
	SELECT
		file_type,
		COUNT(*) AS upload_count,
		SUM(CASE WHEN status = 'completed' THEN 1 ELSE 0 END) AS completed_cnt,
		SUM(CASE WHEN status = 'failed' THEN 1 ELSE 0 END) AS failed_count,
		COALESCE(SUM(inserted_count), 0) AS inserted_total,
		COALESCE(SUM(updated_count), 0) AS updated_total,
		MAX(created_at) AS last_upload_at
	FROM uploaded_files
	WHERE business_id = ?
	GROUP BY file_type
	ORDER BY file_type`
	if err := db.WithContext(ctx).Raw(query, businessId).Scan(&rows).Error; err != nil {
		return nil, err
	}

	response := UploadStatsResponse{ByFileType: []FileTypeStats{}}
	for _, row := range rows {
		count, err := recordCount(ctx, businessId, row.FileType)
		if err != nil {
			return nil, err
		}
		response.TotalUploads += row.UploadCount
		response.CompletedUploads += row.CompletedCnt
		response.FailedUploads += row.FailedCount
		response.ByFileType = append(response.ByFileType, FileTypeStats{
			FileType:      row.FileType,
			UploadCount:   row.UploadCount,
			FailedCount:   row.FailedCount,
			InsertedTotal: row.InsertedTotal,
			UpdatedTotal:  row.UpdatedTotal,
			RecordCount:   count,
			LastUploadAt:  row.LastUploadAt,
		})
	}

	if reportCacheEnabled() {
		_ = cacheSet(cacheKey, &response, reportCacheTTL())
	}
	return &response, nil
}
