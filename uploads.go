package main

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/autoservice_backend/config"
	"github.com/mmdatafocus/autoservice_backend/models"
	"github.com/mmdatafocus/autoservice_backend/models/reports"
	"github.com/mmdatafocus/autoservice_backend/utils"
	"github.com/mmdatafocus/autoservice_backend/workflow"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

const maxUploadSizeBytes int64 = 10 * 1024 * 1024

// readSpreadsheetRows reads the first sheet of an uploaded workbook into
// header-keyed rows. The first row is headers; fully empty data rows are
// skipped. Short rows are padded implicitly (missing cells stay absent).
func readSpreadsheetRows(f *excelize.File) ([]map[string]string, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("the workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("unable to read sheet: %v", err)
	}
	if len(rows) < 2 {
		return nil, errors.New("the sheet has no data rows")
	}

	headers := rows[0]
	var result []map[string]string
	for _, row := range rows[1:] {
		record := make(map[string]string, len(headers))
		empty := true
		for i, header := range headers {
			if strings.TrimSpace(header) == "" {
				continue
			}
			value := ""
			if i < len(row) {
				value = row[i]
			}
			if strings.TrimSpace(value) != "" {
				empty = false
			}
			record[header] = value
		}
		if !empty {
			result = append(result, record)
		}
	}
	if len(result) == 0 {
		return nil, errors.New("the sheet has no data rows")
	}
	return result, nil
}

func uploadExcelHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := config.GetLogger()
		ctx := c.Request.Context()

		businessId, _ := utils.GetBusinessIdFromContext(ctx)
		username, _ := utils.GetUsernameFromContext(ctx)

		fileType, err := models.ParseFileType(c.Param("fileType"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
			return
		}
		if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".xlsx") {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid file type: only .xlsx files are allowed"})
			return
		}
		if fileHeader.Size > maxUploadSizeBytes {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file size exceeds 10MB limit"})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			config.LogError(logger, "uploads.go", "uploadExcelHandler", "FormFile.Open", fileHeader.Filename, err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "unable to read uploaded file"})
			return
		}
		defer file.Close()

		workbook, err := excelize.OpenReader(file)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("failed to open Excel file: %v", err)})
			return
		}
		defer workbook.Close()

		rawRows, err := readSpreadsheetRows(workbook)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		uploadedFile, err := workflow.IngestRows(ctx, businessId, fileType, fileHeader.Filename, username, rawRows)
		reports.InvalidateUploadStats(businessId)
		if err != nil {
			status := http.StatusBadRequest
			var validationErr *workflow.ValidationError
			if !errors.As(err, &validationErr) && uploadedFile != nil {
				status = http.StatusInternalServerError
			}
			response := gin.H{"error": err.Error()}
			if uploadedFile != nil {
				response["data"] = uploadedFile
			}
			c.JSON(status, response)
			return
		}

		logger.WithFields(logrus.Fields{
			"business_id":    businessId,
			"file_type":      fileType,
			"reconcile_case": uploadedFile.ReconcileCase,
			"inserted":       uploadedFile.InsertedCount,
			"updated":        uploadedFile.UpdatedCount,
		}).Info("[upload.completed]")

		c.JSON(http.StatusOK, gin.H{"data": uploadedFile})
	}
}

func listUploadsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		businessId, _ := utils.GetBusinessIdFromContext(ctx)

		var fileType *models.FileType
		if raw := strings.TrimSpace(c.Query("file_type")); raw != "" {
			parsed, err := models.ParseFileType(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			fileType = &parsed
		}

		files, err := models.ListUploadedFiles(ctx, businessId, fileType)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": files})
	}
}

func getUploadHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		businessId, _ := utils.GetBusinessIdFromContext(ctx)

		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid upload id"})
			return
		}

		file, err := models.GetUploadedFile(ctx, businessId, id)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "upload not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": file})
	}
}

func deleteUploadHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		businessId, _ := utils.GetBusinessIdFromContext(ctx)

		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid upload id"})
			return
		}

		file, err := models.DeleteUploadedFile(ctx, businessId, id)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		reports.InvalidateUploadStats(businessId)
		c.JSON(http.StatusOK, gin.H{"data": file})
	}
}
