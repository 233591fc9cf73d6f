package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/autoservice_backend/models/reports"
	"github.com/mmdatafocus/autoservice_backend/utils"
	"github.com/mmdatafocus/autoservice_backend/workflow"
)

// vinMatchingHandler recomputes booking statuses against the current
// repair-order dataset. The workflow degrades to an empty result on internal
// faults, so this endpoint never fails a dashboard render.
func vinMatchingHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		businessId, _ := utils.GetBusinessIdFromContext(ctx)
		result := workflow.PerformVINMatching(ctx, businessId)
		c.JSON(http.StatusOK, gin.H{"data": result})
	}
}

func uploadStatsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := reports.GetUploadStats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": stats})
	}
}
