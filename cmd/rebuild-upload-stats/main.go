// rebuild-upload-stats recomputes and re-caches the upload statistics report
// for every business (or one business via -business-id). Run it after manual
// data repairs or a cache flush so dashboards don't all pay the cold-read
// cost at once.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/mmdatafocus/autoservice_backend/config"
	"github.com/mmdatafocus/autoservice_backend/models"
	"github.com/mmdatafocus/autoservice_backend/models/reports"
	"github.com/mmdatafocus/autoservice_backend/utils"
)

func main() {
	businessID := flag.String("business-id", "", "Optional: rebuild only one business (uuid string). If empty, rebuilds all businesses.")
	flag.Parse()

	ctx := context.Background()
	config.ConnectDatabaseWithRetry()
	config.ConnectRedisWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil)")
		os.Exit(1)
	}

	ctx = utils.SetUserIdInContext(ctx, 0)
	ctx = utils.SetUserNameInContext(ctx, "RebuildUploadStats")

	var businesses []models.Business
	bizQuery := db.WithContext(ctx).Model(&models.Business{})
	if strings.TrimSpace(*businessID) != "" {
		bizQuery = bizQuery.Where("id = ?", strings.TrimSpace(*businessID))
	}
	if err := bizQuery.Find(&businesses).Error; err != nil {
		fmt.Fprintf(os.Stderr, "failed to list businesses: %v\n", err)
		os.Exit(1)
	}
	if len(businesses) == 0 {
		fmt.Fprintln(os.Stderr, "no businesses found")
		return
	}

	failed := 0
	for _, b := range businesses {
		bid := b.ID.String()
		bizCtx := utils.SetBusinessIdInContext(ctx, bid)

		reports.InvalidateUploadStats(bid)
		stats, err := reports.GetUploadStats(bizCtx)
		if err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "business %s: failed to rebuild upload stats: %v\n", bid, err)
			continue
		}
		fmt.Printf("business %s: uploads=%d completed=%d failed=%d file_types=%d\n",
			bid, stats.TotalUploads, stats.CompletedUploads, stats.FailedUploads, len(stats.ByFileType))
	}
	if failed > 0 {
		os.Exit(1)
	}
}
