// seed-admin creates or updates the admin console user (username: autoserviceAdmin).
// Admin users have role = 'A'.
//
// Usage (from backend directory):
//   DB_USER=... DB_PASSWORD=... DB_HOST=... DB_PORT=... DB_NAME=... go run ./cmd/seed-admin
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mmdatafocus/autoservice_backend/config"
	"github.com/mmdatafocus/autoservice_backend/models"
	"github.com/mmdatafocus/autoservice_backend/utils"
	"gorm.io/gorm"
)

const (
	adminUsername = "autoserviceAdmin"
	adminPassword = "Auto$ervice@dmin"
	adminName     = "AutoService Admin"
)

func main() {
	ctx := context.Background()
	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil). Set DB_* env vars.")
		os.Exit(1)
	}

	// The admin is attached to the first business in the DB and bypasses
	// tenant scoping.
	var biz models.Business
	if err := db.WithContext(ctx).Model(&models.Business{}).Select("id").First(&biz).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			fmt.Fprintln(os.Stderr, "no businesses found in DB. Create a business first, then rerun seed-admin.")
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "failed to lookup business: %v\n", err)
		os.Exit(1)
	}

	businessID := biz.ID.String()
	ctx = utils.SetBusinessIdInContext(ctx, businessID)
	ctx = utils.SetUserIdInContext(ctx, 1)
	ctx = utils.SetUserNameInContext(ctx, "Seed")
	ctx = utils.SetUsernameInContext(ctx, adminUsername)
	ctx = utils.SetIsAdminInContext(ctx, true)
	ctx = utils.SetSkipTenantScopeInContext(ctx, true)

	hashed, err := utils.HashPassword(adminPassword)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to hash password: %v\n", err)
		os.Exit(1)
	}
	hashedStr := string(hashed)

	var existing models.User
	err = db.WithContext(ctx).Model(&models.User{}).Where("username = ?", adminUsername).First(&existing).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			fmt.Fprintf(os.Stderr, "failed to lookup user: %v\n", err)
			os.Exit(1)
		}
		// Create new admin user
		u := models.User{
			Username:   adminUsername,
			Name:       adminName,
			Password:   hashedStr,
			IsActive:   utils.NewTrue(),
			Role:       models.UserRoleAdmin,
			BusinessId: businessID,
		}
		if err := db.WithContext(ctx).Create(&u).Error; err != nil {
			fmt.Fprintf(os.Stderr, "failed to create admin user: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Created admin user: username=%q (role=Admin)\n", adminUsername)
		return
	}

	// Update existing user: ensure password and admin role
	if err := db.WithContext(ctx).Model(&models.User{}).Where("username = ?", adminUsername).Updates(map[string]any{
		"password":    hashedStr,
		"name":        adminName,
		"is_active":   utils.NewTrue(),
		"business_id": businessID,
		"role":        models.UserRoleAdmin,
	}).Error; err != nil {
		fmt.Fprintf(os.Stderr, "failed to update admin user: %v\n", err)
		os.Exit(1)
	}
	_ = existing.RemoveInstanceRedis()
	fmt.Printf("Updated admin user: username=%q (role=Admin)\n", adminUsername)
}
