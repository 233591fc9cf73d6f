package models

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mmdatafocus/autoservice_backend/config"
	"github.com/mmdatafocus/autoservice_backend/utils"
)

// Business is the tenant (showroom/service center) every record is scoped to.
type Business struct {
	ID          uuid.UUID `gorm:"primary_key" json:"id"`
	Name        string    `gorm:"index;size:100;not null" json:"name" binding:"required"`
	ContactName string    `gorm:"size:100" json:"contact_name"`
	Email       string    `gorm:"size:255" json:"email"`
	Phone       string    `gorm:"size:20" json:"phone"`
	Address     string    `gorm:"type:text" json:"address"`
	City        string    `gorm:"size:100" json:"city"`
	// Timezone anchors "today"/"tomorrow" date windows for booking status.
	Timezone  string    `gorm:"size:50" json:"timezone"`
	IsActive  *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewBusiness struct {
	Name        string `json:"name" binding:"required"`
	ContactName string `json:"contact_name"`
	Email       string `json:"email" binding:"required"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	City        string `json:"city"`
	Timezone    string `json:"timezone"`
}

/*
caches:
	Business:$businessId
*/

func CreateBusiness(ctx context.Context, input *NewBusiness) (*Business, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, errors.New("business name is required")
	}
	if !utils.IsValidEmail(input.Email) {
		return nil, errors.New("invalid email")
	}

	business := Business{
		ID:          uuid.New(),
		Name:        input.Name,
		ContactName: input.ContactName,
		Email:       input.Email,
		Phone:       input.Phone,
		Address:     input.Address,
		City:        input.City,
		Timezone:    input.Timezone,
		IsActive:    utils.NewTrue(),
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&business).Error; err != nil {
		return nil, err
	}
	return &business, nil
}

// GetBusinessById reads through the redis cache.
func GetBusinessById(ctx context.Context, businessId string) (*Business, error) {
	if businessId == "" {
		return nil, errors.New("business id is required")
	}

	var business Business
	exists, err := config.GetRedisObject("Business:"+businessId, &business)
	if err != nil {
		return nil, err
	}
	if exists {
		return &business, nil
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Where("id = ?", businessId).First(&business).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	if err := config.SetRedisObject("Business:"+businessId, &business, 0); err != nil {
		return nil, err
	}
	return &business, nil
}
