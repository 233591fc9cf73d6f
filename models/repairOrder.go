package models

import (
	"time"
)

// RepairOrder is one reconciled repair-order-list row. Identity is the
// composite (RO number, VIN) pair within a business, so the same vehicle may
// appear under multiple repair orders without colliding.
type RepairOrder struct {
	ID             int       `gorm:"primary_key" json:"id"`
	BusinessId     string    `gorm:"uniqueIndex:idx_repair_order_key;not null" json:"business_id"`
	RoNumber       string    `gorm:"uniqueIndex:idx_repair_order_key;size:100;not null" json:"ro_number"`
	Vin            string    `gorm:"uniqueIndex:idx_repair_order_key;size:50;not null" json:"vin"`
	UploadedFileId int       `gorm:"index" json:"uploaded_file_id"`
	RoDate         string    `gorm:"size:20" json:"ro_date"`
	RegistrationNo string    `gorm:"size:100" json:"registration_no"`
	CustomerName   string    `gorm:"size:255" json:"customer_name"`
	Model          string    `gorm:"size:100" json:"model"`
	ServiceAdvisor string    `gorm:"size:100" json:"service_advisor"`
	RoStatus       string    `gorm:"size:50" json:"ro_status"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
