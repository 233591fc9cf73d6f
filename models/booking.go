package models

import (
	"time"
)

// Booking is one reconciled booking-list row, keyed by vehicle registration
// number within a business. BookingDate keeps the normalized dd/mm/yyyy text
// produced during ingestion; the VIN matcher parses it back when it needs a
// calendar comparison.
type Booking struct {
	ID             int       `gorm:"primary_key" json:"id"`
	BusinessId     string    `gorm:"uniqueIndex:idx_booking_key;not null" json:"business_id"`
	RegistrationNo string    `gorm:"uniqueIndex:idx_booking_key;size:100;not null" json:"registration_no"`
	UploadedFileId int       `gorm:"index" json:"uploaded_file_id"`
	Vin            string    `gorm:"size:50;index" json:"vin"`
	BookingDate    string    `gorm:"size:20" json:"booking_date"`
	BookingTime    string    `gorm:"size:20" json:"booking_time"`
	CustomerName   string    `gorm:"size:255" json:"customer_name"`
	Phone          string    `gorm:"size:50" json:"phone"`
	Model          string    `gorm:"size:100" json:"model"`
	ServiceAdvisor string    `gorm:"size:100" json:"service_advisor"`
	WorkType       string    `gorm:"size:100" json:"work_type"`
	Confirmed      *bool     `gorm:"default:false" json:"confirmed"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
