package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ROBilling is one reconciled repair-order billing row. Identity within a
// business is the RO number; amounts come in as spreadsheet currency cells
// so they are kept as decimals end to end.
type ROBilling struct {
	ID             int             `gorm:"primary_key" json:"id"`
	BusinessId     string          `gorm:"uniqueIndex:idx_ro_billing_key;not null" json:"business_id"`
	RoNumber       string          `gorm:"uniqueIndex:idx_ro_billing_key;size:100;not null" json:"ro_number"`
	UploadedFileId int             `gorm:"index" json:"uploaded_file_id"`
	RoDate         string          `gorm:"size:20" json:"ro_date"`
	CustomerName   string          `gorm:"size:255" json:"customer_name"`
	Vin            string          `gorm:"size:50;index" json:"vin"`
	Model          string          `gorm:"size:100" json:"model"`
	ServiceAdvisor string          `gorm:"size:100" json:"service_advisor"`
	LabourAmount   decimal.Decimal `gorm:"type:decimal(16,2);default:0.00" json:"labour_amount"`
	PartsAmount    decimal.Decimal `gorm:"type:decimal(16,2);default:0.00" json:"parts_amount"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(16,2);default:0.00" json:"total_amount"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}
