package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// WarrantyClaim is one reconciled warranty row, keyed by claim number
// within a business.
type WarrantyClaim struct {
	ID             int             `gorm:"primary_key" json:"id"`
	BusinessId     string          `gorm:"uniqueIndex:idx_warranty_key;not null" json:"business_id"`
	ClaimNumber    string          `gorm:"uniqueIndex:idx_warranty_key;size:100;not null" json:"claim_number"`
	UploadedFileId int             `gorm:"index" json:"uploaded_file_id"`
	RoNumber       string          `gorm:"size:100" json:"ro_number"`
	ClaimDate      string          `gorm:"size:20" json:"claim_date"`
	Vin            string          `gorm:"size:50;index" json:"vin"`
	Model          string          `gorm:"size:100" json:"model"`
	ClaimAmount    decimal.Decimal `gorm:"type:decimal(16,2);default:0.00" json:"claim_amount"`
	ClaimStatus    string          `gorm:"size:50" json:"claim_status"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}
