package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OperationsPart is one reconciled operations/parts row, keyed by part code
// within a business. Part code "0" is rejected upstream by validation.
type OperationsPart struct {
	ID             int             `gorm:"primary_key" json:"id"`
	BusinessId     string          `gorm:"uniqueIndex:idx_operations_part_key;not null" json:"business_id"`
	PartCode       string          `gorm:"uniqueIndex:idx_operations_part_key;size:100;not null" json:"part_code"`
	UploadedFileId int             `gorm:"index" json:"uploaded_file_id"`
	PartName       string          `gorm:"size:255" json:"part_name"`
	RoNumber       string          `gorm:"size:100" json:"ro_number"`
	IssueDate      string          `gorm:"size:20" json:"issue_date"`
	Quantity       decimal.Decimal `gorm:"type:decimal(16,2);default:0.00" json:"quantity"`
	UnitPrice      decimal.Decimal `gorm:"type:decimal(16,2);default:0.00" json:"unit_price"`
	Amount         decimal.Decimal `gorm:"type:decimal(16,2);default:0.00" json:"amount"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}
