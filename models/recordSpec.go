package models

import (
	"context"
	"fmt"
	"strings"

	"github.com/mmdatafocus/autoservice_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RecordKey is the business identity of a record within a tenant. Most file
// types key on a single field; the repair-order list keys on a composite
// pair. The variant is resolved once per file type, never per row.
type RecordKey struct {
	Fields []string
}

// KeyOf builds the comparable key string for one canonical row. Values are
// trimmed, VIN components uppercased, and composite parts joined with "|".
func (k RecordKey) KeyOf(row map[string]string) string {
	parts := make([]string, 0, len(k.Fields))
	for _, field := range k.Fields {
		value := strings.TrimSpace(row[field])
		if field == "vin" {
			value = strings.ToUpper(value)
		}
		parts = append(parts, value)
	}
	return strings.Join(parts, "|")
}

// RecordSpec binds one file type to its persistence shape: the business key,
// the upsert column sets, and the row-to-model builder. The reconciliation
// engine is generic over this.
type RecordSpec struct {
	FileType        FileType
	Key             RecordKey
	ConflictColumns []string
	AssignColumns   []string
	Build           func(businessId string, uploadedFileId int, row map[string]string) interface{}
}

func rowDecimal(row map[string]string, field string) decimal.Decimal {
	value, err := utils.ParseDecimal(row[field])
	if err != nil {
		return decimal.Zero
	}
	return value
}

var recordSpecs = map[FileType]*RecordSpec{
	FileTypeROBilling: {
		FileType:        FileTypeROBilling,
		Key:             RecordKey{Fields: []string{"ro_number"}},
		ConflictColumns: []string{"business_id", "ro_number"},
		AssignColumns: []string{
			"uploaded_file_id", "ro_date", "customer_name", "vin", "model",
			"service_advisor", "labour_amount", "parts_amount", "total_amount",
		},
		Build: func(businessId string, uploadedFileId int, row map[string]string) interface{} {
			return &ROBilling{
				BusinessId:     businessId,
				RoNumber:       strings.TrimSpace(row["ro_number"]),
				UploadedFileId: uploadedFileId,
				RoDate:         row["ro_date"],
				CustomerName:   row["customer_name"],
				Vin:            strings.ToUpper(strings.TrimSpace(row["vin"])),
				Model:          row["model"],
				ServiceAdvisor: row["service_advisor"],
				LabourAmount:   rowDecimal(row, "labour_amount"),
				PartsAmount:    rowDecimal(row, "parts_amount"),
				TotalAmount:    rowDecimal(row, "total_amount"),
			}
		},
	},
	FileTypeWarranty: {
		FileType:        FileTypeWarranty,
		Key:             RecordKey{Fields: []string{"claim_number"}},
		ConflictColumns: []string{"business_id", "claim_number"},
		AssignColumns: []string{
			"uploaded_file_id", "ro_number", "claim_date", "vin", "model",
			"claim_amount", "claim_status",
		},
		Build: func(businessId string, uploadedFileId int, row map[string]string) interface{} {
			return &WarrantyClaim{
				BusinessId:     businessId,
				ClaimNumber:    strings.TrimSpace(row["claim_number"]),
				UploadedFileId: uploadedFileId,
				RoNumber:       row["ro_number"],
				ClaimDate:      row["claim_date"],
				Vin:            strings.ToUpper(strings.TrimSpace(row["vin"])),
				Model:          row["model"],
				ClaimAmount:    rowDecimal(row, "claim_amount"),
				ClaimStatus:    row["claim_status"],
			}
		},
	},
	FileTypeBookingList: {
		FileType:        FileTypeBookingList,
		Key:             RecordKey{Fields: []string{"registration_no"}},
		ConflictColumns: []string{"business_id", "registration_no"},
		AssignColumns: []string{
			"uploaded_file_id", "vin", "booking_date", "booking_time",
			"customer_name", "phone", "model", "service_advisor", "work_type", "confirmed",
		},
		Build: func(businessId string, uploadedFileId int, row map[string]string) interface{} {
			confirmed := row["confirmed"] == "true"
			return &Booking{
				BusinessId:     businessId,
				RegistrationNo: strings.TrimSpace(row["registration_no"]),
				UploadedFileId: uploadedFileId,
				Vin:            strings.ToUpper(strings.TrimSpace(row["vin"])),
				BookingDate:    row["booking_date"],
				BookingTime:    row["booking_time"],
				CustomerName:   row["customer_name"],
				Phone:          row["phone"],
				Model:          row["model"],
				ServiceAdvisor: row["service_advisor"],
				WorkType:       row["work_type"],
				Confirmed:      &confirmed,
			}
		},
	},
	FileTypeOperationsPart: {
		FileType:        FileTypeOperationsPart,
		Key:             RecordKey{Fields: []string{"part_code"}},
		ConflictColumns: []string{"business_id", "part_code"},
		AssignColumns: []string{
			"uploaded_file_id", "part_name", "ro_number", "issue_date",
			"quantity", "unit_price", "amount",
		},
		Build: func(businessId string, uploadedFileId int, row map[string]string) interface{} {
			return &OperationsPart{
				BusinessId:     businessId,
				PartCode:       strings.TrimSpace(row["part_code"]),
				UploadedFileId: uploadedFileId,
				PartName:       row["part_name"],
				RoNumber:       row["ro_number"],
				IssueDate:      row["issue_date"],
				Quantity:       rowDecimal(row, "quantity"),
				UnitPrice:      rowDecimal(row, "unit_price"),
				Amount:         rowDecimal(row, "amount"),
			}
		},
	},
	FileTypeRepairOrderList: {
		FileType:        FileTypeRepairOrderList,
		Key:             RecordKey{Fields: []string{"ro_number", "vin"}},
		ConflictColumns: []string{"business_id", "ro_number", "vin"},
		AssignColumns: []string{
			"uploaded_file_id", "ro_date", "registration_no", "customer_name",
			"model", "service_advisor", "ro_status",
		},
		Build: func(businessId string, uploadedFileId int, row map[string]string) interface{} {
			return &RepairOrder{
				BusinessId:     businessId,
				RoNumber:       strings.TrimSpace(row["ro_number"]),
				Vin:            strings.ToUpper(strings.TrimSpace(row["vin"])),
				UploadedFileId: uploadedFileId,
				RoDate:         row["ro_date"],
				RegistrationNo: row["registration_no"],
				CustomerName:   row["customer_name"],
				Model:          row["model"],
				ServiceAdvisor: row["service_advisor"],
				RoStatus:       row["ro_status"],
			}
		},
	},
}

func SpecForFileType(fileType FileType) (*RecordSpec, error) {
	spec, ok := recordSpecs[fileType]
	if !ok {
		return nil, fmt.Errorf("no record spec for file type %q", fileType)
	}
	return spec, nil
}

func (s *RecordSpec) model() interface{} {
	switch s.FileType {
	case FileTypeROBilling:
		return &ROBilling{}
	case FileTypeWarranty:
		return &WarrantyClaim{}
	case FileTypeBookingList:
		return &Booking{}
	case FileTypeOperationsPart:
		return &OperationsPart{}
	default:
		return &RepairOrder{}
	}
}

// ExistingKeys loads the set of business keys already stored for this tenant
// and file type. The classifier compares incoming rows against this snapshot.
func (s *RecordSpec) ExistingKeys(ctx context.Context, db *gorm.DB, businessId string) (map[string]bool, error) {
	columns := make([]string, len(s.Key.Fields))
	copy(columns, s.Key.Fields)

	rows, err := db.WithContext(ctx).Model(s.model()).
		Select(columns).
		Where("business_id = ?", businessId).
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	keys := map[string]bool{}
	values := make([]string, len(columns))
	scanTargets := make([]interface{}, len(columns))
	for i := range values {
		scanTargets[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(scanTargets...); err != nil {
			return nil, err
		}
		row := map[string]string{}
		for i, field := range s.Key.Fields {
			row[field] = values[i]
		}
		keys[s.Key.KeyOf(row)] = true
	}
	return keys, rows.Err()
}
