package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestRecordKeyOf(t *testing.T) {
	single := RecordKey{Fields: []string{"ro_number"}}
	if got := single.KeyOf(map[string]string{"ro_number": " 100 "}); got != "100" {
		t.Errorf("single key = %q", got)
	}

	composite := RecordKey{Fields: []string{"ro_number", "vin"}}
	row := map[string]string{"ro_number": "700", "vin": " ma3erlf1s00123456 "}
	if got := composite.KeyOf(row); got != "700|MA3ERLF1S00123456" {
		t.Errorf("composite key = %q", got)
	}
}

func TestSpecForFileType(t *testing.T) {
	for _, fileType := range []FileType{
		FileTypeROBilling, FileTypeWarranty, FileTypeBookingList,
		FileTypeOperationsPart, FileTypeRepairOrderList,
	} {
		spec, err := SpecForFileType(fileType)
		if err != nil {
			t.Fatalf("%s: %v", fileType, err)
		}
		for _, keyField := range spec.Key.Fields {
			for _, assigned := range spec.AssignColumns {
				if assigned == keyField {
					t.Errorf("%s: key column %q must not be in the assignment set", fileType, keyField)
				}
			}
		}
		if spec.AssignColumns[0] != "uploaded_file_id" {
			t.Errorf("%s: upserts must rebind uploaded_file_id", fileType)
		}
	}

	if _, err := SpecForFileType(FileType("bogus")); err == nil {
		t.Error("expected error for unknown file type")
	}
}

func TestRecordSpecBuild(t *testing.T) {
	spec, err := SpecForFileType(FileTypeROBilling)
	if err != nil {
		t.Fatal(err)
	}
	record, ok := spec.Build("biz-1", 7, map[string]string{
		"ro_number":    " 100 ",
		"vin":          "ma3erlf1s00123456",
		"total_amount": "1500.50",
	}).(*ROBilling)
	if !ok {
		t.Fatal("Build did not return *ROBilling")
	}
	if record.RoNumber != "100" {
		t.Errorf("RoNumber = %q", record.RoNumber)
	}
	if record.Vin != "MA3ERLF1S00123456" {
		t.Errorf("Vin = %q", record.Vin)
	}
	if record.UploadedFileId != 7 || record.BusinessId != "biz-1" {
		t.Errorf("ownership fields: file=%d business=%q", record.UploadedFileId, record.BusinessId)
	}
	if !record.TotalAmount.Equal(decimal.RequireFromString("1500.50")) {
		t.Errorf("TotalAmount = %s", record.TotalAmount)
	}
}

func TestParseFileType(t *testing.T) {
	if _, err := ParseFileType("ro_billing"); err != nil {
		t.Errorf("ro_billing should parse: %v", err)
	}
	if _, err := ParseFileType("nonsense"); err == nil {
		t.Error("expected error for unknown file type")
	}
}
