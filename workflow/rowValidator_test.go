package workflow

import (
	"errors"
	"testing"

	"github.com/mmdatafocus/autoservice_backend/models"
)

func TestValidateBatch_Passes(t *testing.T) {
	rows := []map[string]string{
		{"ro_number": "100"},
		{"ro_number": "101"},
	}
	if err := ValidateBatch(rows, models.FileTypeROBilling); err != nil {
		t.Fatalf("ValidateBatch: %v", err)
	}
}

func TestValidateBatch_MissingColumnHeader(t *testing.T) {
	rows := []map[string]string{
		{"customer_name": "Ko Ko"},
	}
	err := ValidateBatch(rows, models.FileTypeROBilling)
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("want ValidationError, got %v", err)
	}
	if validationErr.MissingField != "ro_number" {
		t.Errorf("MissingField = %q", validationErr.MissingField)
	}
}

func TestValidateBatch_EmptyValueRejectsWholeBatch(t *testing.T) {
	rows := []map[string]string{
		{"ro_number": "100", "vin": "MA3ERLF1S00123456"},
		{"ro_number": "101", "vin": "   "},
		{"ro_number": "102", "vin": ""},
	}
	err := ValidateBatch(rows, models.FileTypeRepairOrderList)
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("want ValidationError, got %v", err)
	}
	if validationErr.MissingField != "vin" {
		t.Errorf("MissingField = %q", validationErr.MissingField)
	}
	if validationErr.MissingCount != 2 {
		t.Errorf("MissingCount = %d, want 2", validationErr.MissingCount)
	}
	if len(validationErr.SampleRows) != 2 || validationErr.SampleRows[0] != 2 {
		t.Errorf("SampleRows = %v", validationErr.SampleRows)
	}
}

func TestValidateBatch_PartCodeZeroInvalid(t *testing.T) {
	rows := []map[string]string{
		{"part_code": "P-100"},
		{"part_code": "0"},
	}
	err := ValidateBatch(rows, models.FileTypeOperationsPart)
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("want ValidationError, got %v", err)
	}
	if validationErr.MissingCount != 1 {
		t.Errorf("MissingCount = %d, want 1", validationErr.MissingCount)
	}
}

func TestValidateBatch_EmptyBatch(t *testing.T) {
	if err := ValidateBatch(nil, models.FileTypeROBilling); err == nil {
		t.Error("expected error for empty batch")
	}
}

func TestValidateBatch_SampleRowsCappedAtFive(t *testing.T) {
	var rows []map[string]string
	for i := 0; i < 7; i++ {
		rows = append(rows, map[string]string{"ro_number": ""})
	}
	err := ValidateBatch(rows, models.FileTypeROBilling)
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("want ValidationError, got %v", err)
	}
	if validationErr.MissingCount != 7 {
		t.Errorf("MissingCount = %d, want 7", validationErr.MissingCount)
	}
	if len(validationErr.SampleRows) != 5 {
		t.Fatalf("SampleRows = %v, want 5 samples", validationErr.SampleRows)
	}
	if validationErr.SampleRows[0] != 1 || validationErr.SampleRows[4] != 5 {
		t.Errorf("SampleRows = %v", validationErr.SampleRows)
	}
}
