package workflow

import (
	"reflect"
	"testing"

	"github.com/mmdatafocus/autoservice_backend/models"
)

func TestMapColumns_AliasChain(t *testing.T) {
	row := map[string]string{
		"RO No":             "100",      // exact
		"  Service Advisor ": "U Aung",  // trimmed
		"total amount":      "1,500.50", // case-insensitive
		"Mystery Column":    "keep me",  // passthrough
	}
	got := MapColumns(row, models.FileTypeROBilling)

	if got["ro_number"] != "100" {
		t.Errorf("ro_number = %q", got["ro_number"])
	}
	if got["service_advisor"] != "U Aung" {
		t.Errorf("service_advisor = %q", got["service_advisor"])
	}
	if got["total_amount"] != "1500.50" {
		t.Errorf("total_amount = %q, want numeric-coerced 1500.50", got["total_amount"])
	}
	if got["Mystery Column"] != "keep me" {
		t.Errorf("unmatched header should pass through unchanged, got %q", got["Mystery Column"])
	}
}

func TestMapColumns_Coercions(t *testing.T) {
	row := map[string]string{
		"RO Date": "45931",
		"Labour":  "MMK 120,000",
		"Parts":   "junk",
	}
	got := MapColumns(row, models.FileTypeROBilling)

	if got["ro_date"] != "01/10/2025" {
		t.Errorf("ro_date = %q, want 01/10/2025", got["ro_date"])
	}
	if got["labour_amount"] != "120000" {
		t.Errorf("labour_amount = %q, want 120000", got["labour_amount"])
	}
	if got["parts_amount"] != "0" {
		t.Errorf("parts_amount = %q, want 0 on unparseable input", got["parts_amount"])
	}
}

func TestMapColumns_BooleanCoercion(t *testing.T) {
	for input, want := range map[string]string{
		"Y": "true", "yes": "true", "1": "true", "TRUE": "true",
		"N": "false", "no": "false", "": "false",
	} {
		row := map[string]string{"Confirmed": input, "Reg No": "1J-2345"}
		got := MapColumns(row, models.FileTypeBookingList)
		if got["confirmed"] != want {
			t.Errorf("Confirmed=%q: got %q, want %q", input, got["confirmed"], want)
		}
	}
}

func TestMapColumns_RegistrationRecovery(t *testing.T) {
	// (a) fixed alternate header list.
	got := MapColumns(map[string]string{"Vehicle No": "9K-4821"}, models.FileTypeBookingList)
	if got["registration_no"] != "9K-4821" {
		t.Errorf("alternate header: registration_no = %q", got["registration_no"])
	}

	// (b) fuzzy header containing "reg" with a plate-like value.
	got = MapColumns(map[string]string{"Customer Reg Info": "AB 123456"}, models.FileTypeBookingList)
	if got["registration_no"] != "AB 123456" {
		t.Errorf("fuzzy header: registration_no = %q", got["registration_no"])
	}

	// Fuzzy header with a short value must not be used.
	got = MapColumns(map[string]string{"Customer Reg Info": "AB1"}, models.FileTypeBookingList)
	if _, ok := got["registration_no"]; ok {
		t.Errorf("short value should not be recovered, got %q", got["registration_no"])
	}

	// (c) VIN fallback.
	got = MapColumns(map[string]string{"VIN": "MA3ERLF1S00123456"}, models.FileTypeBookingList)
	if got["registration_no"] != "MA3ERLF1S00123456" {
		t.Errorf("vin fallback: registration_no = %q", got["registration_no"])
	}

	// Nothing usable: field stays absent, not an error.
	got = MapColumns(map[string]string{"Customer": "Ma Hla"}, models.FileTypeBookingList)
	if _, ok := got["registration_no"]; ok {
		t.Error("registration_no should stay absent when nothing can recover it")
	}

	// A mapped registration number is never overwritten by recovery.
	got = MapColumns(map[string]string{"Reg No": "5T-9999", "Vehicle No": "OTHER-1"}, models.FileTypeBookingList)
	if got["registration_no"] != "5T-9999" {
		t.Errorf("mapped value overwritten: %q", got["registration_no"])
	}
}

func TestMapColumns_Deterministic(t *testing.T) {
	row := map[string]string{
		"RO No": "700", "VIN": "ma3erlf1s00123456", "Chassis Number": "x",
		"Some Reg Number": "KA 654321", "Other Number": "LB 654321",
	}
	first := MapColumns(row, models.FileTypeRepairOrderList)
	for i := 0; i < 50; i++ {
		if got := MapColumns(row, models.FileTypeRepairOrderList); !reflect.DeepEqual(first, got) {
			t.Fatalf("MapColumns is not deterministic: %v vs %v", first, got)
		}
	}
}
