package workflow

import (
	"context"
	"errors"
	"testing"

	"github.com/mmdatafocus/autoservice_backend/models"
)

func TestPartitionRows(t *testing.T) {
	key := models.RecordKey{Fields: []string{"ro_number"}}
	rows := []map[string]string{
		{"ro_number": "100"},
		{"ro_number": "101"},
		{"ro_number": "102"},
	}
	existing := map[string]bool{"101": true}

	existingRows, newRows := partitionRows(rows, key, existing)
	if len(existingRows) != 1 || existingRows[0]["ro_number"] != "101" {
		t.Errorf("existingRows = %v", existingRows)
	}
	if len(newRows) != 2 || newRows[0]["ro_number"] != "100" || newRows[1]["ro_number"] != "102" {
		t.Errorf("newRows = %v", newRows)
	}
}

func TestPartitionRows_CompositeKeyNormalization(t *testing.T) {
	key := models.RecordKey{Fields: []string{"ro_number", "vin"}}
	rows := []map[string]string{
		{"ro_number": " 700 ", "vin": "ma3erlf1s00123456"},
		{"ro_number": "700", "vin": "MA3ERLF1S00999999"},
	}
	existing := map[string]bool{"700|MA3ERLF1S00123456": true}

	existingRows, newRows := partitionRows(rows, key, existing)
	if len(existingRows) != 1 {
		t.Fatalf("expected the trimmed+uppercased row to match, got %v", existingRows)
	}
	if len(newRows) != 1 || newRows[0]["vin"] != "MA3ERLF1S00999999" {
		t.Errorf("newRows = %v", newRows)
	}
}

func TestClassifyUpload_UnknownFileType(t *testing.T) {
	_, err := ClassifyUpload(context.Background(), "biz", models.FileType("mystery"), nil, "hash")
	if err == nil {
		t.Fatal("expected an error for an unknown file type")
	}
	var classErr *ClassificationError
	if !errors.As(err, &classErr) {
		t.Fatalf("got %T, want *ClassificationError", err)
	}
	if classErr.Stage != "record spec lookup" {
		t.Errorf("stage = %q", classErr.Stage)
	}
}
