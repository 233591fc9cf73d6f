package workflow

import (
	"testing"

	"github.com/mmdatafocus/autoservice_backend/models"
)

func TestFingerprint_Stable(t *testing.T) {
	rows := []map[string]string{
		{"ro_number": "100", "total_amount": "500"},
		{"ro_number": "101", "total_amount": "750"},
	}
	first, err := Fingerprint(rows, models.FileTypeROBilling)
	if err != nil {
		t.Fatalf("Fingerprint: %v", err)
	}
	second, err := Fingerprint(rows, models.FileTypeROBilling)
	if err != nil {
		t.Fatalf("Fingerprint: %v", err)
	}
	if first != second {
		t.Errorf("same rows produced different hashes: %s vs %s", first, second)
	}
	if len(first) != 64 {
		t.Errorf("expected hex sha256, got %q", first)
	}
}

func TestFingerprint_Discriminates(t *testing.T) {
	base := []map[string]string{
		{"ro_number": "100"},
		{"ro_number": "101"},
	}
	baseHash, _ := Fingerprint(base, models.FileTypeROBilling)

	lastChanged := []map[string]string{
		{"ro_number": "100"},
		{"ro_number": "999"},
	}
	changedHash, _ := Fingerprint(lastChanged, models.FileTypeROBilling)
	if baseHash == changedHash {
		t.Error("changing the last row must change the hash")
	}

	otherType, _ := Fingerprint(base, models.FileTypeWarranty)
	if baseHash == otherType {
		t.Error("same rows under a different file type must change the hash")
	}

	longer := append(append([]map[string]string{}, base...), map[string]string{"ro_number": "102"})
	longerHash, _ := Fingerprint(longer, models.FileTypeROBilling)
	if baseHash == longerHash {
		t.Error("changing the row count must change the hash")
	}
}

// The sampling fingerprint deliberately ignores middle rows: two files that
// agree on type, count, first and last rows collide.
func TestFingerprint_MiddleRowCollision(t *testing.T) {
	a := []map[string]string{
		{"ro_number": "100"},
		{"ro_number": "200"},
		{"ro_number": "300"},
	}
	b := []map[string]string{
		{"ro_number": "100"},
		{"ro_number": "250"},
		{"ro_number": "300"},
	}
	aHash, _ := Fingerprint(a, models.FileTypeROBilling)
	bHash, _ := Fingerprint(b, models.FileTypeROBilling)
	if aHash != bHash {
		t.Error("middle-row changes are not part of the sampling fingerprint")
	}
}
