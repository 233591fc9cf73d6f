package workflow

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/mmdatafocus/autoservice_backend/models"
	"github.com/mmdatafocus/autoservice_backend/utils"
)

// fingerprintSample is the canonical shape hashed for duplicate detection.
// Sampling the first and last rows plus the count is deliberately cheap;
// two different files agreeing on all three is an accepted collision.
type fingerprintSample struct {
	FileType models.FileType   `json:"file_type"`
	RowCount int               `json:"row_count"`
	FirstRow map[string]string `json:"first_row"`
	LastRow  map[string]string `json:"last_row"`
}

// Fingerprint hashes the batch identity for one upload. JSON marshalling
// sorts map keys, which keeps the digest stable across header orderings.
func Fingerprint(rows []map[string]string, fileType models.FileType) (string, error) {
	sample := fingerprintSample{
		FileType: fileType,
		RowCount: len(rows),
	}
	if len(rows) > 0 {
		sample.FirstRow = rows[0]
		sample.LastRow = rows[len(rows)-1]
	}

	payload, err := utils.MarshalToJSON(sample)
	if err != nil {
		return "", err
	}
	digest := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(digest[:]), nil
}
