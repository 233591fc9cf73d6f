package workflow

import (
	"fmt"

	"gorm.io/gorm"
)

// AcquireBusinessIngestLock serializes the write phase per business across
// instances using MySQL advisory locks. Classification runs before the lock,
// so a concurrent upload can still stale its snapshot; the per-row upsert
// absorbs that as an update instead of a duplicate-key failure.
// NOTE: GET_LOCK is connection-scoped, so this must be called on the same
// *gorm.DB that runs the reconciliation transaction.
func AcquireBusinessIngestLock(tx *gorm.DB, businessId string) error {
	lockName := fmt.Sprintf("ingest:%s", businessId)
	var ok int
	if err := tx.Raw("SELECT GET_LOCK(?, 30)", lockName).Scan(&ok).Error; err != nil {
		return err
	}
	if ok != 1 {
		return fmt.Errorf("could not acquire ingest lock for business_id=%s", businessId)
	}
	return nil
}

func ReleaseBusinessIngestLock(tx *gorm.DB, businessId string) {
	lockName := fmt.Sprintf("ingest:%s", businessId)
	var _ok int
	_ = tx.Raw("SELECT RELEASE_LOCK(?)", lockName).Scan(&_ok).Error
}
