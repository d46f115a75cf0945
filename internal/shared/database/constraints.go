package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds critical database constraints for concurrency control
func MigrateConstraints(db *gorm.DB) error {
	// Range exclusion is the last line of defense against double booking:
	// even a code path that skips the row lock cannot commit two live
	// bookings whose windows overlap on the same spot. Half-open ranges,
	// so back-to-back bookings sharing a boundary are allowed.
	err := db.Exec(`
		CREATE EXTENSION IF NOT EXISTS btree_gist;
	`).Error
	if err != nil {
		return err
	}

	err = db.Exec(`
		DO $$
		BEGIN
			IF NOT EXISTS (
				SELECT 1 FROM pg_constraint WHERE conname = 'no_overlapping_live_bookings'
			) THEN
				ALTER TABLE bookings
				ADD CONSTRAINT no_overlapping_live_bookings
				EXCLUDE USING gist (
					spot_id WITH =,
					tstzrange(start_time, end_time, '[)') WITH &&
				) WHERE (status IN ('pending', 'active'));
			END IF;
		END $$;
	`).Error
	if err != nil {
		return err
	}

	// Covering index for the overlap count inside booking transactions
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_bookings_spot_live_window
		ON bookings (spot_id, start_time, end_time)
		WHERE status IN ('pending', 'active');
	`).Error
	if err != nil {
		return err
	}

	// Index for requester history lookups
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_bookings_requester_created
		ON bookings (requester_id, created_at DESC);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
