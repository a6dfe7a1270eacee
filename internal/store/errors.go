package store

import (
	"errors"
	"fmt"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Sentinel errors for the two non-storage failure classes. Callers match
// them with errors.Is; anything else that comes out of the store is an
// underlying storage fault.
var (
	ErrNotFound            = errors.New("record not found")
	ErrConstraintViolation = errors.New("constraint violation")
)

// constraintErr maps SQLite constraint failures (unique, foreign key, check)
// to ErrConstraintViolation, keeping the driver detail in the message.
// Other errors pass through unchanged.
func constraintErr(err error) error {
	var serr *sqlite.Error
	if errors.As(err, &serr) && serr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
		return fmt.Errorf("%w: %v", ErrConstraintViolation, err)
	}
	return err
}
