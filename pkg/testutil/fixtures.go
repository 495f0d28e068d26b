package testutil

import (
	"time"

	"github.com/google/uuid"
)

// Fixed identifiers for deterministic tests.
var (
	OwnerID      = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	OtherOwnerID = uuid.MustParse("00000000-0000-0000-0000-000000000002")
	LoanID       = uuid.MustParse("00000000-0000-0000-0000-000000000100")
)

// Date returns midnight UTC on the given day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
