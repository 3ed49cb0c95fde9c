package ledger

import "time"

// Clock supplies the authoritative current time for deadline comparisons.
// The ledger never reads the wall clock directly so deadline behavior stays
// deterministic under test.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the host wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
