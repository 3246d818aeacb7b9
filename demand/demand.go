// Package demand loads UK grid settlement records and aggregates them
// into a daily demand series with derived calendar features.
package demand

import (
	"errors"
	"time"
)

var (
	ErrNoRecords     = errors.New("no demand records")
	ErrMissingColumn = errors.New("missing required column")
)

// Record is a single half-hourly settlement reading. Only the
// settlement date and the national demand column are consumed.
type Record struct {
	SettlementDate time.Time
	DemandMW       float64
}
