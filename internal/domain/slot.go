package domain

import (
	"time"

	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// TimeSlot represents a candidate appointment start time within a stylist's
// working window. Derived data: regenerated on every query, never persisted.
type TimeSlot struct {
	ID        string
	Time      types.TimeString
	Available bool
}

// TimeSlotID builds the slot identity, unique within a single day's sequence
func TimeSlotID(date time.Time, start types.TimeString) string {
	return date.Format(DateFormat) + "-" + start.String()
}
