package availability

import (
	"time"

	"prorent/internal/domain/shared/datekey"
	"prorent/internal/domain/shared/daterange"
)

// CheckInOffset nudges the walk past a check-in that sits exactly on local
// midnight of a day flagged at day-start.
const CheckInOffset = time.Minute

// Tracer observes every visited day.
type Tracer func(key string, unavailable bool)

// ValidateDateRange returns the unavailable day keys the stay [from, to)
// touches, in visiting order. An empty result means the range is bookable.
// from >= to yields no conflicts; run CheckRange first to reject it.
func ValidateDateRange(from, to time.Time, unavailable UnavailableDateSet) []string {
	return ValidateDateRangeTraced(from, to, unavailable, nil)
}

func ValidateDateRangeTraced(from, to time.Time, unavailable UnavailableDateSet, trace Tracer) []string {
	conflicts := make([]string, 0)
	zone := datekey.Zone()
	for current := from.Add(CheckInOffset).In(zone); current.Before(to); current = current.AddDate(0, 0, 1) {
		key := datekey.ToDateKey(current)
		blocked := unavailable.Contains(key)
		if trace != nil {
			trace(key, blocked)
		}
		if blocked {
			conflicts = append(conflicts, key)
		}
	}
	return conflicts
}

// ValidateRange is ValidateDateRange over a checked range.
func ValidateRange(dr daterange.DateRange, unavailable UnavailableDateSet) []string {
	return ValidateDateRange(dr.CheckIn, dr.CheckOut, unavailable)
}

// CheckRange rejects ranges the validator would silently accept.
func CheckRange(from, to time.Time) (daterange.DateRange, error) {
	return daterange.New(from, to)
}
