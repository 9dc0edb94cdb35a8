package ginserver

import (
	"strings"
	"time"

	"prorent/internal/domain/shared/datekey"
	"prorent/internal/infra/validation"
)

// parseStay reads check-in/check-out as RFC3339 instants or date keys.
// Blank values stay zero so the form schema reports them as required.
func parseStay(checkIn, checkOut string) (time.Time, time.Time, error) {
	fields := map[string]string{}
	in, ok := parseInstant(checkIn)
	if !ok {
		fields["check_in"] = "datetime"
	}
	out, ok := parseInstant(checkOut)
	if !ok {
		fields["check_out"] = "datetime"
	}
	if len(fields) > 0 {
		return time.Time{}, time.Time{}, &validation.Error{Fields: fields}
	}
	return in, out, nil
}

func parseInstant(raw string) (time.Time, bool) {
	if strings.TrimSpace(raw) == "" {
		return time.Time{}, true
	}
	t, err := datekey.ParseInstant(raw)
	return t, err == nil
}
