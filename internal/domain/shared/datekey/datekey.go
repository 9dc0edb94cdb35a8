// Package datekey canonicalizes instants and calendar dates into the
// YYYY-MM-DD keys used for day-granular pricing and availability data.
package datekey

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

// ZoneName is the reference zone every key is interpreted in.
const ZoneName = "Asia/Jakarta"

// Layout is the canonical key format.
const Layout = "2006-01-02"

var ErrInvalidKey = errors.New("datekey: invalid date key")

// Jakarta has no DST, so the fixed offset is equivalent when tzdata is missing.
var zone = loadZone()

func loadZone() *time.Location {
	loc, err := time.LoadLocation(ZoneName)
	if err != nil {
		return time.FixedZone(ZoneName, 7*60*60)
	}
	return loc
}

// Zone returns the reference location.
func Zone() *time.Location {
	return zone
}

// ToDateKey formats an instant as YYYY-MM-DD in the reference zone.
func ToDateKey(t time.Time) string {
	return t.In(zone).Format(Layout)
}

// DateOf returns the calendar date the instant falls on in the reference zone.
func DateOf(t time.Time) civil.Date {
	return civil.DateOf(t.In(zone))
}

// StartOf returns local midnight of d in the reference zone.
func StartOf(d civil.Date) time.Time {
	return d.In(zone)
}

// KeyOfDate returns the key for a calendar date.
func KeyOfDate(d civil.Date) string {
	return ToDateKey(StartOf(d))
}

// Parse reads a canonical key back into a calendar date.
func Parse(key string) (civil.Date, error) {
	d, err := civil.ParseDate(strings.TrimSpace(key))
	if err != nil || !d.IsValid() {
		return civil.Date{}, fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return d, nil
}

// ParseFlexible accepts either a date key or an RFC3339 instant and returns
// the calendar date in the reference zone.
func ParseFlexible(raw string) (civil.Date, error) {
	raw = strings.TrimSpace(raw)
	if d, err := civil.ParseDate(raw); err == nil {
		return d, nil
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return DateOf(t), nil
		}
	}
	return civil.Date{}, fmt.Errorf("%w: %q", ErrInvalidKey, raw)
}

// Valid reports whether key is a well-formed canonical key.
func Valid(key string) bool {
	d, err := civil.ParseDate(key)
	return err == nil && d.IsValid() && d.String() == key
}

// ParseInstant accepts an RFC3339 instant, or a date key read as local
// midnight in the reference zone.
func ParseInstant(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if d, err := civil.ParseDate(raw); err == nil && d.IsValid() {
		return StartOf(d), nil
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidKey, raw)
}
