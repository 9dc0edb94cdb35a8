package availability

import (
	"sort"
	"strings"
)

// UnavailableDateSet holds date keys already booked or blocked.
type UnavailableDateSet map[string]struct{}

func NewUnavailableDateSet(keys ...string) UnavailableDateSet {
	set := make(UnavailableDateSet, len(keys))
	for _, key := range keys {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		set[key] = struct{}{}
	}
	return set
}

func (s UnavailableDateSet) Contains(key string) bool {
	_, ok := s[key]
	return ok
}

func (s UnavailableDateSet) Len() int {
	return len(s)
}

// Keys returns the members in ascending order.
func (s UnavailableDateSet) Keys() []string {
	out := make([]string, 0, len(s))
	for key := range s {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}
