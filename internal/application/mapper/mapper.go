// Package mapper converts between persistent entities and transfer objects.
//
// Every conversion is an explicit per-field function. Optional relations
// map to empty strings, never to nil, and blank display names are only
// replaced by UnknownName through DisplayName.
package mapper

import "strings"

// UnknownName substitutes a blank display name in read models.
const UnknownName = "Unknown"

// DisplayName returns name, or UnknownName when name is blank.
func DisplayName(name string) string {
	if strings.TrimSpace(name) == "" {
		return UnknownName
	}
	return name
}

// Slice maps every non-nil entity with fn, keeping order.
func Slice[E, D any](in []*E, fn func(*E) D) []D {
	out := make([]D, 0, len(in))
	for _, e := range in {
		if e == nil {
			continue
		}
		out = append(out, fn(e))
	}
	return out
}
