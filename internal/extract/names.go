package extract

import "strings"

const (
	// WIPMarker prefixes names of content that has not been released yet.
	WIPMarker = "**"

	modifiedMarkers = "-="
)

// ParseName strips the structural prefix from a raw generator name.
//
// A leading WIPMarker is removed and marks the entry unreleased. Otherwise a
// single leading '-' or '=' (released but modified) is removed. Anything else
// is returned verbatim.
func ParseName(raw string) (display string, unreleased bool) {
	if strings.HasPrefix(raw, WIPMarker) {
		return raw[len(WIPMarker):], true
	}
	if raw != "" && strings.IndexByte(modifiedMarkers, raw[0]) >= 0 {
		return raw[1:], false
	}
	return raw, false
}

// Slug derives a stable lookup id: lower-cased, every run of characters
// outside [a-z0-9] collapsed to one underscore, underscores trimmed.
func Slug(name string) string {
	lower := strings.ToLower(name)

	var b strings.Builder
	b.Grow(len(lower))
	pendingSep := false
	for i := 0; i < len(lower); i++ {
		c := lower[i]
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteByte(c)
			continue
		}
		pendingSep = true
	}
	return b.String()
}
