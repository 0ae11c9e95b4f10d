// utils/timeutil.go
package utils

import (
	"strings"
	"time"
)

// Rome time location, the catalog's home zone.
var romeLoc = func() *time.Location {
	if loc, err := time.LoadLocation("Europe/Rome"); err == nil {
		return loc
	}
	return time.FixedZone("CET", 1*3600)
}()

func NowUnixMillis() int64 { return time.Now().UnixMilli() }

func FormatRFC3339Local(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(romeLoc).Format(time.RFC3339)
}

// ClockMinutes parses "HH:MM" (or "H:MM") into minutes after midnight.
func ClockMinutes(s string) (int, bool) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}

// ClockBefore orders display times. Parseable clocks compare numerically and
// sort before unparseable ones, which compare by string.
func ClockBefore(a, b string) bool {
	am, aok := ClockMinutes(a)
	bm, bok := ClockMinutes(b)
	switch {
	case aok && bok:
		return am < bm
	case aok != bok:
		return aok
	default:
		return a < b
	}
}
