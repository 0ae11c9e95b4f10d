package domain_models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"wayfarer/pkg/utils"
)

// Day is either a concrete 1-based trip day or AllDays. The zero value is
// "unset" and is what optional fields hold before the user picks a day.
type Day struct {
	number  int
	allDays bool
}

var AllDays = Day{allDays: true}

func DayNumber(n int) (Day, error) {
	if n < 1 {
		return Day{}, fmt.Errorf("%w: %d", utils.ErrInvalidDay, n)
	}
	return Day{number: n}, nil
}

// MustDay is for literal days in datasets and tests.
func MustDay(n int) Day {
	d, err := DayNumber(n)
	if err != nil {
		panic(err)
	}
	return d
}

// ParseDay accepts "1", "2", ... and "all".
func ParseDay(raw string) (Day, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "all" {
		return AllDays, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return Day{}, fmt.Errorf("%w: %q", utils.ErrInvalidDay, raw)
	}
	return DayNumber(n)
}

func (d Day) IsSet() bool         { return d.allDays || d.number > 0 }
func (d Day) IsAllDays() bool     { return d.allDays }
func (d Day) Number() (int, bool) { return d.number, d.number > 0 }

// Covers reports whether an entry scheduled on d shows up on trip day n.
func (d Day) Covers(n int) bool {
	return d.allDays || (d.number > 0 && d.number == n)
}

func (d Day) String() string {
	switch {
	case d.allDays:
		return "all"
	case d.number > 0:
		return strconv.Itoa(d.number)
	default:
		return ""
	}
}

func (d Day) MarshalJSON() ([]byte, error) {
	switch {
	case d.allDays:
		return []byte(`"all"`), nil
	case d.number > 0:
		return []byte(strconv.Itoa(d.number)), nil
	default:
		return []byte("null"), nil
	}
}

func (d *Day) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*d = Day{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		parsed, err := ParseDay(s)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	}
	var n int
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("%w: %s", utils.ErrInvalidDay, string(b))
	}
	parsed, err := DayNumber(n)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

type TimeSlot string

const (
	SlotNone      TimeSlot = ""
	SlotMorning   TimeSlot = "morning"
	SlotAfternoon TimeSlot = "afternoon"
	SlotEvening   TimeSlot = "evening"
)

func ParseTimeSlot(raw string) (TimeSlot, error) {
	s := TimeSlot(strings.ToLower(strings.TrimSpace(raw)))
	switch s {
	case SlotMorning, SlotAfternoon, SlotEvening:
		return s, nil
	default:
		return SlotNone, fmt.Errorf("%w: %q", utils.ErrInvalidTimeSlot, raw)
	}
}

// Rank orders slots through the day; unscheduled entries sort last.
func (s TimeSlot) Rank() int {
	switch s {
	case SlotMorning:
		return 0
	case SlotAfternoon:
		return 1
	case SlotEvening:
		return 2
	default:
		return 3
	}
}
