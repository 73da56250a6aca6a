package domain

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// Regular timetable bucket derived from the day of week.
type Day string

const (
	Weekday  Day = "weekday"
	Saturday Day = "saturday"
	Sunday   Day = "sunday"
)

func ParseDay(s string) (Day, error) {
	switch d := Day(s); d {
	case Weekday, Saturday, Sunday:
		return d, nil
	}
	return "", fmt.Errorf("parse day: unknown day %q", s)
}

// SpecialTypePrefix marks dataset identifiers of special (irregular) timetables.
const SpecialTypePrefix = "special_"

type scheduleKind uint8

const (
	kindUnknown scheduleKind = iota
	kindRegular
	kindSpecial
)

// ScheduleType selects one timetable dataset: either a regular Day bucket or
// a special timetable identified by an opaque, server-defined id.
// The zero value is the unknown type.
type ScheduleType struct {
	kind    scheduleKind
	day     Day
	special string
}

func Regular(d Day) ScheduleType { return ScheduleType{kind: kindRegular, day: d} }

func Special(id string) ScheduleType { return ScheduleType{kind: kindSpecial, special: id} }

func (t ScheduleType) IsRegular() bool { return t.kind == kindRegular }
func (t ScheduleType) IsSpecial() bool { return t.kind == kindSpecial }
func (t ScheduleType) IsUnknown() bool { return t.kind == kindUnknown }

// Day reports the regular bucket; ok is false for special and unknown types.
func (t ScheduleType) Day() (Day, bool) {
	return t.day, t.kind == kindRegular
}

// SpecialID reports the special dataset id; ok is false otherwise.
func (t ScheduleType) SpecialID() (string, bool) {
	return t.special, t.kind == kindSpecial
}

// PathComponent is the URL and cache key fragment naming the dataset.
func (t ScheduleType) PathComponent() string {
	switch t.kind {
	case kindRegular:
		return string(t.day)
	case kindSpecial:
		return t.special
	}
	return "unknown"
}

func (t ScheduleType) String() string {
	if t.kind == kindSpecial {
		return "irregular:" + t.special
	}
	return t.PathComponent()
}

// ParseScheduleType maps a raw tag to a ScheduleType. Tags that are neither a
// regular day nor prefixed with SpecialTypePrefix are unknown.
func ParseScheduleType(raw string) ScheduleType {
	if d, err := ParseDay(raw); err == nil {
		return Regular(d)
	}
	if strings.HasPrefix(raw, SpecialTypePrefix) {
		return Special(raw)
	}
	return ScheduleType{}
}

func (t ScheduleType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.PathComponent())
}

func (t *ScheduleType) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("decode schedule type: %w", err)
	}
	*t = ParseScheduleType(raw)
	return nil
}
