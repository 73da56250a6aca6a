package domain

// Provenance of a ScheduleResponse.
type Source string

const (
	SourceLive  Source = "live"
	SourceCache Source = "cache"
)

// ScheduleResponse is the outcome of one acquisition: the timetable, where it
// came from, and the special schedule descriptor when the date matched one.
// It is also the record persisted in the schedule cache.
type ScheduleResponse struct {
	Schedules   []ScheduleEntry      `json:"schedules"`
	Source      Source               `json:"source"`
	SpecialInfo *SpecialScheduleInfo `json:"specialInfo,omitempty"`
}
