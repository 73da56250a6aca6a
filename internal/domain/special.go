package domain

import "time"

// ISODate is the layout of special schedule dates.
const ISODate = "2006-01-02"

// Describes one calendar date that runs a non-standard timetable.
// Date is the identity; Type names the dataset to fetch for that day.
type SpecialScheduleInfo struct {
	Date        string `json:"date"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

// FindSpecialSchedule returns the first entry whose Date equals date
// formatted as ISODate in date's location.
func FindSpecialSchedule(calendar []SpecialScheduleInfo, date time.Time) (SpecialScheduleInfo, bool) {
	key := date.Format(ISODate)
	for _, info := range calendar {
		if info.Date == key {
			return info, true
		}
	}
	return SpecialScheduleInfo{}, false
}
