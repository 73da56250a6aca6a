package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"sfc-bus-schedule/internal/domain"
	"sfc-bus-schedule/internal/ports"
)

// Resolution is the timetable selected for a date. SpecialInfo is set only
// when the date matched the special schedule calendar.
type Resolution struct {
	Type        domain.ScheduleType
	SpecialInfo *domain.SpecialScheduleInfo
}

// ResolveScheduleType decides which timetable runs on date.
//
// A special schedule calendar entry for the date wins over the day of week.
// If the calendar cannot be fetched the lookup behaves as if the calendar
// were empty, so a special day resolves to its regular day.
//
// The date is interpreted in loc; a nil loc keeps date's own location.
func ResolveScheduleType(
	ctx context.Context,
	source ports.ScheduleSource,
	date time.Time,
	loc *time.Location,
	log *zap.Logger,
) Resolution {
	if loc != nil {
		date = date.In(loc)
	}

	calendar, err := source.FetchSpecialSchedules(ctx)
	if err != nil {
		if log != nil {
			log.Warn("special schedule calendar unavailable, using day of week",
				zap.String("date", date.Format(domain.ISODate)),
				zap.Error(err),
			)
		}
		calendar = nil
	}

	if info, ok := domain.FindSpecialSchedule(calendar, date); ok {
		return Resolution{Type: domain.Special(info.Type), SpecialInfo: &info}
	}

	return Resolution{Type: domain.Regular(DayOf(date))}
}

// DayOf maps a date to its regular bucket. Weekday indices follow a
// Sunday-first week numbered 1..7: 1 is sunday, 7 is saturday.
func DayOf(date time.Time) domain.Day {
	switch int(date.Weekday()) + 1 {
	case 1:
		return domain.Sunday
	case 7:
		return domain.Saturday
	default:
		return domain.Weekday
	}
}
