package ports

import (
	"context"
	"sfc-bus-schedule/internal/domain"
)

// Contract for retrieving timetable data from the remote schedule service.
type ScheduleSource interface {
	// Return the timetable dataset for a direction and schedule type.
	FetchSchedules(ctx context.Context, direction domain.Direction, scheduleType domain.ScheduleType) ([]domain.ScheduleEntry, error)
	// Return the calendar of dates that run a special timetable.
	FetchSpecialSchedules(ctx context.Context) ([]domain.SpecialScheduleInfo, error)
}
