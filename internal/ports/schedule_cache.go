package ports

import (
	"context"
	"sfc-bus-schedule/internal/domain"
)

// Best-effort persistence of acquired timetables.
//
// Put may silently no-op: write failures are never reported to the caller.
// Get reports a miss (ok=false) for absent or unreadable records.
type ScheduleCache interface {
	Put(ctx context.Context, direction domain.Direction, scheduleType domain.ScheduleType, resp domain.ScheduleResponse)
	Get(ctx context.Context, direction domain.Direction, scheduleType domain.ScheduleType) (domain.ScheduleResponse, bool)
}
