package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"sfc-bus-schedule/internal/domain"
	"sfc-bus-schedule/internal/platform/obs"
	"sfc-bus-schedule/internal/ports"
)

// ErrNoCachedSchedule is returned when a live fetch failed and no cached
// copy exists for the same key. The fetch error is wrapped alongside it.
var ErrNoCachedSchedule = errors.New("no cached schedule")

// ScheduleService acquires timetables live and falls back to the cache.
//
// It holds no locks across I/O. Two concurrent acquisitions of the same key
// may both fetch; the later cache write wins.
type ScheduleService struct {
	source ports.ScheduleSource
	cache  ports.ScheduleCache
	loc    *time.Location
	log    *zap.Logger
}

func NewScheduleService(
	source ports.ScheduleSource,
	cache ports.ScheduleCache,
	loc *time.Location,
	log *zap.Logger,
) (*ScheduleService, error) {
	if source == nil {
		return nil, errors.New("new schedule service: source is nil")
	}
	if cache == nil {
		return nil, errors.New("new schedule service: cache is nil")
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &ScheduleService{source: source, cache: cache, loc: loc, log: log}, nil
}

// Acquire returns the timetable running on date for direction.
func (s *ScheduleService) Acquire(
	ctx context.Context,
	date time.Time,
	direction domain.Direction,
) (_ domain.ScheduleResponse, err error) {
	defer obs.Time(ctx, "services.Acquire")(&err)

	res := ResolveScheduleType(ctx, s.source, date, s.loc, s.log)

	resp, err := s.fetchWithFallback(ctx, direction, res.Type, res.SpecialInfo)
	if err != nil {
		return domain.ScheduleResponse{}, fmt.Errorf("acquire schedule: %w", err)
	}
	return resp, nil
}

// FetchSchedule returns the regular timetable for an explicit day without
// consulting the special schedule calendar. It shares cache keys and
// fallback behavior with Acquire.
func (s *ScheduleService) FetchSchedule(
	ctx context.Context,
	direction domain.Direction,
	day domain.Day,
) (_ domain.ScheduleResponse, err error) {
	defer obs.Time(ctx, "services.FetchSchedule")(&err)

	resp, err := s.fetchWithFallback(ctx, direction, domain.Regular(day), nil)
	if err != nil {
		return domain.ScheduleResponse{}, fmt.Errorf("fetch schedule: %w", err)
	}
	return resp, nil
}

func (s *ScheduleService) fetchWithFallback(
	ctx context.Context,
	direction domain.Direction,
	scheduleType domain.ScheduleType,
	info *domain.SpecialScheduleInfo,
) (domain.ScheduleResponse, error) {
	schedules, fetchErr := s.source.FetchSchedules(ctx, direction, scheduleType)
	if fetchErr == nil {
		resp := domain.ScheduleResponse{
			Schedules:   schedules,
			Source:      domain.SourceLive,
			SpecialInfo: info,
		}
		s.cache.Put(ctx, direction, scheduleType, resp)
		obs.Acquisitions.WithLabelValues(string(domain.SourceLive)).Inc()
		return resp, nil
	}

	cached, ok := s.cache.Get(ctx, direction, scheduleType)
	if !ok {
		obs.Acquisitions.WithLabelValues("failed").Inc()
		return domain.ScheduleResponse{}, fmt.Errorf(
			"%s_%s: %w: %w",
			direction, scheduleType.PathComponent(), ErrNoCachedSchedule, fetchErr,
		)
	}

	s.log.Info("serving cached schedule after fetch failure",
		zap.String("req_id", obs.RequestID(ctx)),
		zap.String("direction", string(direction)),
		zap.String("schedule_type", scheduleType.String()),
		zap.Error(fetchErr),
	)

	// The record keeps the special info it was stored with.
	cached.Source = domain.SourceCache
	obs.Acquisitions.WithLabelValues(string(domain.SourceCache)).Inc()
	return cached, nil
}
