package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"sfc-bus-schedule/internal/api/dto"
	"sfc-bus-schedule/internal/domain"
	"sfc-bus-schedule/internal/platform/obs"
	"sfc-bus-schedule/internal/services"
)

// ScheduleService is the slice of services.ScheduleService the handlers use.
type ScheduleService interface {
	Acquire(ctx context.Context, date time.Time, direction domain.Direction) (domain.ScheduleResponse, error)
	FetchSchedule(ctx context.Context, direction domain.Direction, day domain.Day) (domain.ScheduleResponse, error)
}

type ScheduleHandler struct {
	Service  ScheduleService
	Location *time.Location
	Log      *zap.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

// Acquire serves the timetable running on ?date= (default today) for ?direction=.
func (h *ScheduleHandler) Acquire(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	direction, err := domain.ParseDirection(strings.TrimSpace(q.Get("direction")))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "direction must be from_sfc or to_sfc")
		return
	}

	date, err := h.parseDate(q.Get("date"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "date must be formatted as YYYY-MM-DD")
		return
	}

	resp, err := h.Service.Acquire(r.Context(), date, direction)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ScheduleResponse{
		Direction:   direction,
		Date:        date.Format(domain.ISODate),
		Source:      resp.Source,
		SpecialInfo: resp.SpecialInfo,
		Schedules:   nonNil(resp.Schedules),
	})
}

// ByDay serves the regular timetable for /{direction}/{day}.
func (h *ScheduleHandler) ByDay(w http.ResponseWriter, r *http.Request) {
	direction, err := domain.ParseDirection(chi.URLParam(r, "direction"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "direction must be from_sfc or to_sfc")
		return
	}

	day, err := domain.ParseDay(chi.URLParam(r, "day"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "day must be weekday, saturday or sunday")
		return
	}

	resp, err := h.Service.FetchSchedule(r.Context(), direction, day)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ScheduleResponse{
		Direction:   direction,
		Day:         day,
		Source:      resp.Source,
		SpecialInfo: resp.SpecialInfo,
		Schedules:   nonNil(resp.Schedules),
	})
}

func (h *ScheduleHandler) parseDate(raw string) (time.Time, error) {
	loc := h.Location
	if loc == nil {
		loc = time.Local
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		now := time.Now
		if h.Now != nil {
			now = h.Now
		}
		return now().In(loc), nil
	}

	return time.ParseInLocation(domain.ISODate, raw, loc)
}

func (h *ScheduleHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	log := h.Log
	if log == nil {
		log = zap.L()
	}
	log.Error("schedule request failed",
		zap.String("req_id", obs.RequestID(r.Context())),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)

	if errors.Is(err, services.ErrNoCachedSchedule) {
		writeError(w, r, http.StatusBadGateway, "schedule unavailable")
		return
	}
	writeError(w, r, http.StatusInternalServerError, "internal server error")
}

func nonNil(s []domain.ScheduleEntry) []domain.ScheduleEntry {
	if s == nil {
		return []domain.ScheduleEntry{}
	}
	return s
}
