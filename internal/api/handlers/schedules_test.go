package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"sfc-bus-schedule/internal/domain"
)

type recordingService struct {
	date      time.Time
	direction domain.Direction
}

func (s *recordingService) Acquire(ctx context.Context, date time.Time, direction domain.Direction) (domain.ScheduleResponse, error) {
	s.date, s.direction = date, direction
	return domain.ScheduleResponse{Source: domain.SourceLive}, nil
}

func (s *recordingService) FetchSchedule(ctx context.Context, direction domain.Direction, day domain.Day) (domain.ScheduleResponse, error) {
	return domain.ScheduleResponse{Source: domain.SourceLive}, nil
}

func TestAcquireDefaultsToToday(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	svc := &recordingService{}

	h := &ScheduleHandler{
		Service:  svc,
		Location: tokyo,
		// 2025-07-05 20:00 UTC is already 2025-07-06 in Tokyo.
		Now: func() time.Time { return time.Date(2025, 7, 5, 20, 0, 0, 0, time.UTC) },
	}

	rec := httptest.NewRecorder()
	h.Acquire(rec, httptest.NewRequest(http.MethodGet, "/v1/schedules?direction=from_sfc", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if svc.direction != domain.FromSFC {
		t.Fatalf("direction = %q", svc.direction)
	}
	if got := svc.date.Format(domain.ISODate); got != "2025-07-06" {
		t.Fatalf("date = %s, want 2025-07-06", got)
	}
	if svc.date.Location() != tokyo {
		t.Fatalf("date must be in the configured location, got %v", svc.date.Location())
	}
}

func TestAcquireEmptySchedulesEncodeAsArray(t *testing.T) {
	h := &ScheduleHandler{Service: &recordingService{}, Location: time.UTC}

	rec := httptest.NewRecorder()
	h.Acquire(rec, httptest.NewRequest(http.MethodGet, "/v1/schedules?direction=to_sfc&date=2025-07-07", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	want := `{"direction":"to_sfc","date":"2025-07-07","source":"live","schedules":[]}`
	if got := strings.TrimSpace(rec.Body.String()); got != want {
		t.Fatalf("body = %s, want %s", rec.Body.String(), want)
	}
}
