package remote

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"sfc-bus-schedule/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const oneTripJSON = `[{
  "id": "sho250710", "time": 7, "minute": 10,
  "scheduleType": "weekday", "routeCode": "sho25", "routeName": "湘25",
  "name": "ツインライナー 急行・慶応大学行", "origin": "湘南台駅西口",
  "destination": "慶応中高等部前", "via": "ツインライナー急行・南大山",
  "sfc_direction": "to_sfc",
  "metadata": {"stops": [
    {"name": "湘南台駅西口", "cumulative_time": 0, "arrival": {"time": 7, "minute": 10}},
    {"name": "南大山", "cumulative_time": 5, "arrival": {"time": 7, "minute": 15}},
    {"name": "慶応大学", "cumulative_time": 9, "arrival": {"time": 7, "minute": 19}},
    {"name": "慶応大学本館前", "cumulative_time": 12, "arrival": {"time": 7, "minute": 22}},
    {"name": "慶応中高等部前", "cumulative_time": 15, "arrival": {"time": 7, "minute": 25}}
  ]}
}]`

func newTestAPI(t *testing.T, h http.Handler) *ScheduleAPI {
	t.Helper()

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	api, err := NewScheduleAPI(NewClient(srv.Client()), srv.URL)
	require.NoError(t, err)
	return api
}

func TestScheduleURL(t *testing.T) {
	base := "https://example.test/data/v1"

	for _, dir := range []domain.Direction{domain.FromSFC, domain.ToSFC} {
		for _, day := range []domain.Day{domain.Weekday, domain.Saturday, domain.Sunday} {
			got := ScheduleURL(base, dir, domain.Regular(day))
			want := base + "/flat/" + string(dir) + "_" + string(day) + ".json"
			assert.Equal(t, want, got)
		}
	}

	assert.Equal(t,
		"https://example.test/data/v1/flat/to_sfc_special_20250705.json",
		ScheduleURL(base, domain.ToSFC, domain.Special("special_20250705")),
	)
	assert.Equal(t,
		"https://example.test/data/v1/special_schedules.json",
		SpecialSchedulesURL(base),
	)
}

func TestNewScheduleAPIBaseURL(t *testing.T) {
	api, err := NewScheduleAPI(NewClient(nil), "")
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, api.BaseURL())

	api, err = NewScheduleAPI(NewClient(nil), "https://example.test/v1/")
	require.NoError(t, err)
	assert.Equal(t, "https://example.test/v1", api.BaseURL())

	_, err = NewScheduleAPI(NewClient(nil), "not a url")
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = NewScheduleAPI(nil, DefaultBaseURL)
	assert.Error(t, err)
}

func TestFetchSchedules(t *testing.T) {
	var gotPath, gotCacheControl string
	api := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotCacheControl = r.Header.Get("Cache-Control")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(oneTripJSON))
	}))

	schedules, err := api.FetchSchedules(context.Background(), domain.ToSFC, domain.Regular(domain.Weekday))
	require.NoError(t, err)

	assert.Equal(t, "/flat/to_sfc_weekday.json", gotPath)
	assert.Equal(t, "no-cache", gotCacheControl)
	require.Len(t, schedules, 1)
	assert.Equal(t, "sho250710", schedules[0].ID)
	assert.Equal(t, 7, schedules[0].Time)
	assert.Equal(t, 10, schedules[0].Minute)
	assert.Len(t, schedules[0].Metadata.Stops, 5)
}

func TestFetchSchedulesDecodingFailure(t *testing.T) {
	api := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not": "an array"}`))
	}))

	_, err := api.FetchSchedules(context.Background(), domain.FromSFC, domain.Regular(domain.Sunday))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDecoding)
	assert.NotErrorIs(t, err, ErrTransport)

	kind, ok := IsFetchError(err)
	assert.True(t, ok)
	assert.Equal(t, ErrDecoding, kind)
}

func TestFetchSchedulesStatusFailure(t *testing.T) {
	api := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))

	_, err := api.FetchSchedules(context.Background(), domain.FromSFC, domain.Regular(domain.Saturday))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransport)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusNotFound, se.Code)
	assert.Equal(t, "gone", se.Body)
}

func TestFetchSchedulesUnreachable(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	api, err := NewScheduleAPI(NewClient(nil), "http://"+addr)
	require.NoError(t, err)

	_, err = api.FetchSchedules(context.Background(), domain.ToSFC, domain.Regular(domain.Weekday))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransport)
}

func TestFetchSchedulesMalformedDataset(t *testing.T) {
	api := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id": "x", "time": 8, "minute": 0, "scheduleType": "weekday",
			"routeCode": "sho19", "routeName": "", "name": "", "origin": "", "destination": "",
			"via": "", "sfc_direction": "from_sfc", "metadata": {"stops": []}}]`))
	}))

	_, err := api.FetchSchedules(context.Background(), domain.FromSFC, domain.Regular(domain.Weekday))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedDataset)
}

func TestFetchSchedulesUnknownType(t *testing.T) {
	api := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request to %s", r.URL.Path)
	}))

	_, err := api.FetchSchedules(context.Background(), domain.FromSFC, domain.ScheduleType{})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestFetchSpecialSchedules(t *testing.T) {
	api := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/special_schedules.json", r.URL.Path)
		_, _ = w.Write([]byte(`[{"date": "2025-07-05", "description": "七夕祭臨時ダイヤ", "type": "special_20250705"}]`))
	}))

	calendar, err := api.FetchSpecialSchedules(context.Background())
	require.NoError(t, err)
	require.Len(t, calendar, 1)
	assert.Equal(t, domain.SpecialScheduleInfo{
		Date:        "2025-07-05",
		Description: "七夕祭臨時ダイヤ",
		Type:        "special_20250705",
	}, calendar[0])
}
