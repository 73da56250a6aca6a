package remote

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"sfc-bus-schedule/internal/domain"
	"sfc-bus-schedule/internal/platform/obs"
)

const DefaultBaseURL = "https://sugijotaro.github.io/sfc-bus-schedule/data/v1"

// ScheduleAPI implements ports.ScheduleSource against the published
// sfc-bus-schedule JSON files.
//
// The API is safe for concurrent use.
type ScheduleAPI struct {
	client  *Client
	baseURL string
}

func NewScheduleAPI(client *Client, baseURL string) (*ScheduleAPI, error) {
	if client == nil {
		return nil, errors.New("new schedule api: client is nil")
	}

	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}

	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("new schedule api: %w: %w", ErrInvalidRequest, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("new schedule api: %w: base url %q must be absolute http(s)", ErrInvalidRequest, baseURL)
	}

	return &ScheduleAPI{client: client, baseURL: base}, nil
}

// ScheduleURL is {base}/flat/{direction}_{pathComponent}.json.
func ScheduleURL(baseURL string, direction domain.Direction, scheduleType domain.ScheduleType) string {
	return fmt.Sprintf("%s/flat/%s_%s.json", baseURL, direction, scheduleType.PathComponent())
}

// SpecialSchedulesURL is {base}/special_schedules.json.
func SpecialSchedulesURL(baseURL string) string {
	return baseURL + "/special_schedules.json"
}

func (a *ScheduleAPI) BaseURL() string { return a.baseURL }

// FetchSchedules downloads one timetable dataset. Entries are validated
// after decoding; a structurally broken dataset fails with ErrMalformedDataset.
func (a *ScheduleAPI) FetchSchedules(
	ctx context.Context,
	direction domain.Direction,
	scheduleType domain.ScheduleType,
) (_ []domain.ScheduleEntry, err error) {
	defer obs.Time(ctx, "remote.FetchSchedules")(&err)

	if scheduleType.IsUnknown() {
		return nil, &FetchError{
			Kind: ErrInvalidRequest,
			URL:  ScheduleURL(a.baseURL, direction, scheduleType),
			Err:  errors.New("schedule type is unknown"),
		}
	}

	endpoint := ScheduleURL(a.baseURL, direction, scheduleType)

	schedules, err := FetchJSON[[]domain.ScheduleEntry](ctx, a.client, endpoint)
	if err != nil {
		recordFetch("schedules", err)
		return nil, err
	}

	for _, s := range schedules {
		if verr := s.Validate(); verr != nil {
			err = &FetchError{Kind: ErrMalformedDataset, URL: endpoint, Err: verr}
			recordFetch("schedules", err)
			return nil, err
		}
	}

	recordFetch("schedules", nil)
	return schedules, nil
}

// FetchSpecialSchedules downloads the special timetable calendar.
func (a *ScheduleAPI) FetchSpecialSchedules(ctx context.Context) (_ []domain.SpecialScheduleInfo, err error) {
	defer obs.Time(ctx, "remote.FetchSpecialSchedules")(&err)

	calendar, err := FetchJSON[[]domain.SpecialScheduleInfo](ctx, a.client, SpecialSchedulesURL(a.baseURL))
	recordFetch("special_schedules", err)
	if err != nil {
		return nil, err
	}
	return calendar, nil
}

func recordFetch(resource string, err error) {
	outcome := "ok"
	switch {
	case err == nil:
	case errors.Is(err, ErrDecoding):
		outcome = "decoding"
	case errors.Is(err, ErrMalformedDataset):
		outcome = "malformed"
	case errors.Is(err, ErrInvalidRequest):
		outcome = "invalid_request"
	default:
		outcome = "transport"
	}
	obs.RemoteFetches.WithLabelValues(resource, outcome).Inc()
}
