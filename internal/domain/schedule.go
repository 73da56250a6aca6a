package domain

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// Route operated on the SFC corridor. Unrecognised codes decode as RouteUnknown.
type RouteCode string

const (
	RouteSho19   RouteCode = "sho19"
	RouteSho23   RouteCode = "sho23"
	RouteSho24   RouteCode = "sho24"
	RouteSho25   RouteCode = "sho25"
	RouteSho28   RouteCode = "sho28"
	RouteUnknown RouteCode = "unknown"
)

func (c *RouteCode) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("decode route code: %w", err)
	}

	switch rc := RouteCode(raw); rc {
	case RouteSho19, RouteSho23, RouteSho24, RouteSho25, RouteSho28:
		*c = rc
	default:
		*c = RouteUnknown
	}
	return nil
}

// Represents one timetabled bus trip.
// Time and Minute are local wall-clock values with no time zone attached.
type ScheduleEntry struct {
	ID           string       `json:"id"`
	Time         int          `json:"time"`
	Minute       int          `json:"minute"`
	ScheduleType ScheduleType `json:"scheduleType"`
	RouteCode    RouteCode    `json:"routeCode"`
	RouteName    string       `json:"routeName"`
	Name         string       `json:"name"`
	Origin       string       `json:"origin"`
	Destination  string       `json:"destination"`
	Via          string       `json:"via"`
	Direction    Direction    `json:"sfc_direction"`
	Metadata     Metadata     `json:"metadata"`
}

type Metadata struct {
	Stops []Stop `json:"stops"`
}

// A stop along a trip. CumulativeTime counts minutes since the trip departed.
type Stop struct {
	Name           string  `json:"name"`
	CumulativeTime int     `json:"cumulative_time"`
	Arrival        Arrival `json:"arrival"`
}

type Arrival struct {
	Time   int `json:"time"`
	Minute int `json:"minute"`
}

// DepartureTime places the departure on the calendar day of reference,
// interpreted in reference's location.
func (e ScheduleEntry) DepartureTime(reference time.Time) time.Time {
	y, m, d := reference.Date()
	return time.Date(y, m, d, e.Time, e.Minute, 0, 0, reference.Location())
}

// Validate checks the structural invariants consumers rely on: a trip has at
// least one stop and cumulative times never decrease along the trip.
func (e ScheduleEntry) Validate() error {
	if len(e.Metadata.Stops) == 0 {
		return fmt.Errorf("schedule %q: no stops", e.ID)
	}

	prev := e.Metadata.Stops[0].CumulativeTime
	for i, s := range e.Metadata.Stops[1:] {
		if s.CumulativeTime < prev {
			return fmt.Errorf(
				"schedule %q: stop %d (%q) cumulative_time %d is before previous %d",
				e.ID, i+2, s.Name, s.CumulativeTime, prev,
			)
		}
		prev = s.CumulativeTime
	}

	return nil
}
