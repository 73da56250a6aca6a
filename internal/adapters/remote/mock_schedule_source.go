package remote

import (
	"context"
	"fmt"
	"sync"

	"sfc-bus-schedule/internal/domain"
)

// MockScheduleSource is an in-memory ports.ScheduleSource keyed by
// "{direction}_{pathComponent}". Unregistered datasets fail with ErrTransport.
type MockScheduleSource struct {
	mu         sync.Mutex
	datasets   map[string][]domain.ScheduleEntry
	errs       map[string]error
	special    []domain.SpecialScheduleInfo
	specialErr error
	calls      []string
}

func NewMockScheduleSource() *MockScheduleSource {
	return &MockScheduleSource{
		datasets: map[string][]domain.ScheduleEntry{},
		errs:     map[string]error{},
	}
}

func mockKey(direction domain.Direction, scheduleType domain.ScheduleType) string {
	return string(direction) + "_" + scheduleType.PathComponent()
}

func (m *MockScheduleSource) SetSchedules(direction domain.Direction, scheduleType domain.ScheduleType, s []domain.ScheduleEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := mockKey(direction, scheduleType)
	m.datasets[k] = s
	delete(m.errs, k)
}

func (m *MockScheduleSource) FailSchedules(direction domain.Direction, scheduleType domain.ScheduleType, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs[mockKey(direction, scheduleType)] = err
}

func (m *MockScheduleSource) SetSpecialSchedules(calendar []domain.SpecialScheduleInfo, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.special = calendar
	m.specialErr = err
}

// Calls lists requested resources in order: dataset keys and "special_schedules".
func (m *MockScheduleSource) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *MockScheduleSource) FetchSchedules(
	ctx context.Context,
	direction domain.Direction,
	scheduleType domain.ScheduleType,
) ([]domain.ScheduleEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := mockKey(direction, scheduleType)
	m.calls = append(m.calls, k)

	if err, ok := m.errs[k]; ok {
		return nil, err
	}
	s, ok := m.datasets[k]
	if !ok {
		return nil, &FetchError{Kind: ErrTransport, URL: k, Err: fmt.Errorf("missing dataset %q", k)}
	}
	return s, nil
}

func (m *MockScheduleSource) FetchSpecialSchedules(ctx context.Context) ([]domain.SpecialScheduleInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, "special_schedules")
	if m.specialErr != nil {
		return nil, m.specialErr
	}
	return m.special, nil
}
