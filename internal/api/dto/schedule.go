package dto

import "sfc-bus-schedule/internal/domain"

type ScheduleResponse struct {
	Direction   domain.Direction            `json:"direction"`
	Date        string                      `json:"date,omitempty"`
	Day         domain.Day                  `json:"day,omitempty"`
	Source      domain.Source               `json:"source"`
	SpecialInfo *domain.SpecialScheduleInfo `json:"specialInfo,omitempty"`
	Schedules   []domain.ScheduleEntry      `json:"schedules"`
}

type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
