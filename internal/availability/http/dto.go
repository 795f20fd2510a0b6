package http

import (
	"time"

	"github.com/courtable/club-booking-backend/internal/availability"
)

// BusinessHoursResponse is the resolved window the slots were generated
// from.
type BusinessHoursResponse struct {
	OpenHour  int `json:"open_hour"`
	CloseHour int `json:"close_hour"`
}

// SlotResponse is one slot of a court's day.
type SlotResponse struct {
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	Status        string    `json:"status"`
	Blocked       bool      `json:"blocked"`
	BlockedReason *string   `json:"blocked_reason,omitempty"`
}

// CourtAvailabilityResponse is one court's classified day.
type CourtAvailabilityResponse struct {
	CourtID       string                `json:"court_id"`
	CourtName     string                `json:"court_name"`
	Date          string                `json:"date"`
	Closed        bool                  `json:"closed"`
	BusinessHours BusinessHoursResponse `json:"business_hours"`
	Slots         []SlotResponse        `json:"slots"`
}

func NewCourtAvailabilityResponse(ca *availability.CourtAvailability) CourtAvailabilityResponse {
	slots := make([]SlotResponse, len(ca.Slots))
	for i, s := range ca.Slots {
		sr := SlotResponse{
			Start:   s.Start,
			End:     s.End,
			Status:  string(s.Status),
			Blocked: s.Blocked,
		}
		if s.BlockReason != "" {
			reason := s.BlockReason
			sr.BlockedReason = &reason
		}
		slots[i] = sr
	}
	return CourtAvailabilityResponse{
		CourtID:   ca.CourtID,
		CourtName: ca.CourtName,
		Date:      ca.Date.Format("2006-01-02"),
		Closed:    ca.Closed,
		BusinessHours: BusinessHoursResponse{
			OpenHour:  ca.Hours.OpenHour,
			CloseHour: ca.Hours.CloseHour,
		},
		Slots: slots,
	}
}
