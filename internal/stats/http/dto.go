package http

import (
	"time"

	"github.com/courtable/club-booking-backend/internal/stats"
)

type ClubURIRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}

type DailyStatisticResponse struct {
	Date          string    `json:"date"`
	BookingCount  int       `json:"booking_count"`
	BookedHours   float64   `json:"booked_hours"`
	OpenHours     float64   `json:"open_hours"`
	OccupancyRate float64   `json:"occupancy_rate"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type StatisticsResponse struct {
	ClubID string                   `json:"club_id"`
	From   string                   `json:"from"`
	To     string                   `json:"to"`
	Days   []DailyStatisticResponse `json:"days"`
}

func NewStatisticsResponse(clubID, from, to string, items []*stats.DailyStatistic) StatisticsResponse {
	days := make([]DailyStatisticResponse, len(items))
	for i, st := range items {
		days[i] = DailyStatisticResponse{
			Date:          st.Date,
			BookingCount:  st.BookingCount,
			BookedHours:   st.BookedHours,
			OpenHours:     st.OpenHours,
			OccupancyRate: st.OccupancyRate,
			UpdatedAt:     st.UpdatedAt,
		}
	}
	return StatisticsResponse{ClubID: clubID, From: from, To: to, Days: days}
}
