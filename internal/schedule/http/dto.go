package http

import (
	"errors"
	"time"

	"github.com/courtable/club-booking-backend/internal/schedule"
)

// ClubURIRequest binds /clubs/:id schedule URIs.
type ClubURIRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}

// SpecialDateURIRequest binds /clubs/:id/special-dates/:date URIs. The date
// segment is validated in the handler so the error message stays uniform.
type SpecialDateURIRequest struct {
	ID   string `uri:"id" binding:"required,uuid"`
	Date string `uri:"date" binding:"required"`
}

// SetWeeklyDayRequest is the payload for PUT /clubs/:id/schedule/:weekday.
type SetWeeklyDayRequest struct {
	OpenHour  *int `json:"open_hour" binding:"omitempty,min=0,max=24"`
	CloseHour *int `json:"close_hour" binding:"omitempty,min=0,max=24"`
}

func (r *SetWeeklyDayRequest) Validate() error {
	if r.OpenHour != nil && r.CloseHour != nil && *r.OpenHour >= *r.CloseHour {
		return errors.New("open_hour must be before close_hour")
	}
	return nil
}

// CreateSpecialDateRequest is the payload for POST /clubs/:id/special-dates.
type CreateSpecialDateRequest struct {
	Date      string  `json:"date" binding:"required"`
	OpenHour  int     `json:"open_hour" binding:"min=0,max=24"`
	CloseHour int     `json:"close_hour" binding:"min=0,max=24"`
	IsClosed  bool    `json:"is_closed"`
	Reason    *string `json:"reason"`
}

// UpdateSpecialDateRequest is the payload for PATCH /clubs/:id/special-dates/:date.
type UpdateSpecialDateRequest struct {
	OpenHour  *int    `json:"open_hour" binding:"omitempty,min=0,max=24"`
	CloseHour *int    `json:"close_hour" binding:"omitempty,min=0,max=24"`
	IsClosed  *bool   `json:"is_closed"`
	Reason    *string `json:"reason"`
}

// DayHoursResponse is one entry of the weekly schedule. Nil hours mean the
// platform default applies for that side of the window.
type DayHoursResponse struct {
	Weekday   int  `json:"weekday"`
	OpenHour  *int `json:"open_hour"`
	CloseHour *int `json:"close_hour"`
}

// WeeklyScheduleResponse is the full weekly schedule, Sunday first.
type WeeklyScheduleResponse struct {
	ClubID string             `json:"club_id"`
	Days   []DayHoursResponse `json:"days"`
}

func NewWeeklyScheduleResponse(ws *schedule.WeeklySchedule) WeeklyScheduleResponse {
	days := make([]DayHoursResponse, 7)
	for i, d := range ws.Days {
		days[i] = DayHoursResponse{
			Weekday:   i,
			OpenHour:  d.OpenHour,
			CloseHour: d.CloseHour,
		}
	}
	return WeeklyScheduleResponse{ClubID: ws.ClubID, Days: days}
}

// SpecialDateResponse is the public view of a per-date override.
type SpecialDateResponse struct {
	ID        string    `json:"id"`
	ClubID    string    `json:"club_id"`
	Date      string    `json:"date"`
	OpenHour  int       `json:"open_hour"`
	CloseHour int       `json:"close_hour"`
	IsClosed  bool      `json:"is_closed"`
	Reason    *string   `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}

func NewSpecialDateResponse(sd *schedule.SpecialDate) SpecialDateResponse {
	return SpecialDateResponse{
		ID:        sd.ID,
		ClubID:    sd.ClubID,
		Date:      sd.Date.Format("2006-01-02"),
		OpenHour:  sd.OpenHour,
		CloseHour: sd.CloseHour,
		IsClosed:  sd.IsClosed,
		Reason:    sd.Reason,
		CreatedAt: sd.CreatedAt,
	}
}

// BusinessHoursResponse is the effective window for one club date.
type BusinessHoursResponse struct {
	Date      string `json:"date"`
	OpenHour  int    `json:"open_hour"`
	CloseHour int    `json:"close_hour"`
	Closed    bool   `json:"closed"`
}

func NewBusinessHoursResponse(date time.Time, bh schedule.BusinessHours) BusinessHoursResponse {
	return BusinessHoursResponse{
		Date:      date.Format("2006-01-02"),
		OpenHour:  bh.OpenHour,
		CloseHour: bh.CloseHour,
		Closed:    bh.Closed,
	}
}
