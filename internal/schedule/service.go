package schedule

import (
	"context"
	"time"
)

// SetWeeklyDayRequest carries one weekly-schedule entry. Nil hours mean "use
// the platform default for this side of the window".
type SetWeeklyDayRequest struct {
	Weekday   int
	OpenHour  *int
	CloseHour *int
}

// CreateSpecialDateRequest carries data to create a per-date override.
type CreateSpecialDateRequest struct {
	ClubID    string
	Date      time.Time
	OpenHour  int
	CloseHour int
	IsClosed  bool
	Reason    *string
}

// UpdateSpecialDateRequest carries data for partial updates.
type UpdateSpecialDateRequest struct {
	OpenHour  *int
	CloseHour *int
	IsClosed  *bool
	Reason    *string
}

type Service interface {
	GetWeekly(ctx context.Context, clubID string) (*WeeklySchedule, error)
	SetWeeklyDay(ctx context.Context, clubID string, req SetWeeklyDayRequest) error

	GetSpecialDate(ctx context.Context, clubID string, date time.Time) (*SpecialDate, error)
	ListSpecialDates(ctx context.Context, clubID string, from, to time.Time) ([]*SpecialDate, error)
	CreateSpecialDate(ctx context.Context, req CreateSpecialDateRequest) (*SpecialDate, error)
	UpdateSpecialDate(ctx context.Context, clubID string, date time.Time, req UpdateSpecialDateRequest) (*SpecialDate, error)
	DeleteSpecialDate(ctx context.Context, clubID string, date time.Time) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func validHourPair(open, close int) bool {
	return open >= 0 && close <= 24 && open < close
}

func (s *service) GetWeekly(ctx context.Context, clubID string) (*WeeklySchedule, error) {
	ws, err := s.repo.GetWeekly(ctx, clubID)
	if err != nil {
		return nil, err
	}
	if ws == nil {
		// No rows yet: expose an empty schedule rather than nil.
		ws = &WeeklySchedule{ClubID: clubID}
	}
	return ws, nil
}

func (s *service) SetWeeklyDay(ctx context.Context, clubID string, req SetWeeklyDayRequest) error {
	if req.Weekday < 0 || req.Weekday > 6 {
		return ErrInvalidDayOfWeek
	}
	if req.OpenHour != nil && req.CloseHour != nil && !validHourPair(*req.OpenHour, *req.CloseHour) {
		return ErrInvalidHours
	}
	return s.repo.SetWeeklyDay(ctx, clubID, req.Weekday, DayHours{
		OpenHour:  req.OpenHour,
		CloseHour: req.CloseHour,
	})
}

func (s *service) GetSpecialDate(ctx context.Context, clubID string, date time.Time) (*SpecialDate, error) {
	return s.repo.GetSpecialDate(ctx, clubID, date)
}

func (s *service) ListSpecialDates(ctx context.Context, clubID string, from, to time.Time) ([]*SpecialDate, error) {
	return s.repo.ListSpecialDates(ctx, clubID, from, to)
}

func (s *service) CreateSpecialDate(ctx context.Context, req CreateSpecialDateRequest) (*SpecialDate, error) {
	if !req.IsClosed && !validHourPair(req.OpenHour, req.CloseHour) {
		return nil, ErrInvalidHours
	}

	sd := &SpecialDate{
		ClubID:    req.ClubID,
		Date:      req.Date,
		OpenHour:  req.OpenHour,
		CloseHour: req.CloseHour,
		IsClosed:  req.IsClosed,
		Reason:    req.Reason,
	}
	if err := s.repo.CreateSpecialDate(ctx, sd); err != nil {
		return nil, err
	}
	return sd, nil
}

func (s *service) UpdateSpecialDate(ctx context.Context, clubID string, date time.Time, req UpdateSpecialDateRequest) (*SpecialDate, error) {
	sd, err := s.repo.GetSpecialDate(ctx, clubID, date)
	if err != nil {
		return nil, err
	}

	if req.OpenHour != nil {
		sd.OpenHour = *req.OpenHour
	}
	if req.CloseHour != nil {
		sd.CloseHour = *req.CloseHour
	}
	if req.IsClosed != nil {
		sd.IsClosed = *req.IsClosed
	}
	if req.Reason != nil {
		sd.Reason = req.Reason
	}

	if !sd.IsClosed && !validHourPair(sd.OpenHour, sd.CloseHour) {
		return nil, ErrInvalidHours
	}

	if err := s.repo.UpdateSpecialDate(ctx, sd); err != nil {
		return nil, err
	}
	return sd, nil
}

func (s *service) DeleteSpecialDate(ctx context.Context, clubID string, date time.Time) error {
	sd, err := s.repo.GetSpecialDate(ctx, clubID, date)
	if err != nil {
		return err
	}
	return s.repo.DeleteSpecialDate(ctx, sd.ID)
}
