package schedule

import (
	"context"
	"errors"
	"time"
)

// ClubLookup provides the club-local timezone used for calendar normalization.
type ClubLookup interface {
	// Timezone returns the club's IANA location. Implementations must return
	// ErrClubNotFound (wrapped or not) when the club does not exist.
	Timezone(ctx context.Context, clubID string) (*time.Location, error)
}

// CourtHoursLookup provides the optional per-court hour override.
type CourtHoursLookup interface {
	// HoursOverride returns nil when the court carries no override. A missing
	// court is reported via ErrCourtNotFound.
	HoursOverride(ctx context.Context, courtID string) (*CourtHours, error)
}

// Sentinel errors the resolver recognizes from its lookups.
var (
	ErrClubNotFound  = errors.New("club not found")
	ErrCourtNotFound = errors.New("court not found")
)

// Resolver computes the effective business hours for a club/court/date by
// applying the precedence chain: special date, then weekly schedule, then the
// platform default, and finally the court-level narrowing.
type Resolver struct {
	repo     Repository
	clubs    ClubLookup
	courts   CourtHoursLookup
	defaults Defaults
}

func NewResolver(repo Repository, clubs ClubLookup, courts CourtHoursLookup, defaults Defaults) *Resolver {
	return &Resolver{
		repo:     repo,
		clubs:    clubs,
		courts:   courts,
		defaults: defaults,
	}
}

// Resolve returns the business hours for clubID on date. courtID may be empty
// to resolve club-level hours. Missing configuration never fails: an unknown
// club, an absent weekly entry, or an unknown court all degrade to documented
// defaults. Only storage failures are returned as errors.
func (r *Resolver) Resolve(ctx context.Context, clubID string, date time.Time, courtID string) (BusinessHours, error) {
	loc, err := r.clubs.Timezone(ctx, clubID)
	if err != nil {
		if errors.Is(err, ErrClubNotFound) {
			// No club record means no configured hours: fully open by default.
			return BusinessHours{OpenHour: r.defaults.OpenHour, CloseHour: r.defaults.CloseHour}, nil
		}
		return BusinessHours{}, err
	}

	day := DateOnly(date, loc)

	special, err := r.repo.GetSpecialDate(ctx, clubID, day)
	if err != nil && !errors.Is(err, ErrSpecialDateNotFound) {
		return BusinessHours{}, err
	}

	var weekly *WeeklySchedule
	if special == nil {
		weekly, err = r.repo.GetWeekly(ctx, clubID)
		if err != nil {
			return BusinessHours{}, err
		}
	}

	clubHours := resolveClubHours(special, weekly, day.Weekday(), r.defaults)

	if courtID == "" || clubHours.Closed {
		return clubHours, nil
	}

	override, err := r.courts.HoursOverride(ctx, courtID)
	if err != nil {
		if errors.Is(err, ErrCourtNotFound) {
			// Behave as if no override existed.
			return clubHours, nil
		}
		return BusinessHours{}, err
	}

	return narrowForCourt(clubHours, override), nil
}

// resolveClubHours applies the club-level precedence chain. The special date,
// when present, is authoritative: the weekly schedule is not consulted.
func resolveClubHours(special *SpecialDate, weekly *WeeklySchedule, weekday time.Weekday, defaults Defaults) BusinessHours {
	if special != nil {
		if special.IsClosed {
			return BusinessHours{Closed: true}
		}
		return BusinessHours{OpenHour: special.OpenHour, CloseHour: special.CloseHour}
	}

	hours := BusinessHours{OpenHour: defaults.OpenHour, CloseHour: defaults.CloseHour}
	if weekly == nil {
		return hours
	}

	day := weekly.Days[int(weekday)]
	if day.OpenHour != nil {
		hours.OpenHour = *day.OpenHour
	}
	if day.CloseHour != nil {
		hours.CloseHour = *day.CloseHour
	}
	if hours.OpenHour >= hours.CloseHour {
		// Misconfigured weekly entry: fall back to the platform window.
		return BusinessHours{OpenHour: defaults.OpenHour, CloseHour: defaults.CloseHour}
	}
	return hours
}

// narrowForCourt intersects the club window with the court override. The court
// may only narrow the window; an inverted result discards the override.
func narrowForCourt(club BusinessHours, court *CourtHours) BusinessHours {
	if court == nil {
		return club
	}

	open := club.OpenHour
	if court.OpenHour != nil && *court.OpenHour > open {
		open = *court.OpenHour
	}
	closeH := club.CloseHour
	if court.CloseHour != nil && *court.CloseHour < closeH {
		closeH = *court.CloseHour
	}

	if open >= closeH {
		return club
	}
	return BusinessHours{OpenHour: open, CloseHour: closeH}
}

// DateOnly normalizes t to midnight of its calendar day in loc.
func DateOnly(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}
