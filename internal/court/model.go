package court

import (
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("court not found")
	ErrEmptyName    = errors.New("name cannot be empty")
	ErrInvalidClub  = errors.New("invalid club_id")
	ErrInvalidSport = errors.New("invalid sport_id")
	ErrInvalidHours = errors.New("court hours must satisfy 0 <= open < close <= 24")
)

// Court represents a bookable unit inside a club (e.g., Court A, Court 3).
// OpenHour and CloseHour optionally narrow the club's business hours for
// this court only; nil means the club hours apply unchanged.
type Court struct {
	ID        string
	ClubID    string
	SportID   string
	Name      string
	OpenHour  *int
	CloseHour *int
	CreatedAt time.Time
}

// Filter defines parameters for listing courts.
type Filter struct {
	ClubID    string
	SportID   string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
