package announcement

import (
	"errors"
	"time"
)

var (
	ErrNotFound        = errors.New("announcement not found")
	ErrTitleRequired   = errors.New("title is required")
	ErrContentRequired = errors.New("content is required")
	ErrClubNotFound    = errors.New("club not found")
)

// Announcement is a news post. ClubID is nil for platform-wide
// announcements and set for club notices.
type Announcement struct {
	ID        string
	ClubID    *string
	ClubName  string
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Filter defines parameters for listing announcements. A set ClubID
// returns that club's notices together with platform-wide posts.
type Filter struct {
	ClubID    string
	Keyword   string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
