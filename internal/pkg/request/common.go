package request

import (
	"errors"
	"time"
)

// ErrInvalidDate is returned verbatim to clients when a date query
// parameter does not parse.
var ErrInvalidDate = errors.New("Invalid date format. Use YYYY-MM-DD")

// ParseDate parses a YYYY-MM-DD query parameter.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// ByIDRequest is a common struct for endpoints that require an ID path parameter.
type ByIDRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}

// Validate performs custom validation for ByIDRequest.
func (r *ByIDRequest) Validate() error {
	return nil
}

// ListParams holds the pagination and ordering query parameters shared by
// list endpoints. Module-specific list requests embed it.
type ListParams struct {
	Page      int    `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
	SortOrder string `form:"sort_order" binding:"omitempty,oneof=asc desc ASC DESC"`
}
