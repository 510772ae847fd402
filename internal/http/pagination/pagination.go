package pagination

import (
	"net/http"
	"strconv"

	"usersvc/internal/http/responses"
)

const (
	DefaultLimit = 20
	MinLimit     = 1
	MaxLimit     = 1000
)

// OffsetLimit is the page boundary for list endpoints.
type OffsetLimit struct {
	Offset int
	Limit  int
}

// Skip is the item count the storage layer skips; it equals Offset.
func (p OffsetLimit) Skip() int {
	return p.Offset
}

// Page is the paged-result shape. TotalCount spans all records so
// clients can compute total pages; offset and limit are echoed back.
type Page struct {
	Items      any `json:"items"`
	TotalCount int `json:"total_count"`
	Offset     int `json:"offset"`
	Limit      int `json:"limit"`
}

// ParseQuery reads offset/limit from the query string. Missing values
// fall back to offset=0, limit=DefaultLimit. A non-numeric value or a
// negative offset is a validation failure; an out-of-range limit is
// clamped into [MinLimit, MaxLimit] rather than rejected.
func ParseQuery(r *http.Request) (OffsetLimit, []responses.FieldError) {
	p := OffsetLimit{Offset: 0, Limit: DefaultLimit}
	var fields []responses.FieldError

	if raw := r.URL.Query().Get("offset"); raw != "" {
		v, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			fields = append(fields, responses.FieldError{Field: "offset", Message: "must be an integer"})
		case v < 0:
			fields = append(fields, responses.FieldError{Field: "offset", Message: "must be greater than or equal to 0"})
		default:
			p.Offset = v
		}
	}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			fields = append(fields, responses.FieldError{Field: "limit", Message: "must be an integer"})
		} else {
			p.Limit = clampLimit(v)
		}
	}

	if len(fields) > 0 {
		return OffsetLimit{}, fields
	}
	return p, nil
}

func clampLimit(v int) int {
	if v < MinLimit {
		return MinLimit
	}
	if v > MaxLimit {
		return MaxLimit
	}
	return v
}
