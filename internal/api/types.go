package api

import (
	"encoding/json"
	"time"
)

// Paged wraps any list endpoint that paginates.
type Paged[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page"`
	// the backend sends pages but not always limit
	Limit *int `json:"limit,omitempty"`
	Pages *int `json:"pages,omitempty"`
}

// Time is a timestamp that is always written as ISO-8601 in UTC with
// second precision, e.g. 2024-05-01T10:00:00Z.
type Time struct {
	time.Time
}

func NewTime(t time.Time) Time {
	return Time{Time: t}
}

func (t Time) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.UTC().Format(time.RFC3339))
}

// UnmarshalJSON leaves t unchanged for a JSON null.
func (t *Time) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}
