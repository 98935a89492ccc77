package exercises

import (
	"context"
	"strconv"
	"time"

	"github.com/2beens/fitpro/internal/api"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
)

type Exercise struct {
	ID          string    `json:"_id"`
	UserID      string    `json:"user"`
	Name        string    `json:"name"`
	Category    *string   `json:"category,omitempty"`
	Sets        *int      `json:"sets,omitempty"`
	Reps        *int      `json:"reps,omitempty"`
	WeightKg    *float64  `json:"weightKg,omitempty"`
	DurationMin *float64  `json:"durationMin,omitempty"`
	Calories    *float64  `json:"calories,omitempty"`
	Notes       *string   `json:"notes,omitempty"`
	PerformedAt time.Time `json:"performedAt"`
}

// DailySummary is one day of the server computed exercise summary.
type DailySummary struct {
	Date             string   `json:"date"`
	TotalDurationMin *float64 `json:"totalDurationMin,omitempty"`
	TotalCalories    *float64 `json:"totalCalories,omitempty"`
	Count            int      `json:"count"`
}

type CreatePayload struct {
	Name        string    `json:"name"`
	Category    *string   `json:"category,omitempty"`
	Sets        *int      `json:"sets,omitempty"`
	Reps        *int      `json:"reps,omitempty"`
	WeightKg    *float64  `json:"weightKg,omitempty"`
	DurationMin *float64  `json:"durationMin,omitempty"`
	Calories    *float64  `json:"calories,omitempty"`
	Notes       *string   `json:"notes,omitempty"`
	PerformedAt *api.Time `json:"performedAt,omitempty"`
}

// ListQuery filters the exercise list. From and To are "YYYY-MM-DD" keys.
type ListQuery struct {
	From  string
	To    string
	Page  int
	Limit int
}

func (q ListQuery) params() map[string]string {
	page, limit := q.Page, q.Limit
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}

	params := map[string]string{
		"page":  strconv.Itoa(page),
		"limit": strconv.Itoa(limit),
	}
	if q.From != "" {
		params["from"] = q.From
	}
	if q.To != "" {
		params["to"] = q.To
	}
	return params
}

type Service struct {
	client *api.Client
}

func NewService(client *api.Client) *Service {
	return &Service{
		client: client,
	}
}

func (s *Service) Create(ctx context.Context, payload CreatePayload) (*Exercise, error) {
	exercise, err := api.Send[Exercise](ctx, s.client, api.Post("/api/exercises", payload))
	if err != nil {
		return nil, err
	}
	return &exercise, nil
}

func (s *Service) List(ctx context.Context, q ListQuery) (*api.Paged[Exercise], error) {
	paged, err := api.Send[api.Paged[Exercise]](ctx, s.client, api.Get("/api/exercises", q.params()))
	if err != nil {
		return nil, err
	}
	return &paged, nil
}

// Summary returns the server computed per-day totals for [from, to].
func (s *Service) Summary(ctx context.Context, from, to string) ([]DailySummary, error) {
	return api.Send[[]DailySummary](ctx, s.client, api.Get("/api/exercises/summary", map[string]string{
		"from": from,
		"to":   to,
	}))
}

// Last returns the most recent exercise logged under name, or nil when
// there is none.
func (s *Service) Last(ctx context.Context, name string) (*Exercise, error) {
	return api.Send[*Exercise](ctx, s.client, api.Get("/api/exercises/last", map[string]string{
		"name": name,
	}))
}
