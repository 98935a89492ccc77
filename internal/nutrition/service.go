package nutrition

import (
	"context"
	"net/url"
	"time"

	"github.com/2beens/fitpro/internal/api"
	"github.com/2beens/fitpro/pkg"
)

// Service talks to the nutrition endpoints. Days are keyed in the
// location of the time value passed in.
type Service struct {
	client *api.Client
}

func NewService(client *api.Client) *Service {
	return &Service{
		client: client,
	}
}

func (s *Service) Summary(ctx context.Context, day time.Time) (*Summary, error) {
	summary, err := api.Send[Summary](ctx, s.client, api.Get("/api/nutrition/summary", map[string]string{
		"date": pkg.DayKey(day, day.Location()),
	}))
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// ListMeals returns the meals logged on the calendar day of day.
func (s *Service) ListMeals(ctx context.Context, day time.Time) ([]Meal, error) {
	key := pkg.DayKey(day, day.Location())
	return s.ListMealsRange(ctx, key, key)
}

func (s *Service) ListMealsRange(ctx context.Context, from, to string) ([]Meal, error) {
	return api.Send[[]Meal](ctx, s.client, api.Get("/api/nutrition/meals", map[string]string{
		"from": from,
		"to":   to,
	}))
}

func (s *Service) CreateMeal(ctx context.Context, payload CreateMealPayload) (*Meal, error) {
	meal, err := api.Send[Meal](ctx, s.client, api.Post("/api/nutrition/meals", payload))
	if err != nil {
		return nil, err
	}
	return &meal, nil
}

func (s *Service) DeleteMeal(ctx context.Context, id string) error {
	_, err := api.Send[api.Void](ctx, s.client, api.Delete("/api/nutrition/meals/"+url.PathEscape(id)))
	return err
}
