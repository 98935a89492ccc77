package workouts

import (
	"context"
	"net/url"

	"github.com/2beens/fitpro/internal/api"
)

type Service struct {
	client *api.Client
}

func NewService(client *api.Client) *Service {
	return &Service{
		client: client,
	}
}

func (s *Service) ListRoutines(ctx context.Context) ([]Routine, error) {
	return api.Send[[]Routine](ctx, s.client, api.Get("/api/workouts", nil))
}

func (s *Service) CreateRoutine(ctx context.Context, payload RoutinePayload) (*Routine, error) {
	routine, err := api.Send[Routine](ctx, s.client, api.Post("/api/workouts", payload))
	if err != nil {
		return nil, err
	}
	return &routine, nil
}

func (s *Service) UpdateRoutine(ctx context.Context, id string, payload RoutinePayload) (*Routine, error) {
	routine, err := api.Send[Routine](ctx, s.client, api.Patch("/api/workouts/"+url.PathEscape(id), payload))
	if err != nil {
		return nil, err
	}
	return &routine, nil
}

func (s *Service) DeleteRoutine(ctx context.Context, id string) error {
	_, err := api.Send[api.Void](ctx, s.client, api.Delete("/api/workouts/"+url.PathEscape(id)))
	return err
}

func (s *Service) CreateSession(ctx context.Context, payload CreateSessionPayload) (*Session, error) {
	session, err := api.Send[Session](ctx, s.client, api.Post("/api/workouts/sessions", payload))
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// ListSessions returns the sessions in [from, to]; empty bounds are not sent.
func (s *Service) ListSessions(ctx context.Context, from, to string) ([]Session, error) {
	query := map[string]string{}
	if from != "" {
		query["from"] = from
	}
	if to != "" {
		query["to"] = to
	}
	return api.Send[[]Session](ctx, s.client, api.Get("/api/workouts/sessions", query))
}

func (s *Service) DeleteSession(ctx context.Context, id string) error {
	_, err := api.Send[api.Void](ctx, s.client, api.Delete("/api/workouts/sessions/"+url.PathEscape(id)))
	return err
}
