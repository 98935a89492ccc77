package auth

import (
	"context"

	"github.com/2beens/fitpro/internal/api"
	"github.com/2beens/fitpro/internal/users"
)

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User  users.User `json:"user"`
	Token string     `json:"token"`
}

type SignupPayload struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Age      int    `json:"age"`
	Password string `json:"password"`
}

// Service wraps the unauthenticated auth endpoints.
type Service struct {
	client *api.Client
}

func NewService(client *api.Client) *Service {
	return &Service{
		client: client,
	}
}

func (s *Service) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	resp, err := api.Send[LoginResponse](ctx, s.client, api.Post("/api/auth/login", Credentials{
		Email:    email,
		Password: password,
	}))
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *Service) Signup(ctx context.Context, payload SignupPayload) error {
	_, err := api.Send[api.Void](ctx, s.client, api.Post("/api/auth/signup", payload))
	return err
}
