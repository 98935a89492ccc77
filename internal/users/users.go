package users

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/2beens/fitpro/internal/api"
)

type Goals struct {
	GoalType       *string  `json:"goalType,omitempty"`
	TargetWeightKg *float64 `json:"targetWeightKg,omitempty"`
	WeeklyWorkouts *int     `json:"weeklyWorkouts,omitempty"`
}

type User struct {
	ID           string     `json:"_id"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	Gender       *string    `json:"gender,omitempty"`
	FitnessLevel *string    `json:"fitnessLevel,omitempty"`
	Age          *int       `json:"age,omitempty"`
	HeightCm     *float64   `json:"heightCm,omitempty"`
	WeightKg     *float64   `json:"weightKg,omitempty"`
	Goals        *Goals     `json:"goals,omitempty"`
	CreatedAt    *time.Time `json:"createdAt,omitempty"`
}

// WeeklyWorkoutsGoal returns the user's weekly workouts goal, or 0 when unset.
func (u *User) WeeklyWorkoutsGoal() int {
	if u == nil || u.Goals == nil || u.Goals.WeeklyWorkouts == nil {
		return 0
	}
	return *u.Goals.WeeklyWorkouts
}

// UpdateMePayload is a partial update: nil fields are left untouched.
type UpdateMePayload struct {
	Name         *string  `json:"name,omitempty"`
	Gender       *string  `json:"gender,omitempty"`
	FitnessLevel *string  `json:"fitnessLevel,omitempty"`
	Age          *int     `json:"age,omitempty"`
	HeightCm     *float64 `json:"heightCm,omitempty"`
	WeightKg     *float64 `json:"weightKg,omitempty"`
	Goals        *Goals   `json:"goals,omitempty"`
}

// NilIfEmpty turns a blank form value into "not provided".
func NilIfEmpty(s string) *string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

type Service struct {
	client *api.Client
}

func NewService(client *api.Client) *Service {
	return &Service{
		client: client,
	}
}

func (s *Service) Me(ctx context.Context) (*User, error) {
	user, err := api.Send[User](ctx, s.client, api.Get("/api/users/me", nil))
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateMe sends the partial update and returns the server's canonical user.
func (s *Service) UpdateMe(ctx context.Context, payload UpdateMePayload) (*User, error) {
	user, err := api.Send[User](ctx, s.client, api.Put("/api/users/me", payload))
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *User) String() string {
	return fmt.Sprintf("%s <%s>", u.Name, u.Email)
}
