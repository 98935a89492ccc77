package auth

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/2beens/fitpro/internal/api"
	"github.com/2beens/fitpro/internal/session"
	"github.com/2beens/fitpro/internal/users"

	log "github.com/sirupsen/logrus"
)

const (
	MsgCredentialsRequired = "Email and password are required."
	MsgFillAllFields       = "Please fill in all fields"
	MsgAcceptTerms         = "You must accept the terms"
	MsgInvalidBirthDate    = "Invalid date of birth"
	MsgMissingToken        = "Login response did not contain a token."
)

type profileUpdater interface {
	UpdateMe(ctx context.Context, payload users.UpdateMePayload) (*users.User, error)
}

// Authenticator runs the login, signup and logout flows and keeps the
// session store in sync with them.
type Authenticator struct {
	service  *Service
	users    profileUpdater
	sessions *session.Store
}

func NewAuthenticator(service *Service, users profileUpdater, sessions *session.Store) *Authenticator {
	return &Authenticator{
		service:  service,
		users:    users,
		sessions: sessions,
	}
}

// Login validates the credentials, logs in and stores the session. A token
// that could not be persisted still logs the user in for this run.
func (a *Authenticator) Login(ctx context.Context, email, password string) (*users.User, error) {
	if email == "" || password == "" {
		return nil, api.NewValidationError(MsgCredentialsRequired)
	}

	resp, err := a.service.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	if resp.Token == "" {
		return nil, &api.Error{
			Kind:    api.KindDecoding,
			Status:  api.StatusClientFailure,
			Message: MsgMissingToken,
			Err:     session.ErrEmptyToken,
		}
	}

	if err := a.sessions.SetLoggedIn(ctx, resp.User.Email, resp.Token); err != nil {
		log.Warnf("auth: login ok, but %s", err)
	}

	log.Debugf("auth: logged in [%s]", resp.User.Email)
	return &resp.User, nil
}

// Signup creates the account without logging in.
func (a *Authenticator) Signup(ctx context.Context, payload SignupPayload) error {
	if payload.Email == "" || payload.Password == "" || strings.TrimSpace(payload.Name) == "" {
		return api.NewValidationError(MsgFillAllFields)
	}
	if payload.Age <= 0 {
		return api.NewValidationError(MsgInvalidBirthDate)
	}
	return a.service.Signup(ctx, payload)
}

// RegisterRequest is the full onboarding form.
type RegisterRequest struct {
	FirstName     string
	LastName      string
	Email         string
	Password      string
	AcceptedTerms bool
	BirthDate     time.Time
	Gender        string
	// free text, as typed
	WeightKg string
	HeightCm string
	GoalType string
}

// Register signs up, logs in and fills in the profile, in that order.
// The user stays logged in when only the profile update fails.
func (a *Authenticator) Register(ctx context.Context, req RegisterRequest, now time.Time) (*users.User, error) {
	if req.FirstName == "" || req.LastName == "" || req.Email == "" || req.Password == "" {
		return nil, api.NewValidationError(MsgFillAllFields)
	}
	if !req.AcceptedTerms {
		return nil, api.NewValidationError(MsgAcceptTerms)
	}

	age := AgeInYears(req.BirthDate, now)
	if age <= 0 {
		return nil, api.NewValidationError(MsgInvalidBirthDate)
	}

	fullName := strings.TrimSpace(req.FirstName + " " + req.LastName)
	if err := a.service.Signup(ctx, SignupPayload{
		Email:    req.Email,
		Name:     fullName,
		Age:      age,
		Password: req.Password,
	}); err != nil {
		return nil, err
	}

	if _, err := a.Login(ctx, req.Email, req.Password); err != nil {
		return nil, err
	}

	update := users.UpdateMePayload{
		Gender:   users.NilIfEmpty(req.Gender),
		HeightCm: parseFloat(req.HeightCm),
		WeightKg: parseFloat(req.WeightKg),
	}
	if goal := users.NilIfEmpty(req.GoalType); goal != nil {
		update.Goals = &users.Goals{GoalType: goal}
	}

	return a.users.UpdateMe(ctx, update)
}

// Logout drops the session and the persisted token.
func (a *Authenticator) Logout(ctx context.Context) error {
	email := a.sessions.Email()
	if err := a.sessions.Teardown(ctx); err != nil {
		return err
	}
	log.Debugf("auth: logged out [%s]", email)
	return nil
}

// Restore loads a persisted session, if any, and reports whether the user
// is logged in afterwards.
func (a *Authenticator) Restore(ctx context.Context) (bool, error) {
	if err := a.sessions.Init(ctx); err != nil {
		return false, err
	}
	return a.sessions.IsLoggedIn(), nil
}

// AgeInYears counts the full years between birth and now.
func AgeInYears(birth, now time.Time) int {
	if birth.IsZero() || now.Before(birth) {
		return 0
	}
	birth = birth.In(now.Location())
	years := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		years--
	}
	return years
}

func parseFloat(text string) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return nil
	}
	return &v
}
