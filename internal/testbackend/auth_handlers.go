package testbackend

import (
	"errors"
	"net/http"
	"time"

	"github.com/2beens/fitpro/internal/auth"
	"github.com/2beens/fitpro/internal/users"
	"github.com/2beens/fitpro/pkg"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

var errUserExists = errors.New("User already exists")

func (b *Backend) handleHealth(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteEnvelope(w, http.StatusOK, map[string]any{
		"status": "ok",
		"time":   b.now().UTC().Format(time.RFC3339),
	})
}

func (b *Backend) handleSignup(w http.ResponseWriter, r *http.Request) {
	var payload auth.SignupPayload
	if !decodeBody(w, r, &payload) {
		return
	}
	if blank(payload.Email) || blank(payload.Name) || payload.Password == "" {
		pkg.WriteEnvelopeError(w, http.StatusBadRequest, "Email, name and password are required")
		return
	}

	var age *int
	if payload.Age > 0 {
		age = &payload.Age
	}
	user, err := b.createAccount(payload.Email, payload.Name, payload.Password, age, b.passwordCost)
	if err != nil {
		if errors.Is(err, errUserExists) {
			pkg.WriteEnvelopeError(w, http.StatusConflict, err.Error())
			return
		}
		log.Errorf("testbackend: create account: %s", err)
		pkg.WriteEnvelopeError(w, http.StatusInternalServerError, "Signup failed")
		return
	}

	log.Debugf("testbackend: signed up [%s] %s", user.ID, user.Email)
	pkg.WriteEnvelope(w, http.StatusCreated, map[string]string{"_id": user.ID})
}

func (b *Backend) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds auth.Credentials
	if !decodeBody(w, r, &creds) {
		return
	}

	b.mutex.Lock()
	var acc *account
	if id, ok := b.byEmail[normalizeEmail(creds.Email)]; ok {
		acc = b.accounts[id]
	}
	b.mutex.Unlock()

	if acc == nil || !pkg.CheckPasswordHash(creds.Password, acc.passwordHash) {
		pkg.WriteEnvelopeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := b.tokens.Issue(acc.user)
	if err != nil {
		log.Errorf("testbackend: issue token: %s", err)
		pkg.WriteEnvelopeError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	pkg.WriteEnvelope(w, http.StatusOK, auth.LoginResponse{
		User:  acc.user,
		Token: token,
	})
}

func (b *Backend) createAccount(email, name, password string, age *int, cost int) (users.User, error) {
	email = normalizeEmail(email)
	hash, err := pkg.HashPassword(password, cost)
	if err != nil {
		return users.User{}, err
	}

	b.mutex.Lock()
	defer b.mutex.Unlock()

	if _, exists := b.byEmail[email]; exists {
		return users.User{}, errUserExists
	}

	createdAt := b.now().UTC()
	user := users.User{
		ID:        uuid.NewString(),
		Email:     email,
		Name:      name,
		Age:       age,
		CreatedAt: &createdAt,
	}
	b.accounts[user.ID] = &account{
		user:         user,
		passwordHash: hash,
	}
	b.byEmail[email] = user.ID
	return user, nil
}

func (b *Backend) handleGetMe(w http.ResponseWriter, r *http.Request) {
	acc, ok := b.currentUser(w, r)
	if !ok {
		return
	}
	b.mutex.Lock()
	user := acc.user
	b.mutex.Unlock()
	pkg.WriteEnvelope(w, http.StatusOK, user)
}

func (b *Backend) handleUpdateMe(w http.ResponseWriter, r *http.Request) {
	acc, ok := b.currentUser(w, r)
	if !ok {
		return
	}
	var payload users.UpdateMePayload
	if !decodeBody(w, r, &payload) {
		return
	}

	b.mutex.Lock()
	u := &acc.user
	if payload.Name != nil {
		u.Name = *payload.Name
	}
	if payload.Gender != nil {
		u.Gender = payload.Gender
	}
	if payload.FitnessLevel != nil {
		u.FitnessLevel = payload.FitnessLevel
	}
	if payload.Age != nil {
		u.Age = payload.Age
	}
	if payload.HeightCm != nil {
		u.HeightCm = payload.HeightCm
	}
	if payload.WeightKg != nil {
		u.WeightKg = payload.WeightKg
	}
	if payload.Goals != nil {
		u.Goals = mergeGoals(u.Goals, payload.Goals)
	}
	user := *u
	b.mutex.Unlock()

	pkg.WriteEnvelope(w, http.StatusOK, user)
}

func mergeGoals(current, update *users.Goals) *users.Goals {
	merged := users.Goals{}
	if current != nil {
		merged = *current
	}
	if update.GoalType != nil {
		merged.GoalType = update.GoalType
	}
	if update.TargetWeightKg != nil {
		merged.TargetWeightKg = update.TargetWeightKg
	}
	if update.WeeklyWorkouts != nil {
		merged.WeeklyWorkouts = update.WeeklyWorkouts
	}
	return &merged
}
