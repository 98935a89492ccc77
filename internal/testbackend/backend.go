// Package testbackend is an in-memory implementation of the fitness
// backend REST API. It speaks the same {"success","data","message"}
// envelope as the real server and is used by the end to end tests and
// the "serve-fake" command.
package testbackend

import (
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/2beens/fitpro/internal/exercises"
	"github.com/2beens/fitpro/internal/middleware"
	"github.com/2beens/fitpro/internal/nutrition"
	"github.com/2beens/fitpro/internal/telemetry/metrics"
	"github.com/2beens/fitpro/internal/users"
	"github.com/2beens/fitpro/internal/workouts"
	"github.com/2beens/fitpro/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultTokenTTL         = 24 * time.Hour
	defaultLoginLimitPerMin = 30
)

type Option func(*Backend)

// WithClock replaces time.Now for created documents and token expiry.
func WithClock(now func() time.Time) Option {
	return func(b *Backend) {
		b.now = now
	}
}

// WithLocation sets the location used for "YYYY-MM-DD" query keys.
func WithLocation(loc *time.Location) Option {
	return func(b *Backend) {
		b.loc = loc
	}
}

func WithMetrics(metricsManager *metrics.Manager) Option {
	return func(b *Backend) {
		b.metrics = metricsManager
	}
}

// WithLoginRateLimit limits login attempts per minute across all callers.
func WithLoginRateLimit(limiter middleware.RequestRateLimiter, allowedPerMin int) Option {
	return func(b *Backend) {
		b.loginLimiter = limiter
		b.loginLimitPerMin = allowedPerMin
	}
}

// WithPasswordHashCost sets the bcrypt cost of stored passwords.
func WithPasswordHashCost(cost int) Option {
	return func(b *Backend) {
		b.passwordCost = cost
	}
}

func WithTokenSecret(secret []byte) Option {
	return func(b *Backend) {
		b.tokens.secret = secret
	}
}

type account struct {
	user         users.User
	passwordHash string
}

type Backend struct {
	mutex sync.Mutex

	accounts  map[string]*account // by user id
	byEmail   map[string]string   // email => user id
	exercises []exercises.Exercise
	routines  []ownedRoutine
	sessions  []workouts.Session
	meals     []nutrition.Meal

	tokens           *tokenIssuer
	now              func() time.Time
	loc              *time.Location
	metrics          *metrics.Manager
	loginLimiter     middleware.RequestRateLimiter
	loginLimitPerMin int
	passwordCost     int

	failSummary    atomic.Bool
	requestsCount  atomic.Int64
	lastAuthHeader atomic.Value
}

func New(opts ...Option) (*Backend, error) {
	b := &Backend{
		accounts: map[string]*account{},
		byEmail:  map[string]string{},
		tokens:   &tokenIssuer{ttl: DefaultTokenTTL},
		now:      time.Now,
		loc:      time.UTC,

		passwordCost: bcrypt.MinCost,
	}
	for _, opt := range opts {
		opt(b)
	}

	if len(b.tokens.secret) == 0 {
		secret, err := pkg.GenerateRandomString(32)
		if err != nil {
			return nil, err
		}
		b.tokens.secret = []byte(secret)
	}
	b.tokens.now = b.now
	if b.loginLimiter != nil && b.loginLimitPerMin <= 0 {
		b.loginLimitPerMin = defaultLoginLimitPerMin
	}

	return b, nil
}

// FailSummary makes the exercise summary endpoint answer with a 500.
func (b *Backend) FailSummary(fail bool) {
	b.failSummary.Store(fail)
}

func (b *Backend) RequestsCount() int64 {
	return b.requestsCount.Load()
}

// LastAuthHeader is the Authorization header of the most recent request.
func (b *Backend) LastAuthHeader() string {
	h, _ := b.lastAuthHeader.Load().(string)
	return h
}

// IssueToken mints a token for userID without going through login.
func (b *Backend) IssueToken(userID string) (string, error) {
	b.mutex.Lock()
	acc, ok := b.accounts[userID]
	b.mutex.Unlock()
	if !ok {
		return "", errUnknownUser
	}
	return b.tokens.Issue(acc.user)
}

// SeedUser registers a user directly, bypassing the signup endpoint.
func (b *Backend) SeedUser(email, name, password string) (users.User, error) {
	return b.createAccount(email, name, password, nil, b.passwordCost)
}

func (b *Backend) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("fitpro-testbackend"))

	r.HandleFunc("/api/health", b.handleHealth).Methods("GET")

	login := http.Handler(http.HandlerFunc(b.handleLogin))
	if b.loginLimiter != nil {
		login = middleware.RateLimit(b.loginLimiter, "login", b.loginLimitPerMin)(login)
	}
	r.Handle("/api/auth/login", login).Methods("POST")
	r.HandleFunc("/api/auth/signup", b.handleSignup).Methods("POST")

	r.HandleFunc("/api/users/me", b.handleGetMe).Methods("GET")
	r.HandleFunc("/api/users/me", b.handleUpdateMe).Methods("PUT")

	r.HandleFunc("/api/exercises", b.handleListExercises).Methods("GET")
	r.HandleFunc("/api/exercises", b.handleCreateExercise).Methods("POST")
	r.HandleFunc("/api/exercises/summary", b.handleExercisesSummary).Methods("GET")
	r.HandleFunc("/api/exercises/last", b.handleLastExercise).Methods("GET")

	// sessions before {id}, the router matches in registration order
	r.HandleFunc("/api/workouts/sessions", b.handleListSessions).Methods("GET")
	r.HandleFunc("/api/workouts/sessions", b.handleCreateSession).Methods("POST")
	r.HandleFunc("/api/workouts/sessions/{id}", b.handleDeleteSession).Methods("DELETE")
	r.HandleFunc("/api/workouts", b.handleListRoutines).Methods("GET")
	r.HandleFunc("/api/workouts", b.handleCreateRoutine).Methods("POST")
	r.HandleFunc("/api/workouts/{id}", b.handleUpdateRoutine).Methods("PATCH")
	r.HandleFunc("/api/workouts/{id}", b.handleDeleteRoutine).Methods("DELETE")

	r.HandleFunc("/api/nutrition/summary", b.handleNutritionSummary).Methods("GET")
	r.HandleFunc("/api/nutrition/meals", b.handleListMeals).Methods("GET")
	r.HandleFunc("/api/nutrition/meals", b.handleCreateMeal).Methods("POST")
	r.HandleFunc("/api/nutrition/meals/{id}", b.handleDeleteMeal).Methods("DELETE")

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.track(r)
		pkg.WriteEnvelopeError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.track(r)
		pkg.WriteEnvelopeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	authMiddleware := middleware.NewAuthMiddlewareHandler(
		b.tokens,
		"/api/health",
		"/api/auth/login",
		"/api/auth/signup",
	)

	r.Use(b.countRequests)
	r.Use(middleware.PanicRecovery(nil))
	r.Use(middleware.LogRequest())
	if b.metrics != nil {
		r.Use(middleware.RequestMetrics(b.metrics))
	}
	r.Use(authMiddleware.AuthCheck())

	log.Debugf("testbackend router ready")
	return r
}

func (b *Backend) countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.track(r)
		next.ServeHTTP(w, r)
	})
}

func (b *Backend) track(r *http.Request) {
	b.requestsCount.Add(1)
	b.lastAuthHeader.Store(r.Header.Get("Authorization"))
}
