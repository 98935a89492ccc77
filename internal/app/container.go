// Package app wires the configuration, the session store, the API client
// and the domain services into one Container.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/2beens/fitpro/internal/api"
	"github.com/2beens/fitpro/internal/auth"
	"github.com/2beens/fitpro/internal/config"
	"github.com/2beens/fitpro/internal/exercises"
	"github.com/2beens/fitpro/internal/nutrition"
	"github.com/2beens/fitpro/internal/session"
	"github.com/2beens/fitpro/internal/stats"
	"github.com/2beens/fitpro/internal/telemetry/metrics"
	"github.com/2beens/fitpro/internal/users"
	"github.com/2beens/fitpro/internal/workouts"

	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

type Params struct {
	Config        *config.Config
	RedisPassword string
	// Location is used for calendar days in statistics, time.Local if nil.
	Location *time.Location
	// optional overrides, mostly for tests
	HTTPClient  *http.Client
	SecretStore session.SecretStore
}

type Container struct {
	Config   *config.Config
	Location *time.Location

	Sessions *session.Store
	Client   *api.Client

	Metrics  *metrics.Manager
	Registry *prometheus.Registry

	Auth      *auth.Authenticator
	Users     *users.Service
	Exercises *exercises.Service
	Workouts  *workouts.Service
	Nutrition *nutrition.Service

	Dashboard *stats.DashboardLoader
	Profile   *stats.ProfileLoader

	redisClient *redis.Client
}

func New(ctx context.Context, params Params) (*Container, error) {
	cfg := params.Config
	if cfg == nil {
		cfg = config.Default()
	}
	loc := params.Location
	if loc == nil {
		loc = time.Local
	}

	c := &Container{
		Config:   cfg,
		Location: loc,
		Registry: metrics.SetupPrometheus(),
	}
	c.Metrics = metrics.NewManager("fitpro", "client", c.Registry)

	secrets := params.SecretStore
	if secrets == nil {
		switch cfg.SecretStore {
		case config.SecretStoreRedis:
			c.redisClient = session.NewRedisClient(ctx, cfg.RedisHost, cfg.RedisPort, params.RedisPassword)
			secrets = session.NewRedisSecretStore(c.redisClient)
		default:
			secrets = session.NewMemorySecretStore()
		}
	}
	c.Sessions = session.NewStore(secrets, session.SecretKey{
		Service: cfg.KeychainService,
		Account: cfg.KeychainAccount,
	})

	clientOpts := []api.ClientOption{
		api.WithTokenProvider(c.Sessions.TokenProvider()),
		api.WithMetrics(c.Metrics),
	}
	if params.HTTPClient != nil {
		clientOpts = append(clientOpts, api.WithHTTPClient(params.HTTPClient))
	}
	client, err := api.NewClient(cfg.APIBaseURL, clientOpts...)
	if err != nil {
		return nil, multierr.Append(fmt.Errorf("new api client: %w", err), c.Close())
	}
	c.Client = client

	c.Users = users.NewService(client)
	c.Exercises = exercises.NewService(client)
	c.Workouts = workouts.NewService(client)
	c.Nutrition = nutrition.NewService(client)
	c.Auth = auth.NewAuthenticator(auth.NewService(client), c.Users, c.Sessions)

	c.Dashboard = stats.NewDashboardLoader(c.Exercises, loc)
	c.Profile = stats.NewProfileLoader(c.Users, c.Workouts, loc)

	log.Debugf("app container ready, api: %s, secret store: %s", cfg.APIBaseURL, cfg.SecretStore)
	return c, nil
}

// Close releases the redis connection, if any.
func (c *Container) Close() error {
	var err error
	if c.redisClient != nil {
		err = multierr.Append(err, c.redisClient.Close())
		c.redisClient = nil
	}
	return err
}
