package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/2beens/fitpro/internal/session"
	"github.com/2beens/fitpro/internal/telemetry/metrics"
	"github.com/2beens/fitpro/internal/testbackend"

	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

const serveFakeCommandName = "serve-fake"

// serveFakeCommand runs the in-memory backend for local development.
func serveFakeCommand() *cli.Command {
	return &cli.Command{
		Name:  serveFakeCommandName,
		Usage: "serve an in-memory backend for local development",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "host", Value: "localhost"},
			&cli.StringFlag{Name: "port", Value: "4000"},
			&cli.StringFlag{Name: "metrics-port", Value: "4002", Usage: "prometheus /metrics port, empty to disable"},
			&cli.StringFlag{Name: "seed-email", Usage: "create this user on start"},
			&cli.StringFlag{Name: "seed-password", Value: "password"},
			&cli.StringFlag{Name: "redis-host", Usage: "enables the login rate limit"},
			&cli.StringFlag{Name: "redis-port", Value: "6379"},
			&cli.IntFlag{Name: "login-limit", Value: 30, Usage: "logins allowed per minute"},
		},
		Action: func(c *cli.Context) error {
			ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			registry := metrics.SetupPrometheus()
			opts := []testbackend.Option{
				testbackend.WithMetrics(metrics.NewManager("fitpro", "testbackend", registry)),
			}
			if c.IsSet("redis-host") {
				rdb := session.NewRedisClient(ctx, c.String("redis-host"), c.String("redis-port"), "")
				defer rdb.Close()
				opts = append(opts, testbackend.WithLoginRateLimit(redis_rate.NewLimiter(rdb), c.Int("login-limit")))
			}

			backend, err := testbackend.New(opts...)
			if err != nil {
				return err
			}
			if email := c.String("seed-email"); email != "" {
				user, err := backend.SeedUser(email, "Demo User", c.String("seed-password"))
				if err != nil {
					return err
				}
				log.Infof("seeded user [%s] %s", user.ID, user.Email)
			}

			servers := []*http.Server{{
				Addr:         net.JoinHostPort(c.String("host"), c.String("port")),
				Handler:      backend.Router(),
				ReadTimeout:  time.Minute,
				WriteTimeout: time.Minute,
			}}
			if c.String("metrics-port") != "" {
				metricsRouter := mux.NewRouter()
				metricsRouter.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
				servers = append(servers, &http.Server{
					Addr:    net.JoinHostPort(c.String("host"), c.String("metrics-port")),
					Handler: metricsRouter,
				})
			}

			errs := make(chan error, len(servers))
			for _, srv := range servers {
				go func() {
					log.Infof(" > listening on: [%s]", srv.Addr)
					if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						errs <- err
					}
				}()
			}

			select {
			case <-ctx.Done():
			case err = <-errs:
				log.Errorf("server error: %s", err)
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			for _, srv := range servers {
				if shutdownErr := srv.Shutdown(shutdownCtx); shutdownErr != nil {
					log.Errorf("shutdown %s: %s", srv.Addr, shutdownErr)
				}
			}
			log.Infoln("fake backend stopped")
			return err
		},
	}
}
