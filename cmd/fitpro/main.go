package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/2beens/fitpro/internal/app"
	"github.com/2beens/fitpro/internal/config"
	"github.com/2beens/fitpro/internal/logging"
	"github.com/2beens/fitpro/internal/telemetry/metrics"
	"github.com/2beens/fitpro/internal/telemetry/tracing"
	"github.com/2beens/fitpro/pkg"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

const serviceName = "fitpro-cli"

// runtime is the state shared by all commands of one invocation.
type runtime struct {
	container    *app.Container
	otelShutdown func()
	now          func() time.Time
}

const defaultConfigPath = "./fitpro.toml"

// loadConfig reads --config, or fitpro.toml in the working directory when
// present, and falls back to the built-in development defaults.
func loadConfig(c *cli.Context) (*config.Config, error) {
	path := c.String("config")
	exists, err := pkg.PathExists(path, false)
	if err != nil {
		return nil, err
	}

	var cfg *config.Config
	switch {
	case exists:
		cfg, err = config.Load(c.String("env"), path)
		if err != nil {
			return nil, err
		}
	case c.IsSet("config"):
		return nil, fmt.Errorf("config file not found: %s", path)
	default:
		cfg = config.Default()
		cfg.Environment = c.String("env")
	}

	if c.IsSet("api") {
		cfg.APIBaseURL = c.String("api")
	}
	return cfg, nil
}

func (r *runtime) before(c *cli.Context) error {
	if c.Args().First() == serveFakeCommandName {
		return nil
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	logLevel := cfg.LogLevel
	if c.Bool("verbose") {
		logLevel = "debug"
	}
	logging.Setup(logging.LoggerSetupParams{
		LogFileName:      cfg.LogsPath,
		LogToStdout:      cfg.LogToStdout,
		LogLevel:         logLevel,
		LogFormatJSON:    cfg.LogJSON,
		Environment:      cfg.Environment,
		SentryEnabled:    cfg.SentryEnabled,
		SentryDSN:        os.Getenv("SENTRY_DSN"),
		SentryServerName: serviceName,
	})

	r.otelShutdown, err = tracing.HoneycombSetup(cfg.TracingEnabled, serviceName)
	if err != nil {
		return fmt.Errorf("tracing setup: %w", err)
	}

	redisPassword := os.Getenv("FITPRO_REDIS_PASS")
	if cfg.SecretStore == config.SecretStoreRedis && redisPassword == "" {
		log.Debugln("redis password not set, use FITPRO_REDIS_PASS to set it")
	}

	r.container, err = app.New(c.Context, app.Params{
		Config:        cfg,
		RedisPassword: redisPassword,
	})
	if err != nil {
		return err
	}

	loggedIn, err := r.container.Auth.Restore(c.Context)
	if err != nil {
		log.Warnf("restore session: %s", err)
	}
	log.Debugf("session restored, logged in: %t", loggedIn)
	return nil
}

func (r *runtime) after(*cli.Context) error {
	if r.container == nil {
		return nil
	}
	if r.container.Config.MetricsEnabled {
		metrics.LogSnapshot(r.container.Registry)
	}
	if r.otelShutdown != nil {
		r.otelShutdown()
	}
	return r.container.Close()
}

// requireLogin fails commands that need a session before any request.
func (r *runtime) requireLogin(*cli.Context) error {
	if !r.container.Sessions.IsLoggedIn() {
		return errors.New("not logged in, run: fitpro login")
	}
	if r.container.Sessions.Expired(r.now()) {
		log.Warnln("the stored session has expired, run: fitpro login")
	}
	return nil
}

func newApp() *cli.App {
	r := &runtime{now: time.Now}

	return &cli.App{
		Name:     "fitpro",
		HelpName: "fitpro",
		Usage:    "fitness tracking from the command line",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "env",
				Value:   "development",
				Usage:   "environment [prod | production | dev | development]",
				EnvVars: []string{"FITPRO_ENV"},
			},
			&cli.StringFlag{
				Name:    "config",
				Value:   defaultConfigPath,
				Usage:   "path for the TOML config file",
				EnvVars: []string{"FITPRO_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "api",
				Usage:   "backend base URL, overrides the config file",
				EnvVars: []string{"FITPRO_API"},
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "debug logging",
			},
		},
		ExitErrHandler: func(c *cli.Context, err error) {
			if err == nil {
				return
			}
			log.Errorf("%s: %s", c.App.Name, err)
		},
		Before: r.before,
		After:  r.after,
		Commands: []*cli.Command{
			healthCommand(r),
			loginCommand(r),
			signupCommand(r),
			registerCommand(r),
			logoutCommand(r),
			whoamiCommand(r),
			meCommand(r),
			dashboardCommand(r),
			profileCommand(r),
			exercisesCommand(r),
			routinesCommand(r),
			sessionsCommand(r),
			workoutCommand(r),
			nutritionCommand(r),
			serveFakeCommand(),
		},
	}
}

func main() {
	if err := newApp().RunContext(context.Background(), os.Args); err != nil {
		os.Exit(1)
	}
}
