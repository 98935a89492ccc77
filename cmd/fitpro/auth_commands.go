package main

import (
	"time"

	"github.com/2beens/fitpro/internal/auth"
	"github.com/2beens/fitpro/pkg"

	"github.com/urfave/cli/v2"
)

func healthCommand(r *runtime) *cli.Command {
	return &cli.Command{
		Name:  "health",
		Usage: "check the backend is reachable",
		Action: func(c *cli.Context) error {
			health, err := r.container.Client.Health(c.Context)
			if err != nil {
				return userMessage(err)
			}
			return printJSON(c, health)
		},
	}
}

var passwordFlag = &cli.StringFlag{
	Name:     "password",
	Usage:    "account password",
	EnvVars:  []string{"FITPRO_PASSWORD"},
	Required: true,
}

func loginCommand(r *runtime) *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "log in and store the session token",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Required: true},
			passwordFlag,
		},
		Action: func(c *cli.Context) error {
			user, err := r.container.Auth.Login(c.Context, c.String("email"), c.String("password"))
			if err != nil {
				return userMessage(err)
			}
			printf(c, "logged in as %s\n", user)
			return nil
		},
	}
}

func signupCommand(r *runtime) *cli.Command {
	return &cli.Command{
		Name:  "signup",
		Usage: "create an account without logging in",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Required: true},
			&cli.StringFlag{Name: "name", Required: true},
			&cli.IntFlag{Name: "age"},
			passwordFlag,
		},
		Action: func(c *cli.Context) error {
			err := r.container.Auth.Signup(c.Context, auth.SignupPayload{
				Email:    c.String("email"),
				Name:     c.String("name"),
				Age:      c.Int("age"),
				Password: c.String("password"),
			})
			if err != nil {
				return userMessage(err)
			}
			printf(c, "account created, run: fitpro login\n")
			return nil
		},
	}
}

func registerCommand(r *runtime) *cli.Command {
	return &cli.Command{
		Name:  "register",
		Usage: "sign up, log in and fill in the profile",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "first-name", Required: true},
			&cli.StringFlag{Name: "last-name", Required: true},
			&cli.StringFlag{Name: "email", Required: true},
			passwordFlag,
			&cli.StringFlag{Name: "birth-date", Usage: "YYYY-MM-DD", Required: true},
			&cli.BoolFlag{Name: "accept-terms", Usage: "accept the terms of service"},
			&cli.StringFlag{Name: "gender"},
			&cli.StringFlag{Name: "weight", Usage: "weight in kg"},
			&cli.StringFlag{Name: "height", Usage: "height in cm"},
			&cli.StringFlag{Name: "goal", Usage: "goal type, e.g. lose_weight"},
		},
		Action: func(c *cli.Context) error {
			birthDate, err := pkg.ParseDayKey(c.String("birth-date"), time.Local)
			if err != nil {
				return cli.Exit(auth.MsgInvalidBirthDate, 1)
			}
			user, err := r.container.Auth.Register(c.Context, auth.RegisterRequest{
				FirstName:     c.String("first-name"),
				LastName:      c.String("last-name"),
				Email:         c.String("email"),
				Password:      c.String("password"),
				AcceptedTerms: c.Bool("accept-terms"),
				BirthDate:     birthDate,
				Gender:        c.String("gender"),
				WeightKg:      c.String("weight"),
				HeightCm:      c.String("height"),
				GoalType:      c.String("goal"),
			}, r.now())
			if err != nil {
				return userMessage(err)
			}
			printf(c, "welcome, %s\n", user)
			return nil
		},
	}
}

func logoutCommand(r *runtime) *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "forget the stored session",
		Action: func(c *cli.Context) error {
			if err := r.container.Auth.Logout(c.Context); err != nil {
				return err
			}
			printf(c, "logged out\n")
			return nil
		},
	}
}

func whoamiCommand(r *runtime) *cli.Command {
	return &cli.Command{
		Name:  "whoami",
		Usage: "show the local session without calling the backend",
		Action: func(c *cli.Context) error {
			snapshot := r.container.Sessions.Snapshot()
			if !snapshot.IsLoggedIn {
				printf(c, "not logged in\n")
				return nil
			}
			printf(c, "%s (expired: %t)\n", snapshot.Email, r.container.Sessions.Expired(r.now()))
			return nil
		},
	}
}

func meCommand(r *runtime) *cli.Command {
	return &cli.Command{
		Name:   "me",
		Usage:  "show the profile stored on the backend",
		Before: r.requireLogin,
		Action: func(c *cli.Context) error {
			user, err := r.container.Users.Me(c.Context)
			if err != nil {
				return userMessage(err)
			}
			return printJSON(c, user)
		},
	}
}
