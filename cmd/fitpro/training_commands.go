package main

import (
	"fmt"
	"time"

	"github.com/2beens/fitpro/internal/api"
	"github.com/2beens/fitpro/internal/exercises"
	"github.com/2beens/fitpro/internal/stats"
	"github.com/2beens/fitpro/internal/workouts"

	"github.com/urfave/cli/v2"
)

func dashboardCommand(r *runtime) *cli.Command {
	return &cli.Command{
		Name:   "dashboard",
		Usage:  fmt.Sprintf("activity of the last %d days", stats.DashboardRangeDays),
		Before: r.requireLogin,
		Action: func(c *cli.Context) error {
			dashboard, err := r.container.Dashboard.Load(c.Context, r.now())
			if err != nil {
				return userMessage(err)
			}
			return printJSON(c, dashboard)
		},
	}
}

func profileCommand(r *runtime) *cli.Command {
	return &cli.Command{
		Name:    "profile",
		Aliases: []string{"stats"},
		Usage:   "workout totals, streaks and the weekly goal",
		Before:  r.requireLogin,
		Action: func(c *cli.Context) error {
			profile, err := r.container.Profile.Load(c.Context, r.now())
			if err != nil {
				return userMessage(err)
			}
			return printJSON(c, profile)
		},
	}
}

func optionalFloat(c *cli.Context, name string) *float64 {
	if !c.IsSet(name) {
		return nil
	}
	v := c.Float64(name)
	return &v
}

func optionalInt(c *cli.Context, name string) *int {
	if !c.IsSet(name) {
		return nil
	}
	v := c.Int(name)
	return &v
}

func optionalString(c *cli.Context, name string) *string {
	if !c.IsSet(name) {
		return nil
	}
	v := c.String(name)
	return &v
}

func exercisesCommand(r *runtime) *cli.Command {
	return &cli.Command{
		Name:   "exercises",
		Usage:  "log and browse single exercises",
		Before: r.requireLogin,
		Subcommands: []*cli.Command{
			{
				Name:  "add",
				Usage: "log an exercise",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Required: true},
					&cli.StringFlag{Name: "category"},
					&cli.IntFlag{Name: "sets"},
					&cli.IntFlag{Name: "reps"},
					&cli.Float64Flag{Name: "weight", Usage: "weight in kg"},
					&cli.Float64Flag{Name: "duration", Usage: "duration in minutes"},
					&cli.Float64Flag{Name: "calories"},
					&cli.StringFlag{Name: "notes"},
					&cli.TimestampFlag{Name: "at", Layout: time.RFC3339, Usage: "when it was performed, defaults to now"},
				},
				Action: func(c *cli.Context) error {
					payload := exercises.CreatePayload{
						Name:        c.String("name"),
						Category:    optionalString(c, "category"),
						Sets:        optionalInt(c, "sets"),
						Reps:        optionalInt(c, "reps"),
						WeightKg:    optionalFloat(c, "weight"),
						DurationMin: optionalFloat(c, "duration"),
						Calories:    optionalFloat(c, "calories"),
						Notes:       optionalString(c, "notes"),
					}
					if at := c.Timestamp("at"); at != nil {
						t := api.NewTime(*at)
						payload.PerformedAt = &t
					}
					exercise, err := r.container.Exercises.Create(c.Context, payload)
					if err != nil {
						return userMessage(err)
					}
					return printJSON(c, exercise)
				},
			},
			{
				Name:  "list",
				Usage: "list logged exercises, newest first",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "from", Usage: "YYYY-MM-DD"},
					&cli.StringFlag{Name: "to", Usage: "YYYY-MM-DD"},
					&cli.IntFlag{Name: "page", Value: exercises.DefaultPage},
					&cli.IntFlag{Name: "limit", Value: exercises.DefaultLimit},
				},
				Action: func(c *cli.Context) error {
					page, err := r.container.Exercises.List(c.Context, exercises.ListQuery{
						From:  c.String("from"),
						To:    c.String("to"),
						Page:  c.Int("page"),
						Limit: c.Int("limit"),
					})
					if err != nil {
						return userMessage(err)
					}
					return printJSON(c, page)
				},
			},
			{
				Name:  "last",
				Usage: "the most recent entry of an exercise",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Required: true},
				},
				Action: func(c *cli.Context) error {
					exercise, err := r.container.Exercises.Last(c.Context, c.String("name"))
					if err != nil {
						return userMessage(err)
					}
					if exercise == nil {
						printf(c, "no %q logged yet\n", c.String("name"))
						return nil
					}
					return printJSON(c, exercise)
				},
			},
		},
	}
}

func routinesCommand(r *runtime) *cli.Command {
	return &cli.Command{
		Name:   "routines",
		Usage:  "manage workout routines",
		Before: r.requireLogin,
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list routines, archived ones only with --all",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "all"},
				},
				Action: func(c *cli.Context) error {
					routines, err := r.container.Workouts.ListRoutines(c.Context)
					if err != nil {
						return userMessage(err)
					}
					if !c.Bool("all") {
						routines = workouts.ActiveRoutines(routines)
					}
					return printJSON(c, routines)
				},
			},
			{
				Name:      "create",
				Usage:     "create a routine from exercise names",
				ArgsUsage: "<exercise> [exercise...]",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Required: true},
					&cli.StringFlag{Name: "notes"},
					&cli.IntFlag{Name: "sets", Value: 3, Usage: "default sets per exercise"},
					&cli.IntFlag{Name: "reps", Value: 10, Usage: "default reps per set"},
				},
				Action: func(c *cli.Context) error {
					if c.NArg() == 0 {
						return cli.Exit("at least one exercise is required", 1)
					}
					sets, reps := c.Int("sets"), c.Int("reps")
					templates := make([]workouts.ExerciseTemplatePayload, 0, c.NArg())
					for i, name := range c.Args().Slice() {
						order := i + 1
						templates = append(templates, workouts.ExerciseTemplatePayload{
							Name:        name,
							DefaultSets: &sets,
							DefaultReps: &reps,
							Order:       &order,
						})
					}
					routine, err := r.container.Workouts.CreateRoutine(c.Context, workouts.RoutinePayload{
						Name:      c.String("name"),
						Notes:     optionalString(c, "notes"),
						Exercises: templates,
					})
					if err != nil {
						return userMessage(err)
					}
					return printJSON(c, routine)
				},
			},
			{
				Name:      "delete",
				Usage:     "delete a routine",
				ArgsUsage: "<routine id>",
				Action: func(c *cli.Context) error {
					if err := r.container.Workouts.DeleteRoutine(c.Context, c.Args().First()); err != nil {
						return userMessage(err)
					}
					printf(c, "deleted\n")
					return nil
				},
			},
		},
	}
}

func sessionsCommand(r *runtime) *cli.Command {
	return &cli.Command{
		Name:   "sessions",
		Usage:  "browse recorded workout sessions",
		Before: r.requireLogin,
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list sessions, newest first",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "from", Usage: "YYYY-MM-DD"},
					&cli.StringFlag{Name: "to", Usage: "YYYY-MM-DD"},
				},
				Action: func(c *cli.Context) error {
					sessions, err := r.container.Workouts.ListSessions(c.Context, c.String("from"), c.String("to"))
					if err != nil {
						return userMessage(err)
					}
					return printJSON(c, workouts.SortNewestFirst(sessions))
				},
			},
			{
				Name:      "delete",
				Usage:     "delete a session",
				ArgsUsage: "<session id>",
				Action: func(c *cli.Context) error {
					if err := r.container.Workouts.DeleteSession(c.Context, c.Args().First()); err != nil {
						return userMessage(err)
					}
					printf(c, "deleted\n")
					return nil
				},
			},
		},
	}
}

// workoutCommand records a routine as done with its default sets.
func workoutCommand(r *runtime) *cli.Command {
	return &cli.Command{
		Name:      "workout",
		Usage:     "record a routine as done, with its default sets and reps",
		ArgsUsage: "<routine id>",
		Before:    r.requireLogin,
		Flags: []cli.Flag{
			&cli.DurationFlag{Name: "duration", Value: 45 * time.Minute, Usage: "how long the workout took"},
		},
		Action: func(c *cli.Context) error {
			routineID := c.Args().First()
			routines, err := r.container.Workouts.ListRoutines(c.Context)
			if err != nil {
				return userMessage(err)
			}

			for _, routine := range workouts.ActiveRoutines(routines) {
				if routine.ID != routineID {
					continue
				}
				finishedAt := r.now()
				active := workouts.NewActiveWorkout(routine)
				active.Start(finishedAt.Add(-c.Duration("duration")))
				session, err := active.Finish(c.Context, r.container.Workouts, finishedAt)
				if err != nil {
					return userMessage(err)
				}
				printf(c, "saved %q, %s, volume %.1f kg\n", routine.Name, active.ElapsedLabel(finishedAt), session.Volume())
				return nil
			}
			return cli.Exit(fmt.Sprintf("no active routine with id %q", routineID), 1)
		},
	}
}
