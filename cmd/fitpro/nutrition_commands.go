package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/2beens/fitpro/internal/api"
	"github.com/2beens/fitpro/internal/nutrition"
	"github.com/2beens/fitpro/pkg"

	"github.com/urfave/cli/v2"
)

func dayFlagValue(c *cli.Context, now time.Time) (time.Time, error) {
	if !c.IsSet("date") {
		return pkg.StartOfDay(now, time.Local), nil
	}
	day, err := pkg.ParseDayKey(c.String("date"), time.Local)
	if err != nil {
		return time.Time{}, cli.Exit(fmt.Sprintf("invalid date %q, use YYYY-MM-DD", c.String("date")), 1)
	}
	return day, nil
}

var dateFlag = &cli.StringFlag{Name: "date", Usage: "YYYY-MM-DD, defaults to today"}

func nutritionCommand(r *runtime) *cli.Command {
	return &cli.Command{
		Name:   "nutrition",
		Usage:  "calorie budget and meals of a day",
		Before: r.requireLogin,
		Flags:  []cli.Flag{dateFlag},
		Action: func(c *cli.Context) error {
			day, err := dayFlagValue(c, r.now())
			if err != nil {
				return err
			}
			loaded, err := r.container.Nutrition.LoadDay(c.Context, day)
			if err != nil {
				return userMessage(err)
			}

			b := loaded.Budget
			printf(c, "%s: eaten %d, burned %d, goal %d, left %d (%.0f%%)\n",
				pkg.DayKey(day, time.Local), b.Eaten, b.Burned, b.Goal, b.CaloriesLeft(), b.RingProgress()*100)
			for _, m := range loaded.Meals {
				printf(c, "  %-10s %-24s %5d kcal  P%d C%d F%d  [%s]\n",
					m.Type.DisplayName(), m.Title, m.Calories, m.ProteinG, m.CarbsG, m.FatsG, m.ID)
			}
			return nil
		},
		Subcommands: []*cli.Command{
			{
				Name:  "add",
				Usage: "log a meal",
				Flags: []cli.Flag{
					dateFlag,
					&cli.StringFlag{Name: "type", Required: true, Usage: mealTypesUsage()},
					&cli.StringFlag{Name: "title", Required: true},
					&cli.IntFlag{Name: "calories"},
					&cli.IntFlag{Name: "protein", Usage: "grams"},
					&cli.IntFlag{Name: "carbs", Usage: "grams"},
					&cli.IntFlag{Name: "fats", Usage: "grams"},
				},
				Action: func(c *cli.Context) error {
					mealType := nutrition.MealType(strings.ToLower(c.String("type")))
					if !mealType.Valid() {
						return cli.Exit("meal type must be one of: "+mealTypesUsage(), 1)
					}

					now := r.now()
					date := now
					if c.IsSet("date") {
						day, err := dayFlagValue(c, now)
						if err != nil {
							return err
						}
						// keep the time of day, move to the chosen date
						date = time.Date(day.Year(), day.Month(), day.Day(), now.Hour(), now.Minute(), now.Second(), 0, time.Local)
					}

					meal, err := r.container.Nutrition.CreateMeal(c.Context, nutrition.CreateMealPayload{
						Date:     api.NewTime(date),
						Type:     mealType,
						Title:    c.String("title"),
						Calories: c.Int("calories"),
						ProteinG: c.Int("protein"),
						CarbsG:   c.Int("carbs"),
						FatsG:    c.Int("fats"),
					})
					if err != nil {
						return userMessage(err)
					}
					return printJSON(c, meal)
				},
			},
			{
				Name:      "delete",
				Usage:     "delete a meal",
				ArgsUsage: "<meal id>",
				Action: func(c *cli.Context) error {
					if err := r.container.Nutrition.DeleteMeal(c.Context, c.Args().First()); err != nil {
						return userMessage(err)
					}
					printf(c, "deleted\n")
					return nil
				},
			},
		},
	}
}

func mealTypesUsage() string {
	names := make([]string, 0, len(nutrition.MealTypes))
	for _, t := range nutrition.MealTypes {
		names = append(names, string(t))
	}
	return strings.Join(names, " | ")
}
