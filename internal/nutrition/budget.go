package nutrition

import (
	"context"
	"time"

	"github.com/2beens/fitpro/internal/telemetry/tracing"

	"golang.org/x/sync/errgroup"
)

const DefaultCalorieGoal = 2000

// Budget is the calorie ring of a day. A missing summary counts as nothing
// eaten or burned against the default goal.
type Budget struct {
	Eaten  int
	Burned int
	Goal   int
}

func NewBudget(summary *Summary) Budget {
	if summary == nil {
		return Budget{Goal: DefaultCalorieGoal}
	}
	return Budget{
		Eaten:  summary.Calories.Eaten,
		Burned: summary.Calories.Burned,
		Goal:   summary.Calories.Goal,
	}
}

// Total is the goal plus whatever was burned.
func (b Budget) Total() int {
	return b.Goal + b.Burned
}

func (b Budget) CaloriesLeft() int {
	return max(0, b.Total()-b.Eaten)
}

// RingProgress is eaten / (goal + burned); it can pass 1 when over budget.
func (b Budget) RingProgress() float64 {
	total := b.Total()
	if total <= 0 {
		return 0
	}
	return float64(b.Eaten) / float64(total)
}

// Day is everything the nutrition screen shows for one date.
type Day struct {
	Summary *Summary
	Meals   []Meal
	Budget  Budget
}

// LoadDay fetches the summary and the meals of day concurrently. Either
// failure fails the whole load.
func (s *Service) LoadDay(ctx context.Context, day time.Time) (_ *Day, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "nutrition.loadDay")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var (
		summary *Summary
		meals   []Meal
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		summary, err = s.Summary(gctx, day)
		return err
	})
	g.Go(func() error {
		var err error
		meals, err = s.ListMeals(gctx, day)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Day{
		Summary: summary,
		Meals:   meals,
		Budget:  NewBudget(summary),
	}, nil
}
