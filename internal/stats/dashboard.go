package stats

import (
	"context"
	"time"

	"github.com/2beens/fitpro/internal/api"
	"github.com/2beens/fitpro/internal/exercises"
	"github.com/2beens/fitpro/internal/telemetry/tracing"
	"github.com/2beens/fitpro/pkg"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const (
	DashboardRangeDays = 7
	fallbackListLimit  = 200
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=stats_test

type exercisesSource interface {
	List(ctx context.Context, q exercises.ListQuery) (*api.Paged[exercises.Exercise], error)
	Summary(ctx context.Context, from, to string) ([]exercises.DailySummary, error)
}

// Dashboard is the home screen: the last days of activity, their totals,
// today's numbers and the latest logged exercise.
type Dashboard struct {
	From         string
	To           string
	Days         []DailyStat
	Totals       Totals
	Today        DailyStat
	LastExercise *exercises.Exercise
	// FromServer is false when the days were aggregated on the client.
	FromServer bool
}

type DashboardLoader struct {
	source    exercisesSource
	rangeDays int
	loc       *time.Location
}

func NewDashboardLoader(source exercisesSource, loc *time.Location) *DashboardLoader {
	return &DashboardLoader{
		source:    source,
		rangeDays: DashboardRangeDays,
		loc:       loc,
	}
}

// Load prefers the server summary and falls back to aggregating the raw
// exercise list when the summary endpoint fails.
func (l *DashboardLoader) Load(ctx context.Context, now time.Time) (_ *Dashboard, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "stats.dashboard.load")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	today := pkg.StartOfDay(now, l.loc)
	from := pkg.DayKey(pkg.AddDays(today, -(l.rangeDays - 1)), l.loc)
	to := pkg.DayKey(today, l.loc)
	span.SetAttributes(attribute.String("range.from", from), attribute.String("range.to", to))

	d := &Dashboard{From: from, To: to}

	summary, err := l.source.Summary(ctx, from, to)
	if err == nil {
		d.Days = FromServerSummary(summary)
		d.FromServer = true

		latest, err := l.source.List(ctx, exercises.ListQuery{From: from, To: to, Page: 1, Limit: 1})
		if err != nil {
			return nil, err
		}
		if len(latest.Items) > 0 {
			d.LastExercise = &latest.Items[0]
		}
	} else {
		log.Debugf("dashboard: server summary failed, aggregating locally: %s", err)

		page, err := l.source.List(ctx, exercises.ListQuery{From: from, To: to, Page: 1, Limit: fallbackListLimit})
		if err != nil {
			return nil, err
		}
		d.Days = AggregateDaily(page.Items, l.rangeDays, now, l.loc)
		// the backend lists newest first
		if len(page.Items) > 0 {
			d.LastExercise = &page.Items[0]
		}
	}

	d.Totals = SumDaily(d.Days)
	d.Today = Today(d.Days, to)
	span.SetAttributes(attribute.Bool("from.server", d.FromServer))

	return d, nil
}
