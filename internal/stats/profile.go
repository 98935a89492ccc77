package stats

import (
	"context"
	"time"

	"github.com/2beens/fitpro/internal/telemetry/tracing"
	"github.com/2beens/fitpro/internal/users"
	"github.com/2beens/fitpro/internal/workouts"

	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -source=$GOFILE -destination=profile_mocks_test.go -package=stats_test

type usersSource interface {
	Me(ctx context.Context) (*users.User, error)
}

type sessionsSource interface {
	ListSessions(ctx context.Context, from, to string) ([]workouts.Session, error)
}

type Profile struct {
	User  *users.User
	Stats ProfileStats
	// WeeklyGoal is the user's weekly workouts goal, 0 when not set.
	WeeklyGoal int
}

type ProfileLoader struct {
	users    usersSource
	sessions sessionsSource
	loc      *time.Location
}

func NewProfileLoader(users usersSource, sessions sessionsSource, loc *time.Location) *ProfileLoader {
	return &ProfileLoader{
		users:    users,
		sessions: sessions,
		loc:      loc,
	}
}

// Load fetches the user and the full session history concurrently and
// computes the profile statistics.
func (l *ProfileLoader) Load(ctx context.Context, now time.Time) (_ *Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "stats.profile.load")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var (
		user     *users.User
		sessions []workouts.Session
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		user, err = l.users.Me(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		sessions, err = l.sessions.ListSessions(gctx, "", "")
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Profile{
		User:       user,
		Stats:      ComputeProfileStats(sessions, now, l.loc),
		WeeklyGoal: user.WeeklyWorkoutsGoal(),
	}, nil
}
