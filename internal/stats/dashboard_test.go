package stats_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/2beens/fitpro/internal/api"
	"github.com/2beens/fitpro/internal/exercises"
	"github.com/2beens/fitpro/internal/stats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var dashNow = time.Date(2024, 5, 7, 19, 0, 0, 0, time.UTC)

func TestDashboardLoader_ServerSummary(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := NewMockexercisesSource(ctrl)
	loader := stats.NewDashboardLoader(source, time.UTC)

	source.EXPECT().Summary(gomock.Any(), "2024-05-01", "2024-05-07").Return([]exercises.DailySummary{
		{Date: "2024-05-07", TotalDurationMin: f64(40), TotalCalories: f64(350), Count: 2},
		{Date: "2024-05-05", TotalDurationMin: f64(25), Count: 1},
	}, nil)
	latest := exercises.Exercise{ID: "e9", Name: "Row", PerformedAt: dashNow}
	source.EXPECT().List(gomock.Any(), exercises.ListQuery{From: "2024-05-01", To: "2024-05-07", Page: 1, Limit: 1}).
		Return(&api.Paged[exercises.Exercise]{Items: []exercises.Exercise{latest}, Total: 3, Page: 1}, nil)

	d, err := loader.Load(context.Background(), dashNow)
	require.NoError(t, err)
	assert.True(t, d.FromServer)
	assert.Equal(t, "2024-05-01", d.From)
	assert.Equal(t, "2024-05-07", d.To)
	assert.Len(t, d.Days, 2)
	assert.Equal(t, stats.Totals{Workouts: 3, Minutes: 65, Calories: 350}, d.Totals)
	assert.Equal(t, stats.DailyStat{Date: "2024-05-07", TotalDurationMin: 40, TotalCalories: 350, Count: 2}, d.Today)
	require.NotNil(t, d.LastExercise)
	assert.Equal(t, "e9", d.LastExercise.ID)
}

func TestDashboardLoader_FallbackAggregation(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := NewMockexercisesSource(ctrl)
	loader := stats.NewDashboardLoader(source, time.UTC)

	source.EXPECT().Summary(gomock.Any(), "2024-05-01", "2024-05-07").
		Return(nil, api.NewHTTPError(http.StatusNotFound))
	items := []exercises.Exercise{
		{ID: "e3", DurationMin: f64(20), Calories: f64(50), PerformedAt: time.Date(2024, 5, 7, 8, 0, 0, 0, time.UTC)},
		{ID: "e2", DurationMin: f64(30), Calories: f64(100), PerformedAt: time.Date(2024, 5, 5, 8, 0, 0, 0, time.UTC)},
		{ID: "e1", DurationMin: f64(10), PerformedAt: time.Date(2024, 5, 5, 7, 0, 0, 0, time.UTC)},
	}
	source.EXPECT().List(gomock.Any(), exercises.ListQuery{From: "2024-05-01", To: "2024-05-07", Page: 1, Limit: 200}).
		Return(&api.Paged[exercises.Exercise]{Items: items, Total: 3, Page: 1}, nil)

	d, err := loader.Load(context.Background(), dashNow)
	require.NoError(t, err)
	assert.False(t, d.FromServer)
	require.Len(t, d.Days, 7)
	assert.Equal(t, "2024-05-07", d.Days[0].Date)
	assert.Equal(t, "2024-05-01", d.Days[6].Date)
	assert.Equal(t, stats.DailyStat{Date: "2024-05-05", TotalDurationMin: 40, TotalCalories: 100, Count: 2}, d.Days[2])
	assert.Equal(t, stats.Totals{Workouts: 3, Minutes: 60, Calories: 150}, d.Totals)
	assert.Equal(t, 1, d.Today.Count)
	assert.Equal(t, "e3", d.LastExercise.ID)
}

func TestDashboardLoader_FallbackEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := NewMockexercisesSource(ctrl)

	source.EXPECT().Summary(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("boom"))
	source.EXPECT().List(gomock.Any(), gomock.Any()).Return(&api.Paged[exercises.Exercise]{}, nil)

	d, err := stats.NewDashboardLoader(source, time.UTC).Load(context.Background(), dashNow)
	require.NoError(t, err)
	assert.Len(t, d.Days, 7)
	assert.Nil(t, d.LastExercise)
	assert.Equal(t, stats.DailyStat{Date: "2024-05-07"}, d.Today)
	assert.Equal(t, stats.Totals{}, d.Totals)
}

func TestDashboardLoader_Errors(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := NewMockexercisesSource(ctrl)
	loader := stats.NewDashboardLoader(source, time.UTC)

	// both the summary and the fallback list fail
	source.EXPECT().Summary(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, api.NewHTTPError(500))
	source.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, api.NewServerError(401, "Not authorized"))
	_, err := loader.Load(context.Background(), dashNow)
	assert.Equal(t, "Not authorized", api.MessageOf(err, ""))

	// summary ok, latest exercise lookup fails
	source.EXPECT().Summary(gomock.Any(), gomock.Any(), gomock.Any()).Return([]exercises.DailySummary{}, nil)
	source.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, api.NewDecodingError(200))
	_, err = loader.Load(context.Background(), dashNow)
	assert.True(t, api.IsKind(err, api.KindDecoding))
}
