package stats_test

import (
	"testing"
	"time"

	"github.com/2beens/fitpro/internal/stats"
	"github.com/2beens/fitpro/internal/workouts"

	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2024, 5, 10, 15, 0, 0, 0, time.UTC)

// sessionsOn builds one session per day offset relative to testNow.
func sessionsOn(daysAgo ...int) []workouts.Session {
	out := make([]workouts.Session, 0, len(daysAgo))
	for _, d := range daysAgo {
		out = append(out, workouts.Session{
			ID:        "s",
			StartedAt: testNow.AddDate(0, 0, -d).Add(-time.Hour),
		})
	}
	return out
}

func intPtr(v int) *int {
	return &v
}

func TestCurrentStreak(t *testing.T) {
	cases := []struct {
		name    string
		daysAgo []int
		want    int
	}{
		{"no sessions", nil, 0},
		{"only today", []int{0}, 1},
		{"only yesterday", []int{1}, 1},
		{"today and yesterday then gap", []int{0, 1, 4, 5}, 2},
		{"missing today keeps streak", []int{1, 2, 3}, 3},
		{"last workout two days ago", []int{2, 3}, 0},
		{"several sessions per day", []int{0, 0, 1, 1, 2}, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, stats.CurrentStreak(sessionsOn(tc.daysAgo...), testNow, time.UTC))
		})
	}
}

func TestLongestStreak(t *testing.T) {
	assert.Equal(t, 0, stats.LongestStreak(nil, time.UTC))
	assert.Equal(t, 1, stats.LongestStreak(sessionsOn(3), time.UTC))
	assert.Equal(t, 1, stats.LongestStreak(sessionsOn(0, 2, 4), time.UTC))

	// a 5-day run in the past and the current 2-day run
	history := sessionsOn(0, 1, 5, 6, 7, 8, 9)
	assert.Equal(t, 5, stats.LongestStreak(history, time.UTC))
	assert.Equal(t, 2, stats.CurrentStreak(history, testNow, time.UTC))

	// order and duplicates do not matter
	assert.Equal(t, 3, stats.LongestStreak(sessionsOn(12, 10, 11, 11, 20), time.UTC))
}

func TestStreak_LocalDayBoundary(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	now := time.Date(2024, 5, 10, 9, 0, 0, 0, tokyo)
	sessions := []workouts.Session{
		// May 9th 16:00 UTC is already May 10th in Tokyo
		{StartedAt: time.Date(2024, 5, 9, 16, 0, 0, 0, time.UTC)},
		{StartedAt: time.Date(2024, 5, 9, 1, 0, 0, 0, time.UTC)},
	}
	assert.Equal(t, 2, stats.CurrentStreak(sessions, now, tokyo))
	assert.Equal(t, 1, stats.CurrentStreak(sessions, now, time.UTC))
}

func TestStreak_AcrossDST(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skipf("no tzdata: %s", err)
	}
	now := time.Date(2024, 4, 1, 20, 0, 0, 0, berlin)
	var sessions []workouts.Session
	for d := 0; d < 4; d++ {
		sessions = append(sessions, workouts.Session{StartedAt: time.Date(2024, 4, 1-d, 7, 0, 0, 0, berlin)})
	}
	assert.Equal(t, 4, stats.CurrentStreak(sessions, now, berlin))
	assert.Equal(t, 4, stats.LongestStreak(sessions, berlin))
}

func TestStreak_SkippedMidnight(t *testing.T) {
	// clocks jump from 00:00 to 01:00 on 2024-09-08 in Santiago
	santiago, err := time.LoadLocation("America/Santiago")
	if err != nil {
		t.Skipf("no tzdata: %s", err)
	}
	now := time.Date(2024, 9, 10, 20, 0, 0, 0, santiago)
	var sessions []workouts.Session
	for day := 6; day <= 10; day++ {
		sessions = append(sessions, workouts.Session{StartedAt: time.Date(2024, 9, day, 12, 0, 0, 0, santiago)})
	}
	assert.Equal(t, 5, stats.CurrentStreak(sessions, now, santiago))
	assert.Equal(t, 5, stats.LongestStreak(sessions, santiago))

	// yesterday-start walk crossing the same night
	now = time.Date(2024, 9, 11, 9, 0, 0, 0, santiago)
	assert.Equal(t, 5, stats.CurrentStreak(sessions, now, santiago))
}

func TestTotalVolume(t *testing.T) {
	w := func(v float64) *float64 { return &v }
	sessions := []workouts.Session{
		{Exercises: []workouts.ExerciseEntry{
			{Name: "squat", Sets: []workouts.SetEntry{
				{Index: 1, WeightKg: w(100), Reps: intPtr(5)},
				{Index: 2, WeightKg: w(100)},
				{Index: 3, Reps: intPtr(5)},
			}},
			{Name: "plank", Sets: []workouts.SetEntry{{Index: 1}}},
		}},
		{Exercises: []workouts.ExerciseEntry{
			{Name: "bench", Sets: []workouts.SetEntry{
				{Index: 1, WeightKg: w(62.5), Reps: intPtr(8)},
				{Index: 2, WeightKg: w(0), Reps: intPtr(12)},
			}},
		}},
		{},
	}
	assert.Equal(t, 1000.0, stats.TotalVolume(sessions))
	assert.Equal(t, 0.0, stats.TotalVolume(nil))
}

func TestWeeklyWorkouts(t *testing.T) {
	sessions := []workouts.Session{
		{StartedAt: testNow},
		{StartedAt: testNow.Add(-7 * 24 * time.Hour)},
		{StartedAt: testNow.Add(-7*24*time.Hour - time.Second)},
		{StartedAt: testNow.Add(-3 * 24 * time.Hour)},
		{StartedAt: testNow.Add(time.Hour)},
	}
	assert.Equal(t, 3, stats.WeeklyWorkouts(sessions, testNow))
	assert.Equal(t, 0, stats.WeeklyWorkouts(nil, testNow))
}

func TestComputeProfileStats(t *testing.T) {
	assert.Equal(t, stats.ProfileStats{}, stats.ComputeProfileStats(nil, testNow, time.UTC))

	w := 50.0
	sessions := sessionsOn(0, 1, 2, 9)
	sessions[0].Exercises = []workouts.ExerciseEntry{{Name: "row", Sets: []workouts.SetEntry{{Index: 1, WeightKg: &w, Reps: intPtr(10)}}}}

	got := stats.ComputeProfileStats(sessions, testNow, time.UTC)
	assert.Equal(t, stats.ProfileStats{
		TotalWorkouts:  4,
		TotalVolumeKg:  500,
		CurrentStreak:  3,
		LongestStreak:  3,
		WeeklyWorkouts: 3,
	}, got)
}
