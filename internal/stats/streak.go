package stats

import (
	"sort"
	"time"

	"github.com/2beens/fitpro/internal/workouts"
	"github.com/2beens/fitpro/pkg"
)

const weekWindow = 7 * 24 * time.Hour

type ProfileStats struct {
	TotalWorkouts  int     `json:"totalWorkouts"`
	TotalVolumeKg  float64 `json:"totalVolumeKg"`
	CurrentStreak  int     `json:"currentStreak"`
	LongestStreak  int     `json:"longestStreak"`
	WeeklyWorkouts int     `json:"weeklyWorkouts"`
}

func ComputeProfileStats(sessions []workouts.Session, now time.Time, loc *time.Location) ProfileStats {
	return ProfileStats{
		TotalWorkouts:  len(sessions),
		TotalVolumeKg:  TotalVolume(sessions),
		CurrentStreak:  CurrentStreak(sessions, now, loc),
		LongestStreak:  LongestStreak(sessions, loc),
		WeeklyWorkouts: WeeklyWorkouts(sessions, now),
	}
}

// TotalVolume sums weight x reps over all sets of all sessions. A set
// missing either factor adds nothing.
func TotalVolume(sessions []workouts.Session) float64 {
	var total float64
	for _, s := range sessions {
		total += s.Volume()
	}
	return total
}

// CurrentStreak counts consecutive workout days walking back from today.
// A today without a session starts the walk from yesterday instead.
func CurrentStreak(sessions []workouts.Session, now time.Time, loc *time.Location) int {
	days := sessionDays(sessions, loc)
	if len(days) == 0 {
		return 0
	}

	day := pkg.CivilDay(now, loc)
	if !days[day] {
		day--
	}

	streak := 0
	for days[day] {
		streak++
		day--
	}
	return streak
}

// LongestStreak is the longest run of consecutive workout days anywhere in
// the history.
func LongestStreak(sessions []workouts.Session, loc *time.Location) int {
	set := sessionDays(sessions, loc)
	if len(set) == 0 {
		return 0
	}

	days := make([]int64, 0, len(set))
	for d := range set {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i] > days[j]
	})

	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i-1]-days[i] == 1 {
			run++
			longest = max(longest, run)
			continue
		}
		run = 1
	}
	return longest
}

// WeeklyWorkouts counts sessions started within the 7 days up to now,
// both ends included.
func WeeklyWorkouts(sessions []workouts.Session, now time.Time) int {
	from := now.Add(-weekWindow)
	count := 0
	for _, s := range sessions {
		if s.StartedAt.Before(from) || s.StartedAt.After(now) {
			continue
		}
		count++
	}
	return count
}

// sessionDays is the set of civil days in loc with at least one session.
func sessionDays(sessions []workouts.Session, loc *time.Location) map[int64]bool {
	days := make(map[int64]bool, len(sessions))
	for _, s := range sessions {
		days[pkg.CivilDay(s.StartedAt, loc)] = true
	}
	return days
}
