package stats

import (
	"time"

	"github.com/2beens/fitpro/internal/exercises"
	"github.com/2beens/fitpro/pkg"
)

// DailyStat is the roll-up of one calendar day.
type DailyStat struct {
	Date             string  `json:"date"`
	TotalDurationMin float64 `json:"totalDurationMin"`
	TotalCalories    float64 `json:"totalCalories"`
	Count            int     `json:"count"`
}

// AggregateDaily buckets items by their local performed day and returns
// exactly days entries, today first, going back one calendar day at a time.
// Days without exercises are zero valued. days < 1 yields an empty result.
func AggregateDaily(items []exercises.Exercise, days int, now time.Time, loc *time.Location) []DailyStat {
	if days < 1 {
		return []DailyStat{}
	}

	buckets := make(map[string]*DailyStat, len(items))
	for _, ex := range items {
		key := pkg.DayKey(ex.PerformedAt, loc)
		b, ok := buckets[key]
		if !ok {
			b = &DailyStat{Date: key}
			buckets[key] = b
		}
		if ex.DurationMin != nil {
			b.TotalDurationMin += *ex.DurationMin
		}
		if ex.Calories != nil {
			b.TotalCalories += *ex.Calories
		}
		b.Count++
	}

	out := make([]DailyStat, 0, days)
	today := pkg.StartOfDay(now, loc)
	for i := 0; i < days; i++ {
		key := pkg.DayKey(pkg.AddDays(today, -i), loc)
		if b, ok := buckets[key]; ok {
			out = append(out, *b)
			continue
		}
		out = append(out, DailyStat{Date: key})
	}

	return out
}

// FromServerSummary maps the backend's daily summary, counting missing
// totals as zero.
func FromServerSummary(summaries []exercises.DailySummary) []DailyStat {
	out := make([]DailyStat, 0, len(summaries))
	for _, s := range summaries {
		stat := DailyStat{
			Date:  s.Date,
			Count: s.Count,
		}
		if s.TotalDurationMin != nil {
			stat.TotalDurationMin = *s.TotalDurationMin
		}
		if s.TotalCalories != nil {
			stat.TotalCalories = *s.TotalCalories
		}
		out = append(out, stat)
	}
	return out
}

// Totals sums a range of daily stats.
type Totals struct {
	Workouts int     `json:"workouts"`
	Minutes  float64 `json:"minutes"`
	Calories float64 `json:"calories"`
}

func SumDaily(dailies []DailyStat) Totals {
	var t Totals
	for _, d := range dailies {
		t.Workouts += d.Count
		t.Minutes += d.TotalDurationMin
		t.Calories += d.TotalCalories
	}
	return t
}

// Today returns the entry for todayKey, or a zero entry for that key.
func Today(dailies []DailyStat, todayKey string) DailyStat {
	for _, d := range dailies {
		if d.Date == todayKey {
			return d
		}
	}
	return DailyStat{Date: todayKey}
}
