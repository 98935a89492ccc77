package workouts

import (
	"sort"
)

// ActiveRoutines drops archived routines and keeps the order of the rest.
func ActiveRoutines(routines []Routine) []Routine {
	active := make([]Routine, 0, len(routines))
	for _, r := range routines {
		if r.Archived() {
			continue
		}
		active = append(active, r)
	}
	return active
}

// SortNewestFirst orders sessions by start time, latest first.
func SortNewestFirst(sessions []Session) []Session {
	sorted := append([]Session(nil), sessions...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartedAt.After(sorted[j].StartedAt)
	})
	return sorted
}

// RemoveSession returns sessions without the one with the given id.
func RemoveSession(sessions []Session, id string) []Session {
	for i := range sessions {
		if sessions[i].ID == id {
			out := make([]Session, 0, len(sessions)-1)
			out = append(out, sessions[:i]...)
			return append(out, sessions[i+1:]...)
		}
	}
	return sessions
}
