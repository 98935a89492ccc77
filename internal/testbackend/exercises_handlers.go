package testbackend

import (
	"net/http"
	"sort"
	"strings"

	"github.com/2beens/fitpro/internal/api"
	"github.com/2beens/fitpro/internal/exercises"
	"github.com/2beens/fitpro/pkg"

	"github.com/google/uuid"
)

func (b *Backend) handleCreateExercise(w http.ResponseWriter, r *http.Request) {
	acc, ok := b.currentUser(w, r)
	if !ok {
		return
	}
	var payload exercises.CreatePayload
	if !decodeBody(w, r, &payload) {
		return
	}
	if blank(payload.Name) {
		pkg.WriteEnvelopeError(w, http.StatusBadRequest, "Name is required")
		return
	}

	performedAt := b.now().UTC()
	if payload.PerformedAt != nil {
		performedAt = payload.PerformedAt.UTC()
	}
	exercise := exercises.Exercise{
		ID:          uuid.NewString(),
		UserID:      acc.user.ID,
		Name:        strings.TrimSpace(payload.Name),
		Category:    payload.Category,
		Sets:        payload.Sets,
		Reps:        payload.Reps,
		WeightKg:    payload.WeightKg,
		DurationMin: payload.DurationMin,
		Calories:    payload.Calories,
		Notes:       payload.Notes,
		PerformedAt: performedAt,
	}

	b.mutex.Lock()
	b.exercises = append(b.exercises, exercise)
	b.mutex.Unlock()

	pkg.WriteEnvelope(w, http.StatusCreated, exercise)
}

// userExercises returns the caller's exercises inside dr, newest first.
func (b *Backend) userExercises(userID string, dr dayRange) []exercises.Exercise {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	var out []exercises.Exercise
	for _, e := range b.exercises {
		if e.UserID == userID && dr.contains(e.PerformedAt) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PerformedAt.After(out[j].PerformedAt)
	})
	return out
}

func (b *Backend) handleListExercises(w http.ResponseWriter, r *http.Request) {
	acc, ok := b.currentUser(w, r)
	if !ok {
		return
	}
	dr, err := b.parseDayRange(r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		pkg.WriteEnvelopeError(w, http.StatusBadRequest, "Invalid date")
		return
	}

	page := positiveIntParam(r, "page", exercises.DefaultPage)
	limit := positiveIntParam(r, "limit", exercises.DefaultLimit)
	all := b.userExercises(acc.user.ID, dr)

	start := min((page-1)*limit, len(all))
	end := min(start+limit, len(all))
	pages := (len(all) + limit - 1) / limit

	pkg.WriteEnvelope(w, http.StatusOK, api.Paged[exercises.Exercise]{
		Items: append([]exercises.Exercise{}, all[start:end]...),
		Total: len(all),
		Page:  page,
		Limit: &limit,
		Pages: &pages,
	})
}

func (b *Backend) handleExercisesSummary(w http.ResponseWriter, r *http.Request) {
	acc, ok := b.currentUser(w, r)
	if !ok {
		return
	}
	if b.failSummary.Load() {
		pkg.WriteEnvelopeError(w, http.StatusInternalServerError, "Summary unavailable")
		return
	}

	fromKey, toKey := r.URL.Query().Get("from"), r.URL.Query().Get("to")
	if fromKey == "" || toKey == "" {
		pkg.WriteEnvelopeError(w, http.StatusBadRequest, "from and to are required")
		return
	}
	dr, err := b.parseDayRange(fromKey, toKey)
	if err != nil {
		pkg.WriteEnvelopeError(w, http.StatusBadRequest, "Invalid date")
		return
	}

	byDay := map[string]*exercises.DailySummary{}
	for _, e := range b.userExercises(acc.user.ID, dr) {
		key := pkg.DayKey(e.PerformedAt, b.loc)
		day, found := byDay[key]
		if !found {
			day = &exercises.DailySummary{
				Date:             key,
				TotalDurationMin: new(float64),
				TotalCalories:    new(float64),
			}
			byDay[key] = day
		}
		day.Count++
		if e.DurationMin != nil {
			*day.TotalDurationMin += *e.DurationMin
		}
		if e.Calories != nil {
			*day.TotalCalories += *e.Calories
		}
	}

	summary := make([]exercises.DailySummary, 0, len(byDay))
	for _, day := range byDay {
		summary = append(summary, *day)
	}
	sort.Slice(summary, func(i, j int) bool {
		return summary[i].Date < summary[j].Date
	})

	pkg.WriteEnvelope(w, http.StatusOK, summary)
}

func (b *Backend) handleLastExercise(w http.ResponseWriter, r *http.Request) {
	acc, ok := b.currentUser(w, r)
	if !ok {
		return
	}
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		pkg.WriteEnvelopeError(w, http.StatusBadRequest, "Name is required")
		return
	}

	for _, e := range b.userExercises(acc.user.ID, dayRange{}) {
		if strings.EqualFold(e.Name, name) {
			pkg.WriteEnvelope(w, http.StatusOK, e)
			return
		}
	}
	pkg.WriteEnvelope(w, http.StatusOK, nil)
}
