package testbackend

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/2beens/fitpro/internal/workouts"
	"github.com/2beens/fitpro/pkg"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const msgWorkoutNotFound = "Workout not found"

type ownedRoutine struct {
	owner   string
	routine workouts.Routine
}

type routinePatch struct {
	Name       *string                             `json:"name"`
	Notes      *string                             `json:"notes"`
	Exercises  *[]workouts.ExerciseTemplatePayload `json:"exercises"`
	IsArchived *bool                               `json:"isArchived"`
}

func routineExercises(templates []workouts.ExerciseTemplatePayload) []workouts.RoutineExercise {
	out := make([]workouts.RoutineExercise, 0, len(templates))
	for _, t := range templates {
		out = append(out, workouts.RoutineExercise(t))
	}
	return out
}

func (b *Backend) handleListRoutines(w http.ResponseWriter, r *http.Request) {
	acc, ok := b.currentUser(w, r)
	if !ok {
		return
	}

	b.mutex.Lock()
	routines := []workouts.Routine{}
	for _, or := range b.routines {
		if or.owner == acc.user.ID {
			routines = append(routines, or.routine)
		}
	}
	b.mutex.Unlock()

	pkg.WriteEnvelope(w, http.StatusOK, routines)
}

func (b *Backend) handleCreateRoutine(w http.ResponseWriter, r *http.Request) {
	acc, ok := b.currentUser(w, r)
	if !ok {
		return
	}
	var payload workouts.RoutinePayload
	if !decodeBody(w, r, &payload) {
		return
	}
	if blank(payload.Name) {
		pkg.WriteEnvelopeError(w, http.StatusBadRequest, "Name is required")
		return
	}

	now := b.now().UTC()
	archived := false
	routine := workouts.Routine{
		ID:         uuid.NewString(),
		Name:       strings.TrimSpace(payload.Name),
		Notes:      payload.Notes,
		Exercises:  routineExercises(payload.Exercises),
		IsArchived: &archived,
		CreatedAt:  &now,
		UpdatedAt:  &now,
	}

	b.mutex.Lock()
	b.routines = append(b.routines, ownedRoutine{owner: acc.user.ID, routine: routine})
	b.mutex.Unlock()

	pkg.WriteEnvelope(w, http.StatusCreated, routine)
}

// findRoutine returns the index of the caller's routine id, or -1.
// Callers hold the mutex.
func (b *Backend) findRoutine(owner, id string) int {
	for i, or := range b.routines {
		if or.owner == owner && or.routine.ID == id {
			return i
		}
	}
	return -1
}

func (b *Backend) handleUpdateRoutine(w http.ResponseWriter, r *http.Request) {
	acc, ok := b.currentUser(w, r)
	if !ok {
		return
	}
	var patch routinePatch
	if !decodeBody(w, r, &patch) {
		return
	}
	if patch.Name != nil && blank(*patch.Name) {
		pkg.WriteEnvelopeError(w, http.StatusBadRequest, "Name is required")
		return
	}

	b.mutex.Lock()
	idx := b.findRoutine(acc.user.ID, mux.Vars(r)["id"])
	if idx < 0 {
		b.mutex.Unlock()
		pkg.WriteEnvelopeError(w, http.StatusNotFound, msgWorkoutNotFound)
		return
	}
	routine := &b.routines[idx].routine
	if patch.Name != nil {
		routine.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Notes != nil {
		routine.Notes = patch.Notes
	}
	if patch.Exercises != nil {
		routine.Exercises = routineExercises(*patch.Exercises)
	}
	if patch.IsArchived != nil {
		routine.IsArchived = patch.IsArchived
	}
	now := b.now().UTC()
	routine.UpdatedAt = &now
	updated := *routine
	b.mutex.Unlock()

	pkg.WriteEnvelope(w, http.StatusOK, updated)
}

func (b *Backend) handleDeleteRoutine(w http.ResponseWriter, r *http.Request) {
	acc, ok := b.currentUser(w, r)
	if !ok {
		return
	}

	b.mutex.Lock()
	idx := b.findRoutine(acc.user.ID, mux.Vars(r)["id"])
	if idx < 0 {
		b.mutex.Unlock()
		pkg.WriteEnvelopeError(w, http.StatusNotFound, msgWorkoutNotFound)
		return
	}
	removed := b.routines[idx].routine
	b.routines = append(b.routines[:idx], b.routines[idx+1:]...)
	b.mutex.Unlock()

	pkg.WriteEnvelope(w, http.StatusOK, removed)
}

func (b *Backend) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	acc, ok := b.currentUser(w, r)
	if !ok {
		return
	}
	var payload workouts.CreateSessionPayload
	if !decodeBody(w, r, &payload) {
		return
	}
	if len(payload.Exercises) == 0 {
		pkg.WriteEnvelopeError(w, http.StatusBadRequest, "At least one exercise is required")
		return
	}
	if payload.FinishedAt.Before(payload.StartedAt.Time) {
		pkg.WriteEnvelopeError(w, http.StatusBadRequest, "finishedAt is before startedAt")
		return
	}

	b.mutex.Lock()
	defer b.mutex.Unlock()

	var ref *workouts.RoutineRef
	if payload.RoutineID != "" {
		idx := b.findRoutine(acc.user.ID, payload.RoutineID)
		if idx < 0 {
			pkg.WriteEnvelopeError(w, http.StatusNotFound, msgWorkoutNotFound)
			return
		}
		ref = &workouts.RoutineRef{
			ID:   b.routines[idx].routine.ID,
			Name: b.routines[idx].routine.Name,
		}
	}

	entries := make([]workouts.ExerciseEntry, 0, len(payload.Exercises))
	for _, e := range payload.Exercises {
		sets := make([]workouts.SetEntry, 0, len(e.Sets))
		for _, s := range e.Sets {
			sets = append(sets, workouts.SetEntry{
				Index:       s.Index,
				WeightKg:    s.WeightKg,
				Reps:        s.Reps,
				DurationSec: s.DurationSec,
				Calories:    s.Calories,
			})
		}
		entries = append(entries, workouts.ExerciseEntry{Name: e.Name, Sets: sets})
	}

	startedAt := payload.StartedAt.UTC()
	finishedAt := payload.FinishedAt.UTC()
	durationSec := int(finishedAt.Sub(startedAt) / time.Second)
	now := b.now().UTC()
	session := workouts.Session{
		ID:          uuid.NewString(),
		UserID:      acc.user.ID,
		Routine:     ref,
		StartedAt:   startedAt,
		FinishedAt:  &finishedAt,
		DurationSec: &durationSec,
		Exercises:   entries,
		CreatedAt:   &now,
		UpdatedAt:   &now,
	}
	b.sessions = append(b.sessions, session)

	pkg.WriteEnvelope(w, http.StatusCreated, session)
}

func (b *Backend) handleListSessions(w http.ResponseWriter, r *http.Request) {
	acc, ok := b.currentUser(w, r)
	if !ok {
		return
	}
	dr, err := b.parseDayRange(r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		pkg.WriteEnvelopeError(w, http.StatusBadRequest, "Invalid date")
		return
	}

	b.mutex.Lock()
	sessions := []workouts.Session{}
	for _, s := range b.sessions {
		if s.UserID == acc.user.ID && dr.contains(s.StartedAt) {
			sessions = append(sessions, s)
		}
	}
	b.mutex.Unlock()

	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].StartedAt.After(sessions[j].StartedAt)
	})
	pkg.WriteEnvelope(w, http.StatusOK, sessions)
}

func (b *Backend) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	acc, ok := b.currentUser(w, r)
	if !ok {
		return
	}
	id := mux.Vars(r)["id"]

	b.mutex.Lock()
	defer b.mutex.Unlock()
	for i, s := range b.sessions {
		if s.UserID == acc.user.ID && s.ID == id {
			b.sessions = append(b.sessions[:i], b.sessions[i+1:]...)
			pkg.WriteEnvelope(w, http.StatusOK, s)
			return
		}
	}
	pkg.WriteEnvelopeError(w, http.StatusNotFound, "Session not found")
}
