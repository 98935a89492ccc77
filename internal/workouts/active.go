package workouts

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/2beens/fitpro/internal/api"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const (
	MsgNotStarted = "Workout has not started."
	MsgNoSets     = "Please log at least one set before finishing."
)

// ActiveSet is one editable row while a workout is running.
type ActiveSet struct {
	Index      int
	WeightText string
	RepsText   string
}

func (s ActiveSet) HasAnyInput() bool {
	return strings.TrimSpace(s.WeightText) != "" || strings.TrimSpace(s.RepsText) != ""
}

type ActiveExercise struct {
	ID   string
	Name string
	Note *string
	Sets []ActiveSet
}

// ActiveWorkout records a session started from a routine.
type ActiveWorkout struct {
	RoutineID   string
	RoutineName string
	RoutineNote *string
	Exercises   []ActiveExercise

	startedAt *time.Time
}

type sessionCreator interface {
	CreateSession(ctx context.Context, payload CreateSessionPayload) (*Session, error)
}

// NewActiveWorkout prefills every exercise with max(defaultSets, 1) sets
// carrying the routine's default weight and reps.
func NewActiveWorkout(routine Routine) *ActiveWorkout {
	w := &ActiveWorkout{
		RoutineID:   routine.ID,
		RoutineName: routine.Name,
		RoutineNote: routine.Notes,
		Exercises:   make([]ActiveExercise, 0, len(routine.Exercises)),
	}

	for _, ex := range routine.Exercises {
		count := 1
		if ex.DefaultSets != nil && *ex.DefaultSets > 1 {
			count = *ex.DefaultSets
		}

		var weightText, repsText string
		if ex.DefaultWeightKg != nil {
			weightText = strconv.Itoa(int(*ex.DefaultWeightKg))
		}
		if ex.DefaultReps != nil {
			repsText = strconv.Itoa(*ex.DefaultReps)
		}

		sets := make([]ActiveSet, count)
		for i := range sets {
			sets[i] = ActiveSet{Index: i + 1, WeightText: weightText, RepsText: repsText}
		}

		w.Exercises = append(w.Exercises, ActiveExercise{
			ID:   uuid.NewString(),
			Name: ex.Name,
			Note: ex.Description,
			Sets: sets,
		})
	}

	return w
}

func (w *ActiveWorkout) Start(now time.Time) {
	w.startedAt = &now
}

func (w *ActiveWorkout) Started() bool {
	return w.startedAt != nil
}

// Elapsed is the time since Start, or zero when not started.
func (w *ActiveWorkout) Elapsed(now time.Time) time.Duration {
	if w.startedAt == nil || now.Before(*w.startedAt) {
		return 0
	}
	return now.Sub(*w.startedAt)
}

// ElapsedLabel formats the elapsed time as mm:ss.
func (w *ActiveWorkout) ElapsedLabel(now time.Time) string {
	sec := int(w.Elapsed(now).Seconds())
	return fmt.Sprintf("%02d:%02d", sec/60, sec%60)
}

// AddSet appends an empty set with the next index to the exercise. It
// reports false when no exercise has that id.
func (w *ActiveWorkout) AddSet(exerciseID string) bool {
	for i := range w.Exercises {
		if w.Exercises[i].ID != exerciseID {
			continue
		}
		next := 0
		for _, s := range w.Exercises[i].Sets {
			next = max(next, s.Index)
		}
		w.Exercises[i].Sets = append(w.Exercises[i].Sets, ActiveSet{Index: next + 1})
		return true
	}
	return false
}

// BuildSession turns the logged rows into a create-session payload. Rows
// without input are skipped and exercises left with no sets are dropped.
func (w *ActiveWorkout) BuildSession(finishedAt time.Time) (CreateSessionPayload, error) {
	if w.startedAt == nil {
		return CreateSessionPayload{}, api.NewValidationError(MsgNotStarted)
	}

	var exercises []ExercisePayload
	for _, ex := range w.Exercises {
		var sets []SetPayload
		for _, s := range ex.Sets {
			if !s.HasAnyInput() {
				continue
			}
			sets = append(sets, SetPayload{
				Index:    s.Index,
				WeightKg: parseFloat(s.WeightText),
				Reps:     parseInt(s.RepsText),
			})
		}
		if len(sets) == 0 {
			continue
		}
		exercises = append(exercises, ExercisePayload{Name: ex.Name, Sets: sets})
	}

	if len(exercises) == 0 {
		return CreateSessionPayload{}, api.NewValidationError(MsgNoSets)
	}

	return CreateSessionPayload{
		RoutineID:  w.RoutineID,
		StartedAt:  api.NewTime(*w.startedAt),
		FinishedAt: api.NewTime(finishedAt),
		Exercises:  exercises,
	}, nil
}

// Finish builds the session payload and saves it.
func (w *ActiveWorkout) Finish(ctx context.Context, creator sessionCreator, finishedAt time.Time) (*Session, error) {
	payload, err := w.BuildSession(finishedAt)
	if err != nil {
		return nil, err
	}

	session, err := creator.CreateSession(ctx, payload)
	if err != nil {
		return nil, err
	}

	log.Debugf("workout [%s] saved as session [%s] with %d exercises", w.RoutineName, session.ID, len(payload.Exercises))
	return session, nil
}

func parseFloat(text string) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseInt(text string) *int {
	v, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return nil
	}
	return &v
}
