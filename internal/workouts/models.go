package workouts

import (
	"encoding/json"
	"time"

	"github.com/2beens/fitpro/internal/api"
)

// RoutineExercise is an exercise template inside a routine.
type RoutineExercise struct {
	Name            string   `json:"name"`
	Description     *string  `json:"description,omitempty"`
	BodyPart        *string  `json:"bodyPart,omitempty"`
	DefaultSets     *int     `json:"defaultSets,omitempty"`
	DefaultReps     *int     `json:"defaultReps,omitempty"`
	DefaultWeightKg *float64 `json:"defaultWeightKg,omitempty"`
	Order           *int     `json:"order,omitempty"`
}

type Routine struct {
	ID         string            `json:"_id"`
	Name       string            `json:"name"`
	Notes      *string           `json:"notes,omitempty"`
	Exercises  []RoutineExercise `json:"exercises"`
	IsArchived *bool             `json:"isArchived,omitempty"`
	CreatedAt  *time.Time        `json:"createdAt,omitempty"`
	UpdatedAt  *time.Time        `json:"updatedAt,omitempty"`
}

func (r Routine) Archived() bool {
	return r.IsArchived != nil && *r.IsArchived
}

// RoutineRef is the routine a session was started from. Older sessions
// carry only the routine id instead of the populated document.
type RoutineRef struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

func (r *RoutineRef) UnmarshalJSON(b []byte) error {
	var id string
	if err := json.Unmarshal(b, &id); err == nil {
		r.ID = id
		return nil
	}

	type plain RoutineRef
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*r = RoutineRef(p)
	return nil
}

// SetEntry is one logged set. Index is 1-based within its exercise.
type SetEntry struct {
	Index       int      `json:"index"`
	WeightKg    *float64 `json:"weightKg,omitempty"`
	Reps        *int     `json:"reps,omitempty"`
	DurationSec *int     `json:"durationSec,omitempty"`
	Calories    *float64 `json:"calories,omitempty"`
	Notes       *string  `json:"notes,omitempty"`
}

// Volume is weight x reps, with a missing factor counting as zero.
func (s SetEntry) Volume() float64 {
	if s.WeightKg == nil || s.Reps == nil {
		return 0
	}
	return *s.WeightKg * float64(*s.Reps)
}

type ExerciseEntry struct {
	Name  string     `json:"name"`
	Notes *string    `json:"notes,omitempty"`
	Sets  []SetEntry `json:"sets"`
}

type Session struct {
	ID          string          `json:"_id"`
	UserID      string          `json:"user"`
	Routine     *RoutineRef     `json:"workoutRoutine,omitempty"`
	StartedAt   time.Time       `json:"startedAt"`
	FinishedAt  *time.Time      `json:"finishedAt,omitempty"`
	DurationSec *int            `json:"durationSec,omitempty"`
	Exercises   []ExerciseEntry `json:"exercises"`
	CreatedAt   *time.Time      `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time      `json:"updatedAt,omitempty"`
}

// Volume sums weight x reps over every set of the session.
func (s Session) Volume() float64 {
	var total float64
	for _, e := range s.Exercises {
		for _, set := range e.Sets {
			total += set.Volume()
		}
	}
	return total
}

type RoutinePayload struct {
	Name      string                    `json:"name"`
	Notes     *string                   `json:"notes,omitempty"`
	Exercises []ExerciseTemplatePayload `json:"exercises"`
}

type ExerciseTemplatePayload struct {
	Name            string   `json:"name"`
	Description     *string  `json:"description,omitempty"`
	BodyPart        *string  `json:"bodyPart,omitempty"`
	DefaultSets     *int     `json:"defaultSets,omitempty"`
	DefaultReps     *int     `json:"defaultReps,omitempty"`
	DefaultWeightKg *float64 `json:"defaultWeightKg,omitempty"`
	Order           *int     `json:"order,omitempty"`
}

type CreateSessionPayload struct {
	RoutineID  string            `json:"routineId"`
	StartedAt  api.Time          `json:"startedAt"`
	FinishedAt api.Time          `json:"finishedAt"`
	Exercises  []ExercisePayload `json:"exercises"`
}

type ExercisePayload struct {
	Name string       `json:"name"`
	Sets []SetPayload `json:"sets"`
}

type SetPayload struct {
	Index       int      `json:"index"`
	WeightKg    *float64 `json:"weightKg,omitempty"`
	Reps        *int     `json:"reps,omitempty"`
	DurationSec *int     `json:"durationSec,omitempty"`
	Calories    *float64 `json:"calories,omitempty"`
}
