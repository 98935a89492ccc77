package testbackend

import (
	"math"
	"net/http"
	"sort"
	"strings"

	"github.com/2beens/fitpro/internal/nutrition"
	"github.com/2beens/fitpro/pkg"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// daily macro targets reported by the summary endpoint
const (
	proteinTargetG = 150
	carbsTargetG   = 250
	fatsTargetG    = 70
)

func (b *Backend) userMeals(userID string, dr dayRange) []nutrition.Meal {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	meals := []nutrition.Meal{}
	for _, m := range b.meals {
		if m.User == userID && dr.contains(m.Date) {
			meals = append(meals, m)
		}
	}
	sort.SliceStable(meals, func(i, j int) bool {
		return meals[i].Date.Before(meals[j].Date)
	})
	return meals
}

func (b *Backend) handleNutritionSummary(w http.ResponseWriter, r *http.Request) {
	acc, ok := b.currentUser(w, r)
	if !ok {
		return
	}
	date := r.URL.Query().Get("date")
	if date == "" {
		pkg.WriteEnvelopeError(w, http.StatusBadRequest, "date is required")
		return
	}
	dr, err := b.parseDayRange(date, date)
	if err != nil {
		pkg.WriteEnvelopeError(w, http.StatusBadRequest, "Invalid date")
		return
	}

	summary := nutrition.Summary{
		Date: date,
		Calories: nutrition.CalorieData{
			Goal: nutrition.DefaultCalorieGoal,
		},
		Macros: nutrition.MacroData{
			Protein: nutrition.MacroDetail{Target: proteinTargetG},
			Carbs:   nutrition.MacroDetail{Target: carbsTargetG},
			Fats:    nutrition.MacroDetail{Target: fatsTargetG},
		},
	}
	for _, m := range b.userMeals(acc.user.ID, dr) {
		summary.Calories.Eaten += m.Calories
		summary.Macros.Protein.Grams += m.ProteinG
		summary.Macros.Carbs.Grams += m.CarbsG
		summary.Macros.Fats.Grams += m.FatsG
	}

	var burned float64
	for _, e := range b.userExercises(acc.user.ID, dr) {
		if e.Calories != nil {
			burned += *e.Calories
		}
	}
	summary.Calories.Burned = int(math.Round(burned))

	pkg.WriteEnvelope(w, http.StatusOK, summary)
}

func (b *Backend) handleListMeals(w http.ResponseWriter, r *http.Request) {
	acc, ok := b.currentUser(w, r)
	if !ok {
		return
	}
	dr, err := b.parseDayRange(r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		pkg.WriteEnvelopeError(w, http.StatusBadRequest, "Invalid date")
		return
	}
	pkg.WriteEnvelope(w, http.StatusOK, b.userMeals(acc.user.ID, dr))
}

func (b *Backend) handleCreateMeal(w http.ResponseWriter, r *http.Request) {
	acc, ok := b.currentUser(w, r)
	if !ok {
		return
	}
	var payload nutrition.CreateMealPayload
	if !decodeBody(w, r, &payload) {
		return
	}
	if blank(payload.Title) {
		pkg.WriteEnvelopeError(w, http.StatusBadRequest, "Title is required")
		return
	}
	if !payload.Type.Valid() {
		pkg.WriteEnvelopeError(w, http.StatusBadRequest, "Invalid meal type")
		return
	}
	if payload.Calories < 0 || payload.ProteinG < 0 || payload.CarbsG < 0 || payload.FatsG < 0 {
		pkg.WriteEnvelopeError(w, http.StatusBadRequest, "Nutrition values must not be negative")
		return
	}

	date := payload.Date.UTC()
	meal := nutrition.Meal{
		ID:       uuid.NewString(),
		User:     acc.user.ID,
		Date:     date,
		Type:     payload.Type,
		Title:    strings.TrimSpace(payload.Title),
		Time:     &date,
		Calories: payload.Calories,
		ProteinG: payload.ProteinG,
		CarbsG:   payload.CarbsG,
		FatsG:    payload.FatsG,
	}

	b.mutex.Lock()
	b.meals = append(b.meals, meal)
	b.mutex.Unlock()

	pkg.WriteEnvelope(w, http.StatusCreated, meal)
}

func (b *Backend) handleDeleteMeal(w http.ResponseWriter, r *http.Request) {
	acc, ok := b.currentUser(w, r)
	if !ok {
		return
	}
	id := mux.Vars(r)["id"]

	b.mutex.Lock()
	defer b.mutex.Unlock()
	for i, m := range b.meals {
		if m.User == acc.user.ID && m.ID == id {
			b.meals = append(b.meals[:i], b.meals[i+1:]...)
			pkg.WriteEnvelope(w, http.StatusOK, m)
			return
		}
	}
	pkg.WriteEnvelopeError(w, http.StatusNotFound, "Meal not found")
}
