package nutrition

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/2beens/fitpro/internal/api"
	"github.com/2beens/fitpro/internal/api/apitest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
	)
}

var summaryData = map[string]any{
	"date":     "2024-05-01",
	"calories": map[string]any{"eaten": 1500, "burned": 300, "goal": 2200},
	"macros": map[string]any{
		"protein": map[string]any{"grams": 120, "target": 150},
		"carbs":   map[string]any{"grams": 180, "target": 250},
		"fats":    map[string]any{"grams": 50, "target": 70},
	},
}

var mealsData = []map[string]any{
	{
		"_id": "m1", "user": "u1", "date": "2024-05-01T00:00:00.000Z", "type": "breakfast",
		"title": "Oats", "calories": 450, "proteinG": 20, "carbsG": 60, "fatsG": 10,
	},
	{
		"_id": "m2", "user": "u1", "date": "2024-05-01T00:00:00.000Z", "type": "lunch",
		"title": "Chicken bowl", "time": "2024-05-01T12:30:00.000Z", "description": "rice, beans",
		"calories": 1050, "proteinG": 100, "carbsG": 120, "fatsG": 40,
	},
}

func TestMealType(t *testing.T) {
	assert.Equal(t, "Breakfast", MealBreakfast.DisplayName())
	assert.Equal(t, "Other", MealOther.DisplayName())
	assert.Equal(t, "", MealType("").DisplayName())
	assert.True(t, MealSnack.Valid())
	assert.False(t, MealType("brunch").Valid())
	assert.Len(t, MealTypes, 5)
}

func TestBudget(t *testing.T) {
	b := NewBudget(nil)
	assert.Equal(t, DefaultCalorieGoal, b.Goal)
	assert.Equal(t, 2000, b.CaloriesLeft())
	assert.Equal(t, 0.0, b.RingProgress())

	b = Budget{Eaten: 1500, Burned: 300, Goal: 2200}
	assert.Equal(t, 2500, b.Total())
	assert.Equal(t, 1000, b.CaloriesLeft())
	assert.InDelta(t, 0.6, b.RingProgress(), 1e-9)

	over := Budget{Eaten: 3000, Burned: 0, Goal: 2000}
	assert.Equal(t, 0, over.CaloriesLeft())
	assert.InDelta(t, 1.5, over.RingProgress(), 1e-9)

	assert.Equal(t, 0.0, Budget{Eaten: 100}.RingProgress())
}

func TestService_SummaryUsesLocalDay(t *testing.T) {
	backend := apitest.NewServer(t)
	backend.On(http.MethodGet, "/api/nutrition/summary", apitest.OK(summaryData))

	tokyo := time.FixedZone("JST", 9*60*60)
	// 2024-04-30 20:00 UTC is already May 1st in Tokyo
	day := time.Date(2024, 4, 30, 20, 0, 0, 0, time.UTC).In(tokyo)

	summary, err := NewService(backend.Client()).Summary(context.Background(), day)
	require.NoError(t, err)
	assert.Equal(t, 1500, summary.Calories.Eaten)
	assert.Equal(t, 150, summary.Macros.Protein.Target)
	assert.Equal(t, map[string]string{"date": "2024-05-01"}, backend.LastCall().Query)
}

func TestService_Meals(t *testing.T) {
	backend := apitest.NewServer(t)
	service := NewService(backend.Client())
	ctx := context.Background()
	day := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	backend.On(http.MethodGet, "/api/nutrition/meals", apitest.OK(mealsData))
	meals, err := service.ListMeals(ctx, day)
	require.NoError(t, err)
	require.Len(t, meals, 2)
	assert.Equal(t, MealLunch, meals[1].Type)
	require.NotNil(t, meals[1].Time)
	assert.Nil(t, meals[0].Description)
	assert.Equal(t, map[string]string{"from": "2024-05-01", "to": "2024-05-01"}, backend.LastCall().Query)

	backend.On(http.MethodPost, "/api/nutrition/meals", apitest.Reply{
		Status: http.StatusCreated,
		Body:   map[string]any{"success": true, "data": mealsData[0]},
	})
	meal, err := service.CreateMeal(ctx, CreateMealPayload{
		Date:     api.NewTime(day),
		Type:     MealBreakfast,
		Title:    "Oats",
		Calories: 450,
	})
	require.NoError(t, err)
	assert.Equal(t, "m1", meal.ID)
	var sent map[string]any
	backend.LastCall().DecodeBody(t, &sent)
	assert.Equal(t, "2024-05-01T09:00:00Z", sent["date"])
	assert.Equal(t, "breakfast", sent["type"])

	backend.On(http.MethodDelete, "/api/nutrition/meals/m1", apitest.OK(nil))
	require.NoError(t, service.DeleteMeal(ctx, "m1"))
}

func TestService_LoadDay(t *testing.T) {
	backend := apitest.NewServer(t)
	backend.On(http.MethodGet, "/api/nutrition/summary", apitest.OK(summaryData))
	backend.On(http.MethodGet, "/api/nutrition/meals", apitest.OK(mealsData))

	day, err := NewService(backend.Client()).LoadDay(context.Background(), time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, day.Meals, 2)
	assert.Equal(t, 1000, day.Budget.CaloriesLeft())
	assert.Len(t, backend.Calls(), 2)
}

func TestService_LoadDayFails(t *testing.T) {
	backend := apitest.NewServer(t)
	backend.On(http.MethodGet, "/api/nutrition/summary", apitest.Fail(http.StatusInternalServerError, "summary unavailable"))
	backend.On(http.MethodGet, "/api/nutrition/meals", apitest.OK(mealsData))

	_, err := NewService(backend.Client()).LoadDay(context.Background(), time.Now())
	require.Error(t, err)
	assert.Equal(t, "summary unavailable", api.MessageOf(err, "Failed to load nutrition data."))
}
