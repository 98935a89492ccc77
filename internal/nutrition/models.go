package nutrition

import (
	"strings"
	"time"

	"github.com/2beens/fitpro/internal/api"
)

type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
	MealOther     MealType = "other"
)

var MealTypes = []MealType{MealBreakfast, MealLunch, MealDinner, MealSnack, MealOther}

func (m MealType) Valid() bool {
	for _, t := range MealTypes {
		if m == t {
			return true
		}
	}
	return false
}

func (m MealType) DisplayName() string {
	if m == "" {
		return ""
	}
	return strings.ToUpper(string(m[:1])) + string(m[1:])
}

type Meal struct {
	ID          string     `json:"_id"`
	User        string     `json:"user"`
	Date        time.Time  `json:"date"`
	Type        MealType   `json:"type"`
	Title       string     `json:"title"`
	Time        *time.Time `json:"time,omitempty"`
	Description *string    `json:"description,omitempty"`
	Calories    int        `json:"calories"`
	ProteinG    int        `json:"proteinG"`
	CarbsG      int        `json:"carbsG"`
	FatsG       int        `json:"fatsG"`
}

type CalorieData struct {
	Eaten  int `json:"eaten"`
	Burned int `json:"burned"`
	Goal   int `json:"goal"`
}

type MacroDetail struct {
	Grams  int `json:"grams"`
	Target int `json:"target"`
}

type MacroData struct {
	Protein MacroDetail `json:"protein"`
	Carbs   MacroDetail `json:"carbs"`
	Fats    MacroDetail `json:"fats"`
}

// Summary is the server computed nutrition summary of one day.
type Summary struct {
	Date     string      `json:"date"`
	Calories CalorieData `json:"calories"`
	Macros   MacroData   `json:"macros"`
}

type CreateMealPayload struct {
	Date     api.Time `json:"date"`
	Type     MealType `json:"type"`
	Title    string   `json:"title"`
	Calories int      `json:"calories"`
	ProteinG int      `json:"proteinG"`
	CarbsG   int      `json:"carbsG"`
	FatsG    int      `json:"fatsG"`
}
