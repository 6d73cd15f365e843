package nutrition

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(cal, prot, carbs, fat float64) FoodEntry {
	return FoodEntry{
		Calories: Number(cal),
		Protein:  Number(prot),
		Carbs:    Number(carbs),
		Fat:      Number(fat),
	}
}

func TestTotalsSumsCategories(t *testing.T) {
	day := DayRecord{
		Categories: map[string]map[string]FoodEntry{
			"Breakfast": {
				"a": entry(300, 20, 30, 10),
				"b": entry(150, 5, 25, 3),
			},
			"Dinner": {
				"c": entry(550, 40, 45, 20),
			},
		},
	}

	assert.Equal(t, MacroSet{Calories: 1000, Protein: 65, Carbs: 100, Fat: 33}, day.Totals())
}

func TestTotalsSumsFlatMeals(t *testing.T) {
	day := DayRecord{
		Meals: []FoodEntry{
			entry(300, 20, 30, 10),
			entry(200, 10, 15, 8),
		},
	}

	assert.Equal(t, MacroSet{Calories: 500, Protein: 30, Carbs: 45, Fat: 18}, day.Totals())
}

func TestTotalsUsesLegacySumsLast(t *testing.T) {
	day := DayRecord{Legacy: &MacroSet{Calories: 1800, Protein: 120, Carbs: 200, Fat: 60}}
	assert.Equal(t, MacroSet{Calories: 1800, Protein: 120, Carbs: 200, Fat: 60}, day.Totals())
}

func TestTotalsCategoriesBeatFlatAndLegacy(t *testing.T) {
	day := DayRecord{
		Categories: map[string]map[string]FoodEntry{
			"Lunch": {"a": entry(400, 30, 40, 12)},
		},
		Meals:  []FoodEntry{entry(999, 99, 99, 99)},
		Legacy: &MacroSet{Calories: 1234},
	}

	assert.Equal(t, MacroSet{Calories: 400, Protein: 30, Carbs: 40, Fat: 12}, day.Totals())
}

func TestTotalsEmptyCategoriesBeatStaleLegacy(t *testing.T) {
	// A present but empty category map means everything was deleted, so a
	// stale day-root sum must not resurface.
	day := DayRecord{
		Categories: map[string]map[string]FoodEntry{},
		Legacy:     &MacroSet{Calories: 1800, Protein: 120, Carbs: 200, Fat: 60},
	}

	assert.Equal(t, MacroSet{}, day.Totals())
}

func TestTotalsFlatBeatsLegacy(t *testing.T) {
	day := DayRecord{
		Meals:  []FoodEntry{entry(250, 12, 30, 8)},
		Legacy: &MacroSet{Calories: 1800},
	}

	assert.Equal(t, MacroSet{Calories: 250, Protein: 12, Carbs: 30, Fat: 8}, day.Totals())
}

func TestTotalsEmptyRecordIsZero(t *testing.T) {
	assert.Equal(t, MacroSet{}, DayRecord{}.Totals())
}

func TestFoodEntryDecodeTolerant(t *testing.T) {
	// Numeric fields arrive as numbers, numeric strings or comma decimals
	// depending on which client wrote them.
	raw := `{"name":"Oats","portion":"1,5","calories":"233","protein":8.1,"carbs":"40,2","fat":"not a number"}`

	var e FoodEntry
	require.NoError(t, json.Unmarshal([]byte(raw), &e))

	assert.Equal(t, "Oats", e.Name)
	assert.Equal(t, Number(1.5), e.Portion)
	assert.Equal(t, Number(233), e.Calories)
	assert.Equal(t, Number(8.1), e.Protein)
	assert.Equal(t, Number(40.2), e.Carbs)
	assert.Equal(t, Number(0), e.Fat)
}

func TestDayRecordDecode(t *testing.T) {
	raw := `{"categories":{"Breakfast":{"k1":{"name":"Eggs","calories":150,"protein":12,"carbs":1,"fat":10}}}}`

	var day DayRecord
	require.NoError(t, json.Unmarshal([]byte(raw), &day))

	assert.Equal(t, MacroSet{Calories: 150, Protein: 12, Carbs: 1, Fat: 10}, day.Totals())
}
