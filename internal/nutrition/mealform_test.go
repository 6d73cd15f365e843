package nutrition

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePortion(t *testing.T) {
	cases := map[string]float64{
		"1":    1,
		"2":    2,
		"1.5":  1.5,
		"1,5":  1.5,
		" 2 ":  2,
		"":     1,
		"abc":  1,
		"0":    1,
		"-3":   1,
		"0,75": 0.75,
	}
	for raw, want := range cases {
		assert.Equal(t, want, ParsePortion(raw), "ParsePortion(%q)", raw)
	}
}

func TestPortionRescalesFromBase(t *testing.T) {
	f := NewMealForm()
	f.Pick("Oats", MacroSet{Calories: 200, Protein: 10, Carbs: 20, Fat: 5})

	f.SetPortion("2")
	assert.Equal(t, MacroSet{Calories: 400, Protein: 20, Carbs: 40, Fat: 10}, f.Macros)

	// A second change rescales from the picked base, not from the already
	// doubled values.
	f.SetPortion("3")
	assert.Equal(t, MacroSet{Calories: 600, Protein: 30, Carbs: 60, Fat: 15}, f.Macros)

	f.SetPortion("1")
	assert.Equal(t, MacroSet{Calories: 200, Protein: 10, Carbs: 20, Fat: 5}, f.Macros)
}

func TestPickResetsPortionAndRounds(t *testing.T) {
	f := NewMealForm()
	f.SetPortion("2")

	f.Pick("Rice", MacroSet{Calories: 130.4, Protein: 2.7, Carbs: 28.2, Fat: 0.3})

	assert.Equal(t, "Rice", f.Name)
	assert.Equal(t, "1", f.Portion)
	assert.Equal(t, MacroSet{Calories: 130, Protein: 3, Carbs: 28, Fat: 0}, f.Macros)
}

func TestSetMacrosDropsBase(t *testing.T) {
	f := NewMealForm()
	f.Pick("Oats", MacroSet{Calories: 200, Protein: 10, Carbs: 20, Fat: 5})

	f.SetMacros(MacroSet{Calories: 111, Protein: 1, Carbs: 2, Fat: 3})
	f.SetPortion("5")

	// Manually entered macros stay untouched by portion edits.
	assert.Equal(t, MacroSet{Calories: 111, Protein: 1, Carbs: 2, Fat: 3}, f.Macros)
}

func TestUnparseablePortionScalesAsOne(t *testing.T) {
	f := NewMealForm()
	f.Pick("Oats", MacroSet{Calories: 200, Protein: 10, Carbs: 20, Fat: 5})

	f.SetPortion("x")
	assert.Equal(t, "x", f.Portion)
	assert.Equal(t, MacroSet{Calories: 200, Protein: 10, Carbs: 20, Fat: 5}, f.Macros)
}

func TestEntryDefaultsNameAndPortion(t *testing.T) {
	f := NewMealForm()
	f.SetMacros(MacroSet{Calories: 250.4, Protein: 10, Carbs: 20, Fat: 5})
	f.Portion = ""

	e := f.Entry()
	assert.Equal(t, "Meal", e.Name)
	assert.Equal(t, Number(1), e.Portion)
	assert.Equal(t, Number(250), e.Calories)
}

func TestResetClearsEverything(t *testing.T) {
	f := NewMealForm()
	f.Pick("Oats", MacroSet{Calories: 200, Protein: 10, Carbs: 20, Fat: 5})
	f.SetPortion("2")

	f.Reset()

	assert.Equal(t, NewMealForm(), f)
	f.SetPortion("4")
	assert.Equal(t, MacroSet{}, f.Macros)
}
