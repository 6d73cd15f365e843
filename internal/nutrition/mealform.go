package nutrition

import (
	"strconv"
	"strings"
)

// ParsePortion parses a portion input, accepting comma or dot as the decimal
// separator. Empty, unparseable or non-positive input defaults to 1 so the
// calculation always has a usable multiplier; the raw text stays whatever
// the user typed.
func ParsePortion(raw string) float64 {
	v, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(raw), ",", "."), 64)
	if err != nil || v <= 0 {
		return 1
	}
	return v
}

// MealForm is the add-meal view-model: the current macro values shown in the
// form, the raw portion input, and the unscaled base macros remembered when
// a search result was picked. Keeping the base explicit means a portion
// change always rescales from the original values instead of compounding on
// top of already-scaled ones.
type MealForm struct {
	Name    string
	Portion string
	Macros  MacroSet

	base *MacroSet
}

// NewMealForm returns an empty form with the portion preset to 1.
func NewMealForm() MealForm {
	return MealForm{Portion: "1"}
}

// Pick fills the form from a picked food and remembers its unscaled macros
// as the base for later portion changes. The portion resets to 1.
func (f *MealForm) Pick(name string, macros MacroSet) {
	f.Name = name
	f.Macros = macros.Rounded()
	f.Portion = "1"
	base := macros
	f.base = &base
}

// SetPortion records the raw portion input and, when base macros are
// remembered, recomputes the form macros from them.
func (f *MealForm) SetPortion(raw string) {
	f.Portion = raw
	if f.base == nil {
		return
	}
	f.Macros = f.base.Scale(ParsePortion(raw))
}

// SetMacros overwrites the macro fields by hand. The remembered base is
// dropped: the user is entering a fresh food, so portion edits must not
// rescale the previous pick.
func (f *MealForm) SetMacros(m MacroSet) {
	f.Macros = m
	f.base = nil
}

// Entry converts the form into the FoodEntry to persist.
func (f *MealForm) Entry() FoodEntry {
	name := f.Name
	if name == "" {
		name = "Meal"
	}
	m := f.Macros.Rounded()
	return FoodEntry{
		Name:     name,
		Portion:  Number(ParsePortion(f.Portion)),
		Calories: Number(m.Calories),
		Protein:  Number(m.Protein),
		Carbs:    Number(m.Carbs),
		Fat:      Number(m.Fat),
	}
}

// Reset clears the form after a successful submit, including the remembered
// base macros.
func (f *MealForm) Reset() {
	*f = NewMealForm()
}
