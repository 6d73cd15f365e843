package nutrition

// FoodEntry is a single logged food: a MacroSet plus the name and portion
// multiplier it was logged with. The macro values are stored already scaled;
// Portion is kept for display only.
type FoodEntry struct {
	Name     string `json:"name"`
	Portion  Number `json:"portion,omitempty"`
	Calories Number `json:"calories"`
	Protein  Number `json:"protein"`
	Carbs    Number `json:"carbs"`
	Fat      Number `json:"fat"`
}

// Macros returns the entry's macro fields as a MacroSet.
func (e FoodEntry) Macros() MacroSet {
	return MacroSet{
		Calories: float64(e.Calories),
		Protein:  float64(e.Protein),
		Carbs:    float64(e.Carbs),
		Fat:      float64(e.Fat),
	}
}

// DayRecord is one calendar day's logged food in whichever shape the store
// produced it. Three shapes coexist in the wild:
//
//   - Categories: the current shape, category name -> entry key -> FoodEntry
//   - Meals: an older flat list of entries with no category grouping
//   - Legacy: the oldest shape, a precomputed sum stored at the day root
//
// Exactly because the store is schemaless, a single record can carry more
// than one shape at once; Totals resolves the precedence.
type DayRecord struct {
	Categories map[string]map[string]FoodEntry `json:"categories,omitempty"`
	Meals      []FoodEntry                     `json:"meals,omitempty"`
	Legacy     *MacroSet                       `json:"-"`
}

// Totals folds the record into a single MacroSet.
//
// A non-nil category map always wins, even when empty: an explicit empty map
// means "nothing logged", not "fall back to stale sums". Without categories a
// non-empty flat list is summed. The legacy day-root sum is used verbatim
// only when neither of the newer shapes is present.
func (d DayRecord) Totals() MacroSet {
	if d.Categories != nil {
		var total MacroSet
		for _, foods := range d.Categories {
			for _, entry := range foods {
				total = total.Add(entry.Macros())
			}
		}
		return total
	}

	if len(d.Meals) > 0 {
		var total MacroSet
		for _, entry := range d.Meals {
			total = total.Add(entry.Macros())
		}
		return total
	}

	if d.Legacy != nil {
		return *d.Legacy
	}

	return MacroSet{}
}
