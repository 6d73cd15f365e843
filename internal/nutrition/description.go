package nutrition

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// descriptionPattern matches the nutrition summary the food database returns
// with each search result, e.g.
//
//	Per 100g - Calories: 389kcal | Fat: 6.90g | Carbs: 66.27g | Protein: 16.89g
//
// The four labels always appear in this order with arbitrary text between
// them; labels match case-insensitively and numbers may use comma or dot
// decimals.
var descriptionPattern = regexp.MustCompile(
	`(?is)calories:\s*([0-9.,]+)\s*kcal.*?fat:\s*([0-9.,]+)\s*g.*?carbs:\s*([0-9.,]+)\s*g.*?protein:\s*([0-9.,]+)\s*g`)

// ParseDescription extracts the four macro values from a free-text nutrition
// description. The second return is false when the text does not match the
// expected shape; the caller then treats all macros as absent. It never
// fails harder than that.
func ParseDescription(desc string) (MacroSet, bool) {
	groups := descriptionPattern.FindStringSubmatch(desc)
	if groups == nil {
		return MacroSet{}, false
	}
	return MacroSet{
		Calories: parseNumber(groups[1]),
		Fat:      parseNumber(groups[2]),
		Carbs:    parseNumber(groups[3]),
		Protein:  parseNumber(groups[4]),
	}, true
}

// FormatDescription builds the same summary shape for results this API
// serves itself, so clients can run them through ParseDescription.
func FormatDescription(m MacroSet) string {
	return fmt.Sprintf("Calories: %skcal | Fat: %sg | Carbs: %sg | Protein: %sg",
		formatNumber(m.Calories), formatNumber(m.Fat), formatNumber(m.Carbs), formatNumber(m.Protein))
}

func parseNumber(s string) float64 {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return 0
	}
	return v
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
