// Package nutrition holds the pure macro arithmetic the rest of the backend
// is built on: day aggregation, portion scaling, goal calculation and the
// food-description parser. Nothing in here touches the database or network.
package nutrition

import "math"

// MacroSet is the four-field nutrition tuple {calories, protein, carbs, fat}.
// All fields default to zero and are never negative by convention.
type MacroSet struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// Add returns the field-wise sum of m and o.
func (m MacroSet) Add(o MacroSet) MacroSet {
	return MacroSet{
		Calories: m.Calories + o.Calories,
		Protein:  m.Protein + o.Protein,
		Carbs:    m.Carbs + o.Carbs,
		Fat:      m.Fat + o.Fat,
	}
}

// Scale returns m with every field multiplied by portion and rounded to the
// nearest integer, half up. A portion of zero or less is treated as 1 so a
// blank form field never zeroes out a picked food.
func (m MacroSet) Scale(portion float64) MacroSet {
	if portion <= 0 {
		portion = 1
	}
	return MacroSet{
		Calories: roundHalfUp(m.Calories * portion),
		Protein:  roundHalfUp(m.Protein * portion),
		Carbs:    roundHalfUp(m.Carbs * portion),
		Fat:      roundHalfUp(m.Fat * portion),
	}
}

// Rounded returns m with every field rounded half up.
func (m MacroSet) Rounded() MacroSet {
	return m.Scale(1)
}

// IsZero reports whether all four fields are zero.
func (m MacroSet) IsZero() bool {
	return m.Calories == 0 && m.Protein == 0 && m.Carbs == 0 && m.Fat == 0
}

func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}
