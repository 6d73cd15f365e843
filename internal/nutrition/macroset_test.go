package nutrition

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddIsFieldWise(t *testing.T) {
	a := MacroSet{Calories: 100, Protein: 10, Carbs: 20, Fat: 5}
	b := MacroSet{Calories: 250, Protein: 12.5, Carbs: 30, Fat: 7}

	sum := a.Add(b)
	assert.Equal(t, MacroSet{Calories: 350, Protein: 22.5, Carbs: 50, Fat: 12}, sum)
}

func TestAddCommutativeAndAssociative(t *testing.T) {
	a := MacroSet{Calories: 100.5, Protein: 10, Carbs: 20, Fat: 5}
	b := MacroSet{Calories: 250, Protein: 12.5, Carbs: 30, Fat: 7}
	c := MacroSet{Calories: 75, Protein: 3, Carbs: 8.25, Fat: 1}

	assert.Equal(t, a.Add(b), b.Add(a))
	assert.Equal(t, a.Add(b).Add(c), a.Add(b.Add(c)))
}

func TestAddZeroIdentity(t *testing.T) {
	a := MacroSet{Calories: 100, Protein: 10, Carbs: 20, Fat: 5}
	assert.Equal(t, a, a.Add(MacroSet{}))
}

func TestScaleByOneRoundsOnly(t *testing.T) {
	base := MacroSet{Calories: 200, Protein: 10, Carbs: 20, Fat: 5}
	assert.Equal(t, base, base.Scale(1))

	fractional := MacroSet{Calories: 200.5, Protein: 10.4, Carbs: 19.5, Fat: 4.9}
	assert.Equal(t, MacroSet{Calories: 201, Protein: 10, Carbs: 20, Fat: 5}, fractional.Scale(1))
}

func TestScaleDoubling(t *testing.T) {
	bases := []MacroSet{
		{Calories: 200, Protein: 10, Carbs: 20, Fat: 5},
		{Calories: 133.3, Protein: 7.7, Carbs: 14.1, Fat: 3.3},
		{Calories: 89.5, Protein: 2.25, Carbs: 11.75, Fat: 0.5},
	}

	for _, base := range bases {
		doubled := base.Scale(2)
		once := base.Scale(1)
		// Doubling the base must land within rounding distance of doubling
		// the rounded single portion.
		assert.InDelta(t, 2*once.Calories, doubled.Calories, 1)
		assert.InDelta(t, 2*once.Protein, doubled.Protein, 1)
		assert.InDelta(t, 2*once.Carbs, doubled.Carbs, 1)
		assert.InDelta(t, 2*once.Fat, doubled.Fat, 1)
	}
}

func TestScaleHalfUp(t *testing.T) {
	base := MacroSet{Calories: 1, Protein: 1, Carbs: 1, Fat: 1}
	// 1 × 2.5 = 2.5 rounds up to 3, not to even.
	assert.Equal(t, MacroSet{Calories: 3, Protein: 3, Carbs: 3, Fat: 3}, base.Scale(2.5))
}

func TestScaleNonPositivePortionDefaultsToOne(t *testing.T) {
	base := MacroSet{Calories: 200, Protein: 10, Carbs: 20, Fat: 5}
	assert.Equal(t, base, base.Scale(0))
	assert.Equal(t, base, base.Scale(-2))
}

func TestRoundHalfUp(t *testing.T) {
	cases := map[float64]float64{
		0:    0,
		0.4:  0,
		0.5:  1,
		1.5:  2,
		2.5:  3,
		2.49: 2,
	}
	for in, want := range cases {
		assert.Equal(t, want, roundHalfUp(in), "roundHalfUp(%v)", in)
	}
}

func TestIsZero(t *testing.T) {
	assert.True(t, MacroSet{}.IsZero())
	assert.False(t, MacroSet{Fat: math.SmallestNonzeroFloat64}.IsZero())
}
