package nutrition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateGoalsMaintain(t *testing.T) {
	// Male, 30y, 180cm, 80kg: BMR = 800 + 1125 - 150 + 5 = 1780.
	// Moderate activity: 1780 × 1.55 = 2759.
	goals, err := CalculateGoals(Profile{
		Sex:      SexMale,
		Age:      30,
		HeightCm: 180,
		WeightKg: 80,
		Activity: ActivityModerate,
		GoalType: GoalMaintain,
	})
	require.NoError(t, err)

	assert.Equal(t, MacroSet{Calories: 2759, Protein: 207, Carbs: 276, Fat: 92}, goals)
}

func TestCalculateGoalsLoseSubtracts500(t *testing.T) {
	goals, err := CalculateGoals(Profile{
		Sex:      SexMale,
		Age:      30,
		HeightCm: 180,
		WeightKg: 80,
		Activity: ActivityModerate,
		GoalType: GoalLose,
	})
	require.NoError(t, err)

	assert.Equal(t, float64(2259), goals.Calories)
}

func TestCalculateGoalsGainAdds350(t *testing.T) {
	goals, err := CalculateGoals(Profile{
		Sex:      SexMale,
		Age:      30,
		HeightCm: 180,
		WeightKg: 80,
		Activity: ActivityModerate,
		GoalType: GoalGain,
	})
	require.NoError(t, err)

	assert.Equal(t, float64(3109), goals.Calories)
}

func TestCalculateGoalsFemaleOffset(t *testing.T) {
	// Female, 28y, 165cm, 60kg: BMR = 600 + 1031.25 - 140 - 161 = 1330.25.
	// Light activity: 1330.25 × 1.375 = 1829.09... -> 1829.
	goals, err := CalculateGoals(Profile{
		Sex:      SexFemale,
		Age:      28,
		HeightCm: 165,
		WeightKg: 60,
		Activity: ActivityLight,
		GoalType: GoalMaintain,
	})
	require.NoError(t, err)

	assert.Equal(t, float64(1829), goals.Calories)
}

func TestCalculateGoalsUnknownActivityFallsBackToModerate(t *testing.T) {
	base := Profile{Sex: SexMale, Age: 30, HeightCm: 180, WeightKg: 80, GoalType: GoalMaintain}

	moderate := base
	moderate.Activity = ActivityModerate
	want, err := CalculateGoals(moderate)
	require.NoError(t, err)

	unknown := base
	unknown.Activity = "extreme"
	got, err := CalculateGoals(unknown)
	require.NoError(t, err)

	assert.Equal(t, want, got)
}

func TestCalculateGoalsIncompleteProfile(t *testing.T) {
	complete := Profile{Sex: SexFemale, Age: 25, HeightCm: 170, WeightKg: 65}

	for name, mutate := range map[string]func(*Profile){
		"missing sex":    func(p *Profile) { p.Sex = "" },
		"zero age":       func(p *Profile) { p.Age = 0 },
		"zero height":    func(p *Profile) { p.HeightCm = 0 },
		"zero weight":    func(p *Profile) { p.WeightKg = 0 },
		"negative age":   func(p *Profile) { p.Age = -5 },
		"negative value": func(p *Profile) { p.WeightKg = -60 },
	} {
		t.Run(name, func(t *testing.T) {
			p := complete
			mutate(&p)
			_, err := CalculateGoals(p)
			assert.ErrorIs(t, err, ErrIncompleteProfile)
		})
	}
}

func TestCalculateGoalsRejectsOutOfRangeProfile(t *testing.T) {
	complete := Profile{Sex: SexMale, Age: 30, HeightCm: 180, WeightKg: 80}

	for name, mutate := range map[string]func(*Profile){
		"age too high":    func(p *Profile) { p.Age = 999 },
		"age too low":     func(p *Profile) { p.Age = 9 },
		"height too low":  func(p *Profile) { p.HeightCm = 9 },
		"height too high": func(p *Profile) { p.HeightCm = 251 },
		"weight too low":  func(p *Profile) { p.WeightKg = 29 },
		"weight too high": func(p *Profile) { p.WeightKg = 5000 },
	} {
		t.Run(name, func(t *testing.T) {
			p := complete
			mutate(&p)
			_, err := CalculateGoals(p)
			assert.ErrorIs(t, err, ErrProfileOutOfRange)
		})
	}
}

func TestCheckRanges(t *testing.T) {
	assert.NoError(t, CheckRanges(10, 100, 30))
	assert.NoError(t, CheckRanges(120, 250, 250))
	// Zero means "not provided", not a range violation.
	assert.NoError(t, CheckRanges(0, 0, 0))

	assert.ErrorIs(t, CheckRanges(999, 170, 70), ErrProfileOutOfRange)
	assert.ErrorIs(t, CheckRanges(30, 9, 70), ErrProfileOutOfRange)
	assert.ErrorIs(t, CheckRanges(30, 170, 5000), ErrProfileOutOfRange)
}

func TestCalculateGoalsCaloriesFlooredAtZero(t *testing.T) {
	// The smallest accepted profile with a lose goal would go negative
	// without the floor: BMR 164, sedentary 197, minus 500.
	goals, err := CalculateGoals(Profile{
		Sex:      SexFemale,
		Age:      120,
		HeightCm: 100,
		WeightKg: 30,
		Activity: ActivitySedentary,
		GoalType: GoalLose,
	})
	require.NoError(t, err)

	assert.Equal(t, float64(0), goals.Calories)
	assert.Equal(t, float64(0), goals.Protein)
	assert.Equal(t, float64(0), goals.Carbs)
	assert.Equal(t, float64(0), goals.Fat)
}

func TestCalculateGoalsMacroSplit(t *testing.T) {
	goals, err := CalculateGoals(Profile{
		Sex:      SexMale,
		Age:      30,
		HeightCm: 180,
		WeightKg: 80,
		Activity: ActivityModerate,
		GoalType: GoalMaintain,
	})
	require.NoError(t, err)

	// 30/40/30 of calories at 4/4/9 kcal per gram, rounded half up.
	assert.Equal(t, roundHalfUp(goals.Calories*0.30/4), goals.Protein)
	assert.Equal(t, roundHalfUp(goals.Calories*0.40/4), goals.Carbs)
	assert.Equal(t, roundHalfUp(goals.Calories*0.30/9), goals.Fat)
}
