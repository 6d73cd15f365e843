package nutrition

import "errors"

// Profile attribute values accepted by CalculateGoals.
const (
	SexMale   = "male"
	SexFemale = "female"

	GoalLose     = "lose"
	GoalMaintain = "maintain"
	GoalGain     = "gain"

	ActivitySedentary = "sedentary"
	ActivityLight     = "light"
	ActivityModerate  = "moderate"
	ActivityActive    = "active"
	ActivityVery      = "very"
)

// activityFactors maps activity level to the total-energy-expenditure
// multiplier applied to BMR.
var activityFactors = map[string]float64{
	ActivitySedentary: 1.2,
	ActivityLight:     1.375,
	ActivityModerate:  1.55,
	ActivityActive:    1.725,
	ActivityVery:      1.9,
}

// Accepted ranges for the numeric profile attributes.
const (
	MinAge      = 10
	MaxAge      = 120
	MinHeightCm = 100
	MaxHeightCm = 250
	MinWeightKg = 30
	MaxWeightKg = 250
)

// ErrIncompleteProfile is returned when the calculator is missing a required
// attribute. No partial result is produced.
var ErrIncompleteProfile = errors.New("sex, age, height and weight are required")

// ErrProfileOutOfRange is returned when a numeric attribute falls outside
// the accepted range.
var ErrProfileOutOfRange = errors.New("age must be 10-120, height 100-250 cm, weight 30-250 kg")

// CheckRanges validates the numeric profile attributes. Zero values pass so
// partial settings updates stay valid; completeness is CalculateGoals'
// concern.
func CheckRanges(age, heightCm, weightKg float64) error {
	if age != 0 && (age < MinAge || age > MaxAge) {
		return ErrProfileOutOfRange
	}
	if heightCm != 0 && (heightCm < MinHeightCm || heightCm > MaxHeightCm) {
		return ErrProfileOutOfRange
	}
	if weightKg != 0 && (weightKg < MinWeightKg || weightKg > MaxWeightKg) {
		return ErrProfileOutOfRange
	}
	return nil
}

// Profile carries the attributes the goal calculator needs.
type Profile struct {
	Sex      string  `json:"sex"`
	Age      float64 `json:"age"`
	HeightCm float64 `json:"height"`
	WeightKg float64 `json:"weight"`
	Activity string  `json:"activity"`
	GoalType string  `json:"goalType"`
}

// CalculateGoals derives daily calorie and macro targets from a profile.
//
// BMR follows Mifflin-St Jeor: 10·weight + 6.25·height − 5·age, +5 for male
// and −161 for female. Calories are BMR times the activity factor, minus 500
// for a weight-loss goal or plus 350 for a gain goal. Macros split the
// calories 30/40/30 across protein, carbs and fat at 4/4/9 kcal per gram.
// Every result is floored at zero. The caller persists the result; nothing
// is stored here.
func CalculateGoals(p Profile) (MacroSet, error) {
	if p.Sex == "" || p.Age <= 0 || p.HeightCm <= 0 || p.WeightKg <= 0 {
		return MacroSet{}, ErrIncompleteProfile
	}
	if err := CheckRanges(p.Age, p.HeightCm, p.WeightKg); err != nil {
		return MacroSet{}, err
	}

	bmr := 10*p.WeightKg + 6.25*p.HeightCm - 5*p.Age
	if p.Sex == SexMale {
		bmr += 5
	} else {
		bmr -= 161
	}

	factor, ok := activityFactors[p.Activity]
	if !ok {
		factor = activityFactors[ActivityModerate]
	}

	calories := roundHalfUp(bmr * factor)
	switch p.GoalType {
	case GoalLose:
		calories -= 500
	case GoalGain:
		calories += 350
	}
	if calories < 0 {
		calories = 0
	}

	goals := MacroSet{
		Calories: calories,
		Protein:  roundHalfUp(calories * 0.30 / 4),
		Carbs:    roundHalfUp(calories * 0.40 / 4),
		Fat:      roundHalfUp(calories * 0.30 / 9),
	}
	return goals, nil
}
