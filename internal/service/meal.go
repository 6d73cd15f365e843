package service

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/runmacros/backend/internal/models"
	"github.com/runmacros/backend/internal/nutrition"
)

var ErrEntryNotFound = errors.New("entry not found")

// MealService manages per-day food logs.
type MealService struct {
	db    *gorm.DB
	goals *GoalService
}

func NewMealService(db *gorm.DB, goals *GoalService) *MealService {
	return &MealService{db: db, goals: goals}
}

// AddEntry logs a food entry under the given category for the given day,
// creating the day row on first use. The day's root sums are rewritten in
// the same save so they never drift from the entries.
func (s *MealService) AddEntry(userID uuid.UUID, date, category string, entry nutrition.FoodEntry) (*models.DayRecord, error) {
	if category == "" {
		category = "Uncategorized"
	}

	day, err := s.loadOrCreateDay(userID, date)
	if err != nil {
		return nil, err
	}

	if day.Categories == nil {
		day.Categories = models.CategoryMap{}
	}
	if day.Categories[category] == nil {
		day.Categories[category] = map[string]nutrition.FoodEntry{}
	}
	day.Categories[category][uuid.New().String()] = entry

	day.SyncSums()
	if err := s.db.Save(day).Error; err != nil {
		return nil, fmt.Errorf("failed to save day: %w", err)
	}
	return day, nil
}

// RemoveEntry deletes a logged entry. The category map stays present even
// when it becomes empty, so totals do not fall back to stale sums.
func (s *MealService) RemoveEntry(userID uuid.UUID, date, category, entryID string) (*models.DayRecord, error) {
	day, err := s.Day(userID, date)
	if err != nil {
		return nil, err
	}
	if day == nil || day.Categories == nil {
		return nil, ErrEntryNotFound
	}

	foods, ok := day.Categories[category]
	if !ok {
		return nil, ErrEntryNotFound
	}
	if _, ok := foods[entryID]; !ok {
		return nil, ErrEntryNotFound
	}
	delete(foods, entryID)
	if len(foods) == 0 {
		delete(day.Categories, category)
	}

	day.SyncSums()
	if err := s.db.Save(day).Error; err != nil {
		return nil, fmt.Errorf("failed to save day: %w", err)
	}
	return day, nil
}

// Day loads the user's day row, or nil when nothing was logged.
func (s *MealService) Day(userID uuid.UUID, date string) (*models.DayRecord, error) {
	var day models.DayRecord
	err := s.db.Where("user_id = ? AND date = ?", userID, date).First(&day).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load day: %w", err)
	}
	return &day, nil
}

// DaySummary is a day's consumed totals next to the user's targets.
type DaySummary struct {
	Date     string             `json:"date"`
	Totals   nutrition.MacroSet `json:"totals"`
	Goals    nutrition.MacroSet `json:"goals"`
	Percents Percents           `json:"percents"`
}

// Percents is consumption as a share of the daily target, in whole percent.
type Percents struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fat      int `json:"fat"`
}

// Summary joins the day's totals with the user's goals. The two reads are
// independent, so they run concurrently.
func (s *MealService) Summary(userID uuid.UUID, date string) (*DaySummary, error) {
	var (
		wg      sync.WaitGroup
		day     *models.DayRecord
		goals   nutrition.MacroSet
		dayErr  error
		goalErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		day, dayErr = s.Day(userID, date)
	}()
	go func() {
		defer wg.Done()
		goals, goalErr = s.goals.Get(userID)
	}()
	wg.Wait()

	if dayErr != nil {
		return nil, dayErr
	}
	if goalErr != nil {
		return nil, goalErr
	}

	var totals nutrition.MacroSet
	if day != nil {
		totals = day.Totals()
	}

	return &DaySummary{
		Date:   date,
		Totals: totals,
		Goals:  goals,
		Percents: Percents{
			Calories: percentOf(totals.Calories, goals.Calories),
			Protein:  percentOf(totals.Protein, goals.Protein),
			Carbs:    percentOf(totals.Carbs, goals.Carbs),
			Fat:      percentOf(totals.Fat, goals.Fat),
		},
	}, nil
}

func (s *MealService) loadOrCreateDay(userID uuid.UUID, date string) (*models.DayRecord, error) {
	day, err := s.Day(userID, date)
	if err != nil {
		return nil, err
	}
	if day != nil {
		return day, nil
	}

	day = &models.DayRecord{
		UserID:     userID,
		Date:       date,
		Categories: models.CategoryMap{},
	}
	if err := s.db.Create(day).Error; err != nil {
		return nil, fmt.Errorf("failed to create day: %w", err)
	}
	return day, nil
}

func percentOf(value, goal float64) int {
	if goal <= 0 {
		return 0
	}
	return int(value/goal*100 + 0.5)
}
