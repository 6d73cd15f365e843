package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/runmacros/backend/internal/nutrition"
)

// DayRecord is one user day of logged food. Entries live in the Categories
// JSONB column; the Meals column and the root sum columns carry the two older
// layouts, kept readable so rows written by previous app versions still
// resolve to correct totals. The root sums are also rewritten on every entry
// change so external consumers can read a day without summing JSONB.
type DayRecord struct {
	ID        uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:varchar(36);not null;uniqueIndex:idx_day_user_date" json:"user_id"`
	Date      string         `gorm:"size:10;not null;uniqueIndex:idx_day_user_date" json:"date"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Categories CategoryMap `gorm:"type:jsonb" json:"categories"`
	Meals      EntryList   `gorm:"type:jsonb" json:"meals,omitempty"`

	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

func (d *DayRecord) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// Record converts the row into the shape-resolving day record. The root sum
// columns ride along as the legacy shape; precedence in Totals decides
// whether they count.
func (d *DayRecord) Record() nutrition.DayRecord {
	legacy := nutrition.MacroSet{
		Calories: d.Calories,
		Protein:  d.Protein,
		Carbs:    d.Carbs,
		Fat:      d.Fat,
	}
	return nutrition.DayRecord{
		Categories: d.Categories,
		Meals:      d.Meals,
		Legacy:     &legacy,
	}
}

// Totals resolves the row's effective macro sums across all three layouts.
func (d *DayRecord) Totals() nutrition.MacroSet {
	return d.Record().Totals()
}

// SyncSums recomputes the root sum columns from the entry layouts.
func (d *DayRecord) SyncSums() {
	totals := nutrition.DayRecord{Categories: d.Categories, Meals: d.Meals}.Totals()
	d.Calories = totals.Calories
	d.Protein = totals.Protein
	d.Carbs = totals.Carbs
	d.Fat = totals.Fat
}
