package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Activity is one day's workout log. Repeated logs for the same day
// accumulate into the same row.
type Activity struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index:idx_activities_user_date" json:"user_id"`
	Date      time.Time `gorm:"not null;index:idx_activities_user_date" json:"date"`
	Workouts  int       `gorm:"not null;default:0" json:"workouts"`
	Calories  int       `gorm:"not null;default:0" json:"calories"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WeightEntry is one day's body-weight measurement. Re-logging a day
// replaces the stored value.
type WeightEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index:idx_weights_user_date" json:"user_id"`
	Date      time.Time `gorm:"not null;index:idx_weights_user_date" json:"date"`
	Weight    float64   `gorm:"not null" json:"weight"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StepsEntry is a daily step count. One row per user per day.
type StepsEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index:idx_steps_user_date" json:"user_id"`
	Date      time.Time `gorm:"not null;index:idx_steps_user_date" json:"date"`
	Steps     int       `gorm:"not null" json:"steps"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Meal is a single meal inside a day's nutrition log. Stored as part of the
// NutritionEntry JSON column, not as its own table.
type Meal struct {
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
	MealType string  `json:"meal_type"`
}

// NutritionEntry is one day's nutrition totals plus its meal breakdown.
type NutritionEntry struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;index:idx_nutrition_user_date" json:"user_id"`
	Date      time.Time      `gorm:"not null;index:idx_nutrition_user_date" json:"date"`
	Calories  float64        `gorm:"not null;default:0" json:"calories"`
	Protein   float64        `gorm:"not null;default:0" json:"protein"`
	Carbs     float64        `gorm:"not null;default:0" json:"carbs"`
	Fats      float64        `gorm:"not null;default:0" json:"fats"`
	Meals     datatypes.JSON `json:"meals"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// BMIRecord is a saved BMI calculator result.
type BMIRecord struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Value     float64   `gorm:"not null" json:"value"`
	Height    float64   `gorm:"not null" json:"height"`
	Weight    float64   `gorm:"not null" json:"weight"`
	Unit      string    `gorm:"size:16;not null" json:"unit"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CalorieCalc is a saved daily-calorie calculator result.
type CalorieCalc struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	BMR         float64   `gorm:"not null" json:"bmr"`
	Maintenance float64   `gorm:"not null" json:"maintenance"`
	WeightLoss  float64   `gorm:"not null" json:"weight_loss"`
	WeightGain  float64   `gorm:"not null" json:"weight_gain"`
	Age         int       `gorm:"not null" json:"age"`
	Gender      string    `gorm:"size:16;not null" json:"gender"`
	Height      float64   `gorm:"not null" json:"height"`
	Weight      float64   `gorm:"not null" json:"weight"`
	Activity    string    `gorm:"size:64;not null" json:"activity"`
	Unit        string    `gorm:"size:16;not null" json:"unit"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Milestone is a user-defined achievement with its date.
type Milestone struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	Description string    `gorm:"size:500;not null" json:"description"`
	Date        time.Time `gorm:"not null" json:"date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
