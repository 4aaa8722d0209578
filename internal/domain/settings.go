package domain

import "time"

const (
	ThemeLight = "light"
	ThemeDark  = "dark"

	DefaultTheme    = ThemeLight
	DefaultLanguage = "en"
)

// Settings holds per-user UI preferences. One row per user.
type Settings struct {
	ID            uint      `gorm:"primaryKey" json:"-"`
	UserID        uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	Theme         string    `gorm:"size:16;not null;default:light" json:"theme"`
	Notifications bool      `gorm:"not null;default:true" json:"notifications"`
	Language      string    `gorm:"size:16;not null;default:en" json:"language"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// DefaultSettings are returned when a user has never saved preferences.
func DefaultSettings(userID uint) Settings {
	return Settings{UserID: userID, Theme: DefaultTheme, Notifications: true, Language: DefaultLanguage}
}
