package domain

import "time"

// User is a (possibly not-yet-verified) account. While Verified is false the
// record is provisional: it only holds an in-progress registration attempt
// and may be superseded or deleted. OTPCode and OTPExpiresAt are either both
// set or both nil.
type User struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	Email           string     `gorm:"size:255;not null;index:idx_users_email" json:"email"`
	Name            string     `gorm:"size:255;not null" json:"name"`
	PasswordHash    string     `gorm:"size:1024;not null" json:"-"`
	ProfileImageKey string     `gorm:"size:1024" json:"-"`
	Verified        bool       `gorm:"not null;default:false" json:"verified"`
	OTPCode         *string    `gorm:"size:16" json:"-"`
	OTPExpiresAt    *time.Time `json:"-"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// PublicUser is the identity view returned to clients. It never carries the
// password hash or OTP state.
type PublicUser struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, Email: u.Email}
}

// SetOTP stores a fresh one-time code with its expiry.
func (u *User) SetOTP(code string, expiresAt time.Time) {
	u.OTPCode = &code
	u.OTPExpiresAt = &expiresAt
}

// ClearOTP removes the stored one-time code. Codes are single use.
func (u *User) ClearOTP() {
	u.OTPCode = nil
	u.OTPExpiresAt = nil
}
