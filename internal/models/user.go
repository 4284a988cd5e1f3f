package models

import "time"

// UserProfile is the acting identity for a session. The role is fixed once the
// profile is created.
type UserProfile struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"not null;index" json:"email"`
	Role      Role      `gorm:"not null;index" json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func (u UserProfile) IsAdmin() bool   { return u.Role == RoleAdmin }
func (u UserProfile) IsManager() bool { return u.Role == RoleManager }
