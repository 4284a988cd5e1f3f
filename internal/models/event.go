package models

import "time"

type Event struct {
	ID              string    `gorm:"uniqueIndex;not null" json:"id"`
	Seq             int64     `gorm:"primaryKey;autoIncrement" json:"-"`
	OrganizerID     string    `gorm:"not null;index" json:"organizer_id"`
	Title           string    `gorm:"not null" json:"title"`
	Category        Category  `gorm:"not null" json:"category"`
	Date            string    `gorm:"not null" json:"date"`
	Price           float64   `gorm:"not null" json:"price"`
	Location        string    `gorm:"not null" json:"location"`
	Image           string    `gorm:"not null" json:"image"`
	Description     string    `gorm:"not null" json:"description"`
	LongDescription string    `json:"long_description"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// EventDraft carries the caller-supplied fields for creating or replacing an
// event. Price is a pointer so a missing price can be told apart from zero.
type EventDraft struct {
	OrganizerID     string   `json:"organizer_id"`
	Title           string   `json:"title" validate:"required"`
	Category        Category `json:"category"`
	Date            string   `json:"date" validate:"required"`
	Price           *float64 `json:"price" validate:"required,gte=0"`
	Location        string   `json:"location" validate:"required"`
	Image           string   `json:"image" validate:"required,uri"`
	Description     string   `json:"description" validate:"required"`
	LongDescription string   `json:"long_description"`
}
