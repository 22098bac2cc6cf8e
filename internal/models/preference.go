package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Preference is an entry of the dietary preference dictionary ("Vegan", "Gluten-Free", ...).
type Preference struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"-"`
}

func (p *Preference) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// UserPreference links a user to a preference.
type UserPreference struct {
	UserID       uuid.UUID  `gorm:"type:uuid;primaryKey" json:"user_id"`
	PreferenceID uuid.UUID  `gorm:"type:uuid;primaryKey" json:"preference_id"`
	Preference   Preference `gorm:"foreignKey:PreferenceID" json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
}

func (UserPreference) TableName() string {
	return "user_preferences"
}
