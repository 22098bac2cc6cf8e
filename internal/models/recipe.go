package models

import (
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

// EmbeddingDimensions is the size of the recipe search vector.
const EmbeddingDimensions = 3

type Recipe struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	Name          string          `gorm:"size:255;not null" json:"name"`
	Ingredients   string          `gorm:"type:text;not null" json:"ingredients"`
	Instructions  string          `gorm:"type:text;not null" json:"instructions"`
	IsAIGenerated bool            `gorm:"not null;default:false" json:"is_ai_generated"`
	Embedding     pgvector.Vector `gorm:"type:vector(3)" json:"-"`
	Preferences   []Preference    `gorm:"many2many:recipe_preferences;" json:"preferences"`
	CreatedAt     time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
