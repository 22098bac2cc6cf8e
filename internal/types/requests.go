package types

import (
	"time"

	"github.com/google/uuid"
)

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse is the public view of a user.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// UpdateUserPreferencesRequest replaces the caller's preference set.
type UpdateUserPreferencesRequest struct {
	Preferences []uuid.UUID `json:"preferences" binding:"required,min=1,dive,required"`
}

// UserPreferenceResponse is one entry of the caller's preference set.
type UserPreferenceResponse struct {
	UserID       uuid.UUID `json:"user_id"`
	PreferenceID uuid.UUID `json:"preference_id"`
	Name         string    `json:"name"`
}

// CreateRecipeRequest represents the request body for creating a recipe
type CreateRecipeRequest struct {
	Name          string      `json:"name" binding:"required,min=1,max=255"`
	Ingredients   string      `json:"ingredients" binding:"required"`
	Instructions  string      `json:"instructions" binding:"required"`
	IsAIGenerated bool        `json:"is_ai_generated"`
	PreferenceIDs []uuid.UUID `json:"preference_ids"`
	DraftID       string      `json:"draft_id"`
}

// GenerateRecipeRequest is the body of POST /recipes/generate.
type GenerateRecipeRequest struct {
	Description string      `json:"description" binding:"required,min=1,max=500"`
	Preferences []uuid.UUID `json:"preferences"`
}

// ListRecipesQuery holds the query parameters of GET /recipes.
type ListRecipesQuery struct {
	Page        int     `form:"page,default=1" binding:"min=1"`
	Limit       int     `form:"limit,default=20" binding:"min=1,max=100"`
	Sort        string  `form:"sort,default=created_at desc" binding:"oneof='created_at' 'created_at desc' 'name' 'name desc'"`
	AIGenerated *bool   `form:"ai_generated"`
	Preference  *string `form:"preference" binding:"omitempty,uuid"`
	Query       string  `form:"q" binding:"max=200"`
}

// PageMeta describes a page of a list response.
type PageMeta struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}
