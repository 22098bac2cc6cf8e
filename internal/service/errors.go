package service

import "errors"

var (
	ErrEmailTaken          = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidToken        = errors.New("invalid token")
	ErrTokenRevoked        = errors.New("token has been revoked")
	ErrRecipeNotFound      = errors.New("recipe not found")
	ErrPreferencesNotFound = errors.New("One or more preferences do not exist")
	ErrPreferenceLookup    = errors.New("failed to resolve preferences")
	ErrDraftNotFound       = errors.New("draft not found")
	ErrNothingToExport     = errors.New("no recipes to export")
)
