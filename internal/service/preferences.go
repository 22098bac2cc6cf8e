package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pageza/healthymeal/backend/internal/models"
	"github.com/pageza/healthymeal/backend/internal/types"
	"gorm.io/gorm"
)

// PreferenceService manages the preference dictionary and per-user preference sets.
type PreferenceService struct {
	db *gorm.DB
}

func NewPreferenceService(db *gorm.DB) *PreferenceService {
	return &PreferenceService{db: db}
}

// ListPreferences returns the dictionary ordered by name, optionally filtered by a
// case-insensitive substring.
func (s *PreferenceService) ListPreferences(ctx context.Context, nameFilter string) ([]models.Preference, error) {
	query := s.db.WithContext(ctx).Model(&models.Preference{})
	if nameFilter = strings.TrimSpace(nameFilter); nameFilter != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(nameFilter)+"%")
	}

	var prefs []models.Preference
	if err := query.Order("name ASC").Find(&prefs).Error; err != nil {
		return nil, fmt.Errorf("failed to list preferences: %w", err)
	}
	return prefs, nil
}

func (s *PreferenceService) GetUserPreferences(ctx context.Context, userID uuid.UUID) ([]types.UserPreferenceResponse, error) {
	return s.userPreferences(s.db.WithContext(ctx), userID)
}

func (s *PreferenceService) userPreferences(db *gorm.DB, userID uuid.UUID) ([]types.UserPreferenceResponse, error) {
	var rows []models.UserPreference
	err := db.Preload("Preference").
		Where("user_id = ?", userID).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load user preferences: %w", err)
	}

	out := make([]types.UserPreferenceResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, types.UserPreferenceResponse{
			UserID:       row.UserID,
			PreferenceID: row.PreferenceID,
			Name:         row.Preference.Name,
		})
	}
	return out, nil
}

// ReplaceUserPreferences swaps the user's preference set for preferenceIDs in one
// transaction. Unknown IDs fail with ErrPreferencesNotFound and leave the set unchanged.
func (s *PreferenceService) ReplaceUserPreferences(ctx context.Context, userID uuid.UUID, preferenceIDs []uuid.UUID) ([]types.UserPreferenceResponse, error) {
	ids := uniqueIDs(preferenceIDs)

	var result []types.UserPreferenceResponse
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensurePreferencesExist(tx, ids); err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", userID).Delete(&models.UserPreference{}).Error; err != nil {
			return fmt.Errorf("failed to clear user preferences: %w", err)
		}

		if len(ids) > 0 {
			rows := make([]models.UserPreference, 0, len(ids))
			for _, id := range ids {
				rows = append(rows, models.UserPreference{UserID: userID, PreferenceID: id})
			}
			if err := tx.Omit("Preference").Create(&rows).Error; err != nil {
				return fmt.Errorf("failed to save user preferences: %w", err)
			}
		}

		var err error
		result, err = s.userPreferences(tx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ResolvePreferenceNames maps preference IDs to display names, keeping the order of ids.
// Unknown IDs fail with ErrPreferencesNotFound; query failures wrap ErrPreferenceLookup.
func (s *PreferenceService) ResolvePreferenceNames(ctx context.Context, ids []uuid.UUID) ([]string, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return []string{}, nil
	}

	var prefs []models.Preference
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&prefs).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPreferenceLookup, err)
	}

	byID := make(map[uuid.UUID]string, len(prefs))
	for _, p := range prefs {
		byID[p.ID] = p.Name
	}

	names := make([]string, 0, len(ids))
	for _, id := range ids {
		name, ok := byID[id]
		if !ok {
			return nil, ErrPreferencesNotFound
		}
		names = append(names, name)
	}
	return names, nil
}

func ensurePreferencesExist(tx *gorm.DB, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	var count int64
	if err := tx.Model(&models.Preference{}).Where("id IN ?", ids).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check preferences: %w", err)
	}
	if count != int64(len(ids)) {
		return ErrPreferencesNotFound
	}
	return nil
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
