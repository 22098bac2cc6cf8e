// Package seed loads reference and demo data into the database.
package seed

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/healthymeal/backend/internal/models"
)

type preferenceFile struct {
	Preferences []string `yaml:"preferences"`
}

// LoadPreferenceNames reads the preference dictionary from a YAML file. Blank and
// duplicate names are dropped; the first spelling wins.
func LoadPreferenceNames(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return ParsePreferenceNames(raw)
}

func ParsePreferenceNames(raw []byte) ([]string, error) {
	var f preferenceFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("failed to parse preferences: %w", err)
	}

	seen := make(map[string]struct{}, len(f.Preferences))
	names := make([]string, 0, len(f.Preferences))
	for _, name := range f.Preferences {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, ok := seen[key]; ok {
			continue
		}
		if len(name) > 100 {
			return nil, fmt.Errorf("preference name too long: %q", name)
		}
		seen[key] = struct{}{}
		names = append(names, name)
	}
	return names, nil
}

// UpsertPreferences inserts the names that are not in the dictionary yet and returns how
// many rows were created.
func UpsertPreferences(db *gorm.DB, names []string) (int64, error) {
	var created int64
	err := db.Transaction(func(tx *gorm.DB) error {
		for _, name := range names {
			result := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "name"}},
				DoNothing: true,
			}).Create(&models.Preference{Name: name})
			if result.Error != nil {
				return fmt.Errorf("failed to insert preference %s: %w", name, result.Error)
			}
			created += result.RowsAffected
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}
