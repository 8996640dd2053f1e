package movements

import (
	"encoding/json"
	"fmt"
	"os"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LoadCatalog reads the movement catalog file.
func LoadCatalog(path string) ([]Movement, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read movement catalog %s: %w", path, err)
	}

	var catalog []Movement
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse movement catalog: %w", err)
	}
	return catalog, nil
}

// SeedCatalog inserts catalog entries that are not in the database yet.
// Existing rows win, so manual edits survive restarts.
func SeedCatalog(db *gorm.DB, path string) error {
	catalog, err := LoadCatalog(path)
	if err != nil {
		return err
	}
	if len(catalog) == 0 {
		return nil
	}

	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoNothing: true,
	}).Create(&catalog).Error
}
