package boxscope

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ForBox returns a GORM scope that filters by box_id. Every box-scoped
// collection carries a box_id column.
func ForBox(boxID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("box_id = ?", boxID)
	}
}
