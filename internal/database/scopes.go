package database

import (
	"gorm.io/gorm"
)

// Paginate applies page-numbered pagination to a GORM query. A page or page
// size below 1 leaves the query untouched.
func Paginate(page, pageSize int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page < 1 || pageSize < 1 {
			return db
		}
		return db.Offset((page - 1) * pageSize).Limit(pageSize)
	}
}
