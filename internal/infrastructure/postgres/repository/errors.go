package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// isDuplicate recognizes uniqueness violations across the postgres driver
// (translated by gorm) and the sqlite driver used in tests.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}
