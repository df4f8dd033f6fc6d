package persistence

import (
	"errors"

	"gorm.io/gorm"
)

// translateDuplicate maps a unique-constraint violation to the given
// domain error. Requires gorm.Config.TranslateError.
func translateDuplicate(err error, conflict error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return conflict
	}
	return err
}

// notFoundAsNil turns gorm.ErrRecordNotFound into a nil error
func notFoundAsNil(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}

// sumRow scans the result of SELECT COALESCE(SUM(amount), 0) AS total
type sumRow struct {
	Total int64
}
