package repositories

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrDuplicateKey marks a unique-constraint violation surfaced by the store.
var ErrDuplicateKey = errors.New("duplicate key")

// IsNotFoundError reports whether err represents a missing record.
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicateKeyError reports whether err represents a unique-constraint
// violation. gorm surfaces ErrDuplicatedKey for the postgres driver; the
// string check covers drivers that only wrap the server message.
func IsDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrDuplicateKey) || errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "duplicate key value")
}
