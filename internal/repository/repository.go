package repository

import (
	"errors"
	"fmt"

	"github.com/MaxKochergin/NNGP-sub002/internal/common"
	"gorm.io/gorm"
)

// wrapNotFound turns gorm.ErrRecordNotFound into common.ErrNotFound so callers can map it to 404.
func wrapNotFound(err error, entity string, key any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %v: %w", entity, key, common.ErrNotFound)
	}
	return err
}
