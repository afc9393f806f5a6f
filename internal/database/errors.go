package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mfenderov/docscan/pkg/models"
)

// notFound maps sql.ErrNoRows to models.ErrNotFound and wraps anything else.
func notFound(err error, op string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return models.ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
