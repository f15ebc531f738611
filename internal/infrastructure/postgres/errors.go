package postgres

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/oksasatya/fittrack-api/pkg/apperr"
)

const uniqueViolation = "23505"

// translate maps driver errors onto the apperr taxonomy.
func translate(err error, op, entity string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(entity + " not found")
	}
	if isUniqueViolation(err) {
		return apperr.Conflict(entity + " already exists")
	}
	return apperr.Internal(fmt.Errorf("%s: %w", op, err))
}

// validID guards uuid columns so malformed ids read as missing rows, not driver errors.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
