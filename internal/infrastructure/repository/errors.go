package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	domainRepo "github.com/sangkips/quotation-api/internal/domain/repository"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// isUniqueViolation recognises duplicate-key failures from postgres and sqlite.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// translate maps driver errors onto repository sentinels.
func translate(err error) error {
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %v", domainRepo.ErrDuplicateKey, err)
	}
	return err
}
