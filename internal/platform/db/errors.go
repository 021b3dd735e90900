package db

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// pgUniqueViolation はPostgresのunique_violationエラーコードです。
const pgUniqueViolation = "23505"

// IsUniqueViolation はerrが一意制約違反かどうかを判定します。
// TranslateError有効時のgorm.ErrDuplicatedKeyと、変換されずに届いたpgconn.PgErrorの両方を扱います。
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
