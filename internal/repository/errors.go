package repository

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
)

var (
	// ErrNotFound is returned when a query matches no rows, including
	// conditional updates/deletes whose ownership filter excluded the row.
	ErrNotFound = errors.New("repository: record not found")

	// ErrDuplicate is returned on unique constraint violations.
	ErrDuplicate = errors.New("repository: duplicate key")
)

// isDuplicate recognizes unique-key violations for the drivers we run
// against: MySQL error 1062 in production, sqlite in tests (the sqlite
// driver only exposes the message text).
func isDuplicate(err error) bool {
	if err == nil {
		return false
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1062 // ER_DUP_ENTRY
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
