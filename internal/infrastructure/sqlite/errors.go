package sqlite

import (
	"errors"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// isConstraint reports whether err is the given extended constraint code.
// Builds without extended result codes only report SQLITE_CONSTRAINT, so the
// message keyword is checked as a fallback.
func isConstraint(err error, extended int, keyword string) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	if se.Code() == extended {
		return true
	}
	return se.Code()&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(se.Error(), keyword)
}

func isUniqueViolation(err error) bool {
	return isConstraint(err, sqlite3.SQLITE_CONSTRAINT_UNIQUE, "UNIQUE")
}

func isForeignKeyViolation(err error) bool {
	return isConstraint(err, sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY, "FOREIGN KEY")
}

func isCheckViolation(err error) bool {
	return isConstraint(err, sqlite3.SQLITE_CONSTRAINT_CHECK, "CHECK")
}
