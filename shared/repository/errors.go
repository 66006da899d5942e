package repository

import (
	"errors"
	"strings"

	"lodge/shared/constant"

	"github.com/lib/pq"
)

// IsUniqueViolation reports whether err is a postgres unique violation, optionally on a named constraint.
func IsUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || string(pqErr.Code) != constant.PqErrorCodeUniqueViolation {
		return false
	}

	return constraint == constant.Empty || strings.Contains(pqErr.Constraint, constraint)
}
