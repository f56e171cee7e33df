package repository

import (
	"errors"
	"fmt"

	"bayleaf/shared/constant"
	"bayleaf/shared/failure"

	"github.com/lib/pq"
)

// ConstraintError maps postgres constraint violations onto failures. Other errors are returned as is.
func ConstraintError(entity string, err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	switch string(pqErr.Code) {
	case constant.PqErrorCodeUniqueViolation:
		return failure.Conflict(fmt.Sprintf("%s already exists", entity))
	case constant.PqErrorCodeCheckViolation:
		return failure.BadRequestFromString(fmt.Sprintf("%s violates constraint %s", entity, pqErr.Constraint))
	}

	return err
}
