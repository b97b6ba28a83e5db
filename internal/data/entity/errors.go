package entity

import (
	"errors"
	"fmt"

	"identity-service/pkg/utils"
)

// ErrValidation marks a record rejected before it ever reaches storage,
// e.g. a missing required field or a malformed email.
var ErrValidation = errors.New("validation failed")

func validationErr(kind string, fields map[string]string) error {
	return fmt.Errorf("%s %w: %s", kind, ErrValidation, utils.FormatValidationErrors(fields))
}
