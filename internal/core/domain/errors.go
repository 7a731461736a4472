package domain

import (
	"errors"
	"fmt"
)

var (
	ErrSourceUnreachable = errors.New("source unreachable")
	ErrSourceShape       = errors.New("source payload malformed")
	ErrInvalidInput      = errors.New("invalid input")
	ErrNoData            = errors.New("no data")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}
