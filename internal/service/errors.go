package service

import (
	"errors"
	"fmt"
)

// ErrPersistence wraps any unexpected storage failure. Handlers report it as
// a generic internal error; the underlying cause stays in the error chain
// for logs only.
var ErrPersistence = errors.New("persistence failure")

func persistence(err error) error {
	return fmt.Errorf("%w: %v", ErrPersistence, err)
}
