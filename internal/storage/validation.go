package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Validation errors.
var (
	ErrNilContext    = errors.New("context cannot be nil")
	ErrEmptyString   = errors.New("string parameter cannot be empty")
	ErrInvalidSeed   = errors.New("invalid seed snapshot")
	ErrForbiddenChar = errors.New("key contains a forbidden character")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateKey applies the same key rules as the hosted database so the
// emulator rejects what production would.
func validateKey(ctx context.Context, key string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(key, "code"); err != nil {
		return err
	}
	if strings.ContainsAny(key, ".$#[]/") {
		return fmt.Errorf("%w: %q", ErrForbiddenChar, key)
	}
	return nil
}
