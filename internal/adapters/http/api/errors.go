package api

import (
	"errors"
	"fmt"
)

// Sentinel kinds for API errors.
var (
	ErrServe      = errors.New("status api serve failed")
	ErrBadRequest = errors.New("bad request")
)

func opError(op string, kind error, detail string) error {
	if detail == "" {
		return fmt.Errorf("%s: %w", op, kind)
	}
	return fmt.Errorf("%s: %w: %s", op, kind, detail)
}
