package engine

import "errors"

var (
	// ErrMatchOver is returned by RunFrame once fulltime has been reached.
	ErrMatchOver = errors.New("match is over")
	// ErrInvalidConfig is returned by New for unusable settings.
	ErrInvalidConfig = errors.New("invalid engine config")
)
