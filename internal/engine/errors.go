package engine

import (
	"errors"
	"fmt"
)

// Configuration errors returned by New.
var (
	// ErrInvalidDimensions indicates a non-positive width or height.
	ErrInvalidDimensions = errors.New("engine: invalid grid dimensions")

	// ErrInvalidSpecies indicates a non-positive species count.
	ErrInvalidSpecies = errors.New("engine: species count must be positive")

	// ErrInvalidStrength indicates a negative or non-finite mutation strength.
	ErrInvalidStrength = errors.New("engine: invalid mutation strength")

	// ErrSeedMismatch indicates a seed array whose length is not width*height.
	ErrSeedMismatch = errors.New("engine: seed length does not match grid size")

	// ErrSeedSpecies indicates a seed cell with an out-of-range species.
	ErrSeedSpecies = errors.New("engine: seed species out of range")

	// ErrSeedColor indicates a seed cell without a colour or in the wrong space.
	ErrSeedColor = errors.New("engine: seed colour missing or in wrong colour space")

	// ErrIncompatibleStrategy indicates a strategy that cannot run on the
	// configured colour space.
	ErrIncompatibleStrategy = errors.New("engine: strategy incompatible with colour space")

	// ErrUnknownColorSpace indicates a colour space outside the supported set.
	ErrUnknownColorSpace = errors.New("engine: unknown colour space")

	// ErrUnknownStrategy indicates a strategy outside the supported set.
	ErrUnknownStrategy = errors.New("engine: unknown mutation strategy")
)

// ConfigError wraps a configuration error with the offending field.
type ConfigError struct {
	Field string
	Value any
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%v (%s = %v)", e.Err, e.Field, e.Value)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
