//go:build !gui

package gui

import "github.com/san-kum/territory/internal/engine"

func Run(eng *engine.Engine, opts Options) error {
	return ErrUnavailable
}
