//go:build !gui

package gui

import (
	"errors"
	"testing"
)

func TestRunWithoutTag(t *testing.T) {
	if err := Run(nil, Options{}); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Run = %v, want ErrUnavailable", err)
	}
}
