package mutation

import "github.com/san-kum/territory/internal/colorspace"

// Ambient is the single slowly drifting colour the Uniform strategy hands
// out. It is owned by one engine and advanced once per generation.
type Ambient struct {
	color colorspace.Color
}

// NewAmbient starts the drift from a private copy of c.
func NewAmbient(c colorspace.Color) *Ambient {
	return &Ambient{color: c.Copy()}
}

// Current returns the live colour. Callers must not mutate it.
func (a *Ambient) Current() colorspace.Color { return a.color }

// Display converts the current colour for presentation.
func (a *Ambient) Display() colorspace.Display { return a.color.ToDisplay() }

// Advance applies one bounded random jitter.
func (a *Ambient) Advance(strength float64, j colorspace.Jitterer) {
	a.color.Mutate(strength, j)
}
