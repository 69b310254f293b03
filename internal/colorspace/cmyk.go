package colorspace

import "math"

// CMYK holds subtractive channels in [0, 1].
type CMYK struct {
	C, M, Y, K float64
}

func (c *CMYK) Kind() Kind { return KindCMYK }

// Mutate jitters every channel on a 1/255 scale.
func (c *CMYK) Mutate(strength float64, j Jitterer) {
	c.C = clamp(c.C+j.Jitter(strength)/255, 0, 1)
	c.M = clamp(c.M+j.Jitter(strength)/255, 0, 1)
	c.Y = clamp(c.Y+j.Jitter(strength)/255, 0, 1)
	c.K = clamp(c.K+j.Jitter(strength)/255, 0, 1)
}

func (c *CMYK) Diff(other Color) (float64, error) {
	o, ok := other.(*CMYK)
	if !ok {
		return 0, ErrKindMismatch
	}
	sum := math.Abs(c.C-o.C) + math.Abs(c.M-o.M) + math.Abs(c.Y-o.Y) + math.Abs(c.K-o.K)
	return 255 * sum, nil
}

func (c *CMYK) ToDisplay() Display {
	return Display{
		R: toByte(255 * (1 - c.C) * (1 - c.K)),
		G: toByte(255 * (1 - c.M) * (1 - c.K)),
		B: toByte(255 * (1 - c.Y) * (1 - c.K)),
	}
}

func (c *CMYK) Copy() Color {
	cp := *c
	return &cp
}

func (*CMYK) sealed() {}
