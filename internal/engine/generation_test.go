package engine_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/territory/internal/colorspace"
	"github.com/san-kum/territory/internal/engine"
	"github.com/san-kum/territory/internal/grid"
	"github.com/san-kum/territory/internal/mutation"
)

var (
	colorA = &colorspace.RGB{R: 220, G: 30, B: 30}
	colorB = &colorspace.RGB{R: 30, G: 30, B: 220}
)

func build(strategy mutation.Kind, rows ...string) *engine.Engine {
	var cells []engine.SeedCell
	for _, row := range rows {
		for _, ch := range row {
			if ch == 'A' {
				cells = append(cells, engine.SeedCell{Species: 0, Color: colorA})
			} else {
				cells = append(cells, engine.SeedCell{Species: 1, Color: colorB})
			}
		}
	}
	e, err := engine.New(engine.Config{
		Width:      len(rows[0]),
		Height:     len(rows),
		NumSpecies: 2,
		Strategy:   strategy,
		ColorSpace: colorspace.KindRGB,
		Seed:       3,
		SeedCells:  cells,
	})
	Expect(err).NotTo(HaveOccurred())
	return e
}

var _ = Describe("Generation protocol", func() {
	Context("on a homogeneous grid", func() {
		It("empties the active set and completes in one generation", func() {
			e := build(mutation.KindSpiral, "AAAAA", "AAAAA", "AAAAA", "AAAAA")
			Expect(e.ActiveCount()).To(Equal(20))

			r := e.Advance()
			Expect(r.Changed).To(Equal(0))
			Expect(r.Complete).To(BeTrue())
			Expect(e.ActiveCount()).To(BeZero())
			Expect(e.IsComplete()).To(BeTrue())
		})
	})

	Context("with a lone cell of another species", func() {
		rows := []string{"AAAAA", "AAAAA", "AABAA", "AAAAA", "AAAAA"}

		It("converts it and gives it the ambient colour under Uniform", func() {
			e := build(mutation.KindUniform, rows...)
			ambient := e.Ambient()

			r := e.Advance()
			Expect(r.Changed).To(Equal(1))
			Expect(e.SpeciesAt(2, 2)).To(Equal(grid.Species(0)))
			Expect(e.ColorAt(2, 2)).To(Equal(ambient))
		})

		DescribeTable("copies the surrounding colour when strength is zero",
			func(kind mutation.Kind) {
				e := build(kind, rows...)
				e.Advance()
				Expect(e.SpeciesAt(2, 2)).To(Equal(grid.Species(0)))
				Expect(e.ColorAt(2, 2)).To(Equal(colorA.ToDisplay()))
			},
			Entry("spiral", mutation.KindSpiral),
			Entry("preservation", mutation.KindPreservation),
			Entry("mirror", mutation.KindMirror),
		)

		It("keeps the ring awake and sleeps the rest", func() {
			e := build(mutation.KindSpiral, rows...)
			r := e.Advance()
			Expect(r.Slept).To(Equal(16))
			Expect(r.Active).To(Equal(9))
			Expect(r.Complete).To(BeFalse())

			r = e.Advance()
			Expect(r.Changed).To(BeZero())
			Expect(r.Active).To(BeZero())
			Expect(r.Complete).To(BeTrue())
		})
	})

	Context("with two horizontal bands", func() {
		It("sleeps interior rows and leaves boundary rows active", func() {
			e := build(mutation.KindSpiral,
				"AAAA",
				"AAAA",
				"AAAA",
				"AAAA",
				"BBBB",
				"BBBB",
				"BBBB",
				"BBBB",
			)
			r := e.Advance()

			// Boundary rows see five of their own and three of the other band.
			Expect(r.Changed).To(BeZero())
			Expect(r.Complete).To(BeTrue())
			for x := 0; x < 4; x++ {
				for _, y := range []int{1, 2, 5, 6} {
					Expect(e.IsActive(x, y)).To(BeFalse(), "interior (%d,%d)", x, y)
				}
				for _, y := range []int{0, 3, 4, 7} {
					Expect(e.IsActive(x, y)).To(BeTrue(), "boundary (%d,%d)", x, y)
				}
			}
		})

		It("leaves a 4x4 two-band torus unchanged", func() {
			e := build(mutation.KindSpiral, "AAAA", "AAAA", "BBBB", "BBBB")
			r := e.Advance()
			Expect(r.Changed).To(BeZero())
			Expect(r.Active).To(Equal(16))
			Expect(e.SpeciesAt(0, 0)).To(Equal(grid.Species(0)))
			Expect(e.SpeciesAt(0, 3)).To(Equal(grid.Species(1)))
		})
	})

	Context("once complete", func() {
		It("does not mutate cells on further calls", func() {
			e := build(mutation.KindPreservation, "AAA", "AAA", "AAA")
			e.Advance()
			before := e.ColorAt(1, 1)

			r := e.Advance()
			Expect(r.Changed).To(BeZero())
			Expect(r.Complete).To(BeTrue())
			Expect(e.ColorAt(1, 1)).To(Equal(before))
		})
	})
})
