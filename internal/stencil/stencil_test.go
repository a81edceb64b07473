package stencil_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/lwave/internal/dynamo"
	"github.com/san-kum/lwave/internal/grid"
	"github.com/san-kum/lwave/internal/initial"
	"github.com/san-kum/lwave/internal/stencil"
)

const sentinel = 999.0

func buffers(fields, n int, fill float64) []dynamo.Field {
	out := make([]dynamo.Field, fields)
	for i := range out {
		out[i] = make(dynamo.Field, n)
		for j := range out[i] {
			out[i][j] = fill
		}
	}
	return out
}

func seeded(s stencil.Scheme, g *grid.Grid, sh initial.Shape) [][]dynamo.Field {
	levels := make([][]dynamo.Field, s.Levels()-1)
	for i := range levels {
		levels[i] = buffers(len(s.Fields()), g.N(), 0)
	}
	s.Seed(g, sh, initial.Rightward, levels)
	return levels
}

var _ = Describe("Schemes", func() {
	var (
		g *grid.Grid
		p grid.Params
	)

	BeforeEach(func() {
		var err error
		g, p, err = grid.New(grid.Spec{XMin: 0, XMax: 1, N: 101, Speed: 1, Courant: 0.5})
		Expect(err).NotTo(HaveOccurred())
	})

	schemes := func() []stencil.Scheme {
		return []stencil.Scheme{
			stencil.NewCoupled(p),
			stencil.NewMaxwell(p),
			stencil.NewAdvection(p),
			stencil.NewDispersive(p),
		}
	}

	It("reports field layout and reach", func() {
		for _, s := range schemes() {
			Expect(s.Fields()).NotTo(BeEmpty())
			lo, hi := stencil.Interior(s, 101)
			Expect(lo).To(Equal(s.Reach()))
			Expect(hi).To(Equal(101 - s.Reach()))
			Expect(stencil.MinPoints(s)).To(Equal(2*s.Reach() + 1))
		}
		Expect(stencil.NewDispersive(p).Levels()).To(Equal(3))
		Expect(stencil.NewMaxwell(p).Levels()).To(Equal(2))
	})

	It("writes only interior points of the next level", func() {
		sh := initial.NarrowGaussian{Center: 0.5, Width: 0.01}
		for _, s := range schemes() {
			levels := seeded(s, g, sh)
			curr := levels[len(levels)-1]
			var prev []dynamo.Field
			if s.Levels() == 3 {
				prev = levels[0]
			}
			next := buffers(len(s.Fields()), g.N(), sentinel)
			lo, hi := stencil.Interior(s, g.N())
			s.Update(next, curr, prev, lo, hi)

			for f := range next {
				for i := 0; i < lo; i++ {
					Expect(next[f][i]).To(Equal(sentinel), "%s field %d left edge %d", s.Name(), f, i)
					Expect(next[f][g.N()-1-i]).To(Equal(sentinel), "%s field %d right edge", s.Name(), f)
				}
				for i := lo; i < hi; i++ {
					Expect(next[f][i]).NotTo(Equal(sentinel))
				}
				Expect(next[f][lo:hi].IsFinite()).To(BeTrue())
			}
		}
	})

	It("clamps a requested range to the stencil interior", func() {
		s := stencil.NewDispersive(p)
		levels := seeded(s, g, initial.Gaussian{Center: 0.5, Sigma: 0.1})
		next := buffers(1, g.N(), sentinel)
		s.Update(next, levels[1], levels[0], 0, g.N())
		Expect(next[0][0]).To(Equal(sentinel))
		Expect(next[0][1]).To(Equal(sentinel))
		Expect(next[0][g.N()-2]).To(Equal(sentinel))
	})

	It("keeps a uniform state uniform", func() {
		for _, s := range schemes() {
			curr := buffers(len(s.Fields()), g.N(), 0)
			for i := range curr[0] {
				curr[0][i] = 2.5
			}
			var prev []dynamo.Field
			if s.Levels() == 3 {
				prev = buffers(1, g.N(), 2.5)
			}
			next := buffers(len(s.Fields()), g.N(), 0)
			lo, hi := stencil.Interior(s, g.N())
			s.Update(next, curr, prev, lo, hi)
			for i := lo; i < hi; i++ {
				Expect(next[0][i]).To(BeNumerically("~", 2.5, 1e-12), s.Name())
			}
		}
	})

	It("applies the advection update at a point", func() {
		s := stencil.NewAdvection(p)
		curr := []dynamo.Field{{0, 1, 3, 2, 0}}
		next := buffers(1, 5, 0)
		s.Update(next, curr, nil, 1, 4)

		lam := p.Lambda
		want := 3 - lam/2*(2-1) + lam*lam/2*(2-6+1)
		Expect(next[0][2]).To(BeNumerically("~", want, 1e-14))
	})

	It("applies the dispersive update at a point", func() {
		p := grid.Params{C: 1, H: 1, Dt: 0.3, Lambda: 0.3}
		s := stencil.NewDispersive(p)
		curr := []dynamo.Field{{1, 2, 4, 2, 1}}
		prev := []dynamo.Field{{0, 0, 3, 0, 0}}
		next := buffers(1, 5, 0)
		s.Update(next, curr, prev, 2, 3)

		d2 := 2.0 - 8 + 2
		d4 := 1.0 - 8 + 24 - 8 + 1
		want := 8 - 3 + 0.09*d2 + 0.5*0.0081*d4
		Expect(next[0][2]).To(BeNumerically("~", want, 1e-14))
	})

	It("starts Maxwell with H at rest and splits the pulse symmetrically", func() {
		s := stencil.NewMaxwell(p)
		levels := seeded(s, g, initial.NarrowGaussian{Center: 0.5, Width: 0.01})
		curr := levels[0]
		Expect(curr[1].SumSquares()).To(BeZero())
		Expect(curr[0][50]).To(Equal(1.0))

		next := buffers(2, g.N(), 0)
		s.Update(next, curr, nil, 1, g.N()-1)
		for k := 1; k < 40; k++ {
			Expect(next[1][50+k]).To(BeNumerically("~", -next[1][50-k], 1e-12))
			Expect(next[0][50+k]).To(BeNumerically("~", next[0][50-k], 1e-12))
		}
		Expect(next[1][55]).To(BeNumerically(">", 0))
	})

	It("seeds the coupled fields from the pulse and its derivatives", func() {
		s := stencil.NewCoupled(p)
		sh := initial.NarrowGaussian{Center: 0.5, Width: 0.01}
		lv := seeded(s, g, sh)[0]
		Expect(s.Fields()).To(Equal([]string{"E", "v", "w"}))
		for i, x := range g.X {
			Expect(lv[0][i]).To(Equal(sh.Value(x)))
			Expect(lv[2][i]).To(Equal(sh.Slope(x)))
			Expect(lv[1][i]).To(BeNumerically("~", -p.C*sh.Slope(x), 1e-15))
		}
	})

	It("seeds the dispersive start level with a Taylor step", func() {
		s := stencil.NewDispersive(p)
		sh := initial.Gaussian{Center: 0.3, Sigma: 0.05}
		levels := seeded(s, g, sh)
		Expect(levels).To(HaveLen(2))
		for i, x := range g.X {
			Expect(levels[0][0][i]).To(Equal(sh.Value(x)))
			want := sh.Value(x) - p.Dt*p.C*sh.Slope(x)
			Expect(math.Abs(levels[1][0][i] - want)).To(BeNumerically("<", 1e-15))
		}
	})
})
