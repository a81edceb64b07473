package sim_test

import (
	"bytes"
	"log/slog"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/lwave/internal/boundary"
	"github.com/san-kum/lwave/internal/dynamo"
	"github.com/san-kum/lwave/internal/grid"
	"github.com/san-kum/lwave/internal/initial"
	"github.com/san-kum/lwave/internal/sim"
	"github.com/san-kum/lwave/internal/stencil"
)

type counter struct{ frames []int }

func (c *counter) OnFrame(fr dynamo.Frame) { c.frames = append(c.frames, fr.Step) }

type peak struct{ max float64 }

func (p *peak) Name() string { return "peak" }
func (p *peak) Observe(fr dynamo.Frame) {
	for _, v := range fr.Fields[0] {
		p.max = math.Max(p.max, math.Abs(v))
	}
}
func (p *peak) Value() float64 { return p.max }
func (p *peak) Reset()         { p.max = 0 }

func build(spec grid.Spec, mk func(grid.Params) stencil.Scheme, sh initial.Shape, opts ...sim.Option) *sim.Simulator {
	g, p, err := grid.New(spec)
	Expect(err).NotTo(HaveOccurred())
	return sim.New(mk(p), g, p, sh, opts...)
}

func maxwell(p grid.Params) stencil.Scheme    { return stencil.NewMaxwell(p) }
func coupled(p grid.Params) stencil.Scheme    { return stencil.NewCoupled(p) }
func advection(p grid.Params) stencil.Scheme  { return stencil.NewAdvection(p) }
func dispersive(p grid.Params) stencil.Scheme { return stencil.NewDispersive(p) }

var pulse = initial.NarrowGaussian{Center: 0.5, Width: 0.01}

var dispersiveSpec = grid.Spec{XMin: -100, XMax: 100, N: 201, Speed: 1, Courant: 0.3}

var _ = Describe("Simulator", func() {
	It("records steps+1 frames with times n*dt", func() {
		s := build(grid.Spec{XMin: 0, XMax: 1, N: 50, Speed: 1, Courant: 0.5}, advection, pulse)
		res, err := s.Run(sim.Config{Steps: 40, Boundary: dynamo.Periodic})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Frames).To(HaveLen(41))
		for n, fr := range res.Frames {
			Expect(fr.Step).To(Equal(n))
			Expect(fr.Time).To(Equal(float64(n) * res.Params.Dt))
		}
		Expect(res.Scheme).To(Equal("advection"))
		Expect(res.FieldNames).To(Equal([]string{"E"}))
	})

	It("keeps step 0 equal to the sampled profile", func() {
		s := build(dispersiveSpec, dispersive, initial.Gaussian{Center: -50, Sigma: 10})
		res, err := s.Run(sim.Config{Steps: 5, Boundary: dynamo.Fixed})
		Expect(err).NotTo(HaveOccurred())

		u0 := res.Frames[0].Fields[0]
		Expect(u0[50]).To(Equal(1.0))
		Expect(u0[0]).To(Equal(math.Exp(-12.5)))
		Expect(u0[200]).To(Equal(math.Exp(-12.5)))
	})

	It("returns only step 0 when no steps are requested", func() {
		for _, mk := range []func(grid.Params) stencil.Scheme{maxwell, dispersive} {
			s := build(dispersiveSpec, mk, initial.Gaussian{Center: 0, Sigma: 10})
			res, err := s.Run(sim.Config{Steps: 0})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Frames).To(HaveLen(1))
		}
	})

	It("holds fixed edges at zero after every computed step", func() {
		for _, mk := range []func(grid.Params) stencil.Scheme{coupled, maxwell, advection, dispersive} {
			s := build(dispersiveSpec, mk, initial.Gaussian{Center: 80, Sigma: 10})
			res, err := s.Run(sim.Config{Steps: 60, Boundary: dynamo.Fixed})
			Expect(err).NotTo(HaveOccurred())
			w := s.Scheme().Reach()
			for _, fr := range res.Frames[1:] {
				for _, f := range fr.Fields {
					for k := 0; k < w; k++ {
						Expect(f[k]).To(BeZero())
						Expect(f[len(f)-1-k]).To(BeZero())
					}
				}
			}
		}
	})

	It("satisfies the wrap relation after every computed step", func() {
		for _, mk := range []func(grid.Params) stencil.Scheme{coupled, maxwell, advection, dispersive} {
			s := build(dispersiveSpec, mk, initial.Gaussian{Center: 90, Sigma: 5})
			res, err := s.Run(sim.Config{Steps: 60, Boundary: dynamo.Periodic})
			Expect(err).NotTo(HaveOccurred())
			wrap := boundary.Periodic{Width: s.Scheme().Reach()}
			for _, fr := range res.Frames[1:] {
				for _, f := range fr.Fields {
					n := len(f)
					for i := 0; i < n; i++ {
						if src := wrap.Source(i, n); src >= 0 {
							Expect(f[i]).To(Equal(f[src]))
						}
					}
				}
			}
		}
	})

	It("keeps the Maxwell energy bounded over a long periodic run", func() {
		s := build(grid.Spec{XMin: 0, XMax: 1, N: 200, Spacing: grid.Exclusive, Speed: 1, Courant: 0.5}, maxwell, pulse)
		res, err := s.Run(sim.Config{Steps: 1000, Boundary: dynamo.Periodic})
		Expect(err).NotTo(HaveOccurred())

		// ghost points duplicate interior points, so sum over the unique ones
		energy := func(fr dynamo.Frame) float64 {
			e := 0.0
			for _, f := range fr.Fields {
				e += f[1 : len(f)-1].SumSquares()
			}
			return e
		}
		e0 := energy(res.Frames[0])
		for n := 1; n < len(res.Frames); n++ {
			Expect(res.Frames[n].Fields[0].IsFinite()).To(BeTrue())
			Expect(energy(res.Frames[n])).To(BeNumerically("<=", energy(res.Frames[n-1])+1e-9))
		}
		Expect(energy(res.Frames[1000])).To(BeNumerically("<", e0))
		Expect(energy(res.Frames[1000])).To(BeNumerically(">", 0.9*e0))
	})

	It("is deterministic", func() {
		run := func() *sim.Result {
			s := build(grid.Spec{XMin: 0, XMax: 1, N: 80, Speed: 1, Courant: 0.9}, coupled, pulse)
			res, err := s.Run(sim.Config{Steps: 100, Boundary: dynamo.Periodic})
			Expect(err).NotTo(HaveOccurred())
			return res
		}
		a, b := run(), run()
		Expect(a.Frames).To(Equal(b.Frames))
	})

	It("seeds step 1 of the dispersive scheme with the Taylor start", func() {
		sh := initial.Gaussian{Center: -50, Sigma: 10}
		s := build(dispersiveSpec, dispersive, sh)
		res, err := s.Run(sim.Config{Steps: 3, Boundary: dynamo.Periodic})
		Expect(err).NotTo(HaveOccurred())
		p := s.Params()
		u1 := res.Frames[1].Fields[0]
		for i := 2; i < len(u1)-2; i++ {
			x := s.Grid().X[i]
			Expect(u1[i]).To(BeNumerically("~", sh.Value(x)-p.Dt*sh.Slope(x), 1e-14))
		}
		Expect(res.Frames[1].Time).To(BeNumerically("~", 0.3, 1e-15))
	})

	It("warns but still runs when lambda >= 1", func() {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		s := build(grid.Spec{XMin: 0, XMax: 1, N: 20, Speed: 1, Courant: 1.2}, advection, pulse, sim.WithLogger(logger))
		res, err := s.Run(sim.Config{Steps: 2, Boundary: dynamo.Periodic})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Warnings).To(HaveLen(1))
		Expect(res.Warnings[0]).To(ContainSubstring(">= 1"))
		Expect(buf.String()).To(ContainSubstring("unstable courant ratio"))
		Expect(res.Frames).To(HaveLen(3))
	})

	It("rejects grids the stencil cannot fit", func() {
		s := build(grid.Spec{XMin: 0, XMax: 1, N: 5, Speed: 1, Courant: 0.5}, dispersive, pulse)
		_, err := s.Run(sim.Config{Steps: 1, Boundary: dynamo.Periodic})
		Expect(err).To(MatchError(dynamo.ErrGridTooSmall))

		_, err = s.Run(sim.Config{Steps: 1, Boundary: dynamo.Fixed})
		Expect(err).NotTo(HaveOccurred())
	})

	It("rejects negative step counts and unknown boundaries", func() {
		s := build(grid.Spec{XMin: 0, XMax: 1, N: 20, Speed: 1, Courant: 0.5}, maxwell, pulse)
		_, err := s.Run(sim.Config{Steps: -1})
		Expect(err).To(MatchError(dynamo.ErrInvalidConfig))

		_, err = s.Run(sim.Config{Steps: 1, Boundary: dynamo.BoundaryMode(9)})
		Expect(err).To(MatchError(dynamo.ErrUnknownBoundary))
	})

	It("notifies observers and metrics for every frame", func() {
		obs := &counter{}
		m := &peak{}
		s := build(grid.Spec{XMin: 0, XMax: 1, N: 41, Speed: 1, Courant: 0.5}, maxwell, pulse)
		s.AddObserver(obs)
		s.AddMetric(m)
		res, err := s.Run(sim.Config{Steps: 10, Boundary: dynamo.Fixed})
		Expect(err).NotTo(HaveOccurred())
		Expect(obs.frames).To(Equal([]int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}))
		Expect(res.Metrics).To(HaveKeyWithValue("peak", BeNumerically("~", 1.0, 1e-9)))
	})

	It("steps incrementally through Start", func() {
		s := build(grid.Spec{XMin: 0, XMax: 1, N: 40, Speed: 1, Courant: 0.5}, advection, pulse)
		run, err := s.Start(sim.Config{Steps: 3, Boundary: dynamo.Periodic})
		Expect(err).NotTo(HaveOccurred())
		Expect(run.StepIndex()).To(Equal(0))
		Expect(run.Step()).To(BeTrue())
		Expect(run.Latest().Step).To(Equal(1))
		Expect(run.Step()).To(BeTrue())
		Expect(run.Step()).To(BeTrue())
		Expect(run.Step()).To(BeFalse())
		Expect(run.Done()).To(BeTrue())
		Expect(run.Result().Frames).To(HaveLen(4))
	})

	It("looks up fields by name", func() {
		s := build(grid.Spec{XMin: 0, XMax: 1, N: 40, Speed: 1, Courant: 0.5}, maxwell, pulse)
		res, err := s.Run(sim.Config{Steps: 1})
		Expect(err).NotTo(HaveOccurred())
		h, ok := res.Field(0, "H")
		Expect(ok).To(BeTrue())
		Expect(h.SumSquares()).To(BeZero())
		_, ok = res.Field(0, "B")
		Expect(ok).To(BeFalse())
	})
})

var _ = Describe("Ring", func() {
	It("rotates three levels without aliasing", func() {
		r := sim.NewRing(3, 1, 4)
		prev, curr, next := r.Prev(), r.Curr(), r.Next()
		Expect(&prev[0][0]).NotTo(BeIdenticalTo(&curr[0][0]))
		Expect(&next[0][0]).NotTo(BeIdenticalTo(&curr[0][0]))
		Expect(&next[0][0]).NotTo(BeIdenticalTo(&prev[0][0]))

		r.Rotate()
		Expect(&r.Curr()[0][0]).To(BeIdenticalTo(&next[0][0]))
		Expect(&r.Prev()[0][0]).To(BeIdenticalTo(&curr[0][0]))
		Expect(&r.Next()[0][0]).To(BeIdenticalTo(&prev[0][0]))
	})

	It("has no previous level with two buffers", func() {
		r := sim.NewRing(2, 2, 4)
		Expect(r.Prev()).To(BeNil())
		Expect(r.Seeds()).To(HaveLen(1))
		curr, next := r.Curr(), r.Next()
		r.Rotate()
		Expect(&r.Curr()[0][0]).To(BeIdenticalTo(&next[0][0]))
		Expect(&r.Next()[0][0]).To(BeIdenticalTo(&curr[0][0]))
	})
})
