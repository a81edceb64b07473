package boundary_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/lwave/internal/boundary"
	"github.com/san-kum/lwave/internal/dynamo"
)

func ramp(n int) dynamo.Field {
	f := make(dynamo.Field, n)
	for i := range f {
		f[i] = float64(i)
	}
	return f
}

var _ = Describe("Enforcers", func() {
	Describe("For", func() {
		It("selects the enforcer by mode", func() {
			e, err := boundary.For(dynamo.Fixed, 2, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(e.Mode()).To(Equal(dynamo.Fixed))
			Expect(e).To(Equal(boundary.Fixed{Width: 2}))

			e, err = boundary.For(dynamo.Periodic, 1, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(e).To(Equal(boundary.Periodic{Width: 1}))
		})

		It("rejects unknown modes and bad reach", func() {
			_, err := boundary.For(dynamo.BoundaryMode(7), 1, 0)
			Expect(err).To(MatchError(dynamo.ErrUnknownBoundary))

			_, err = boundary.For(dynamo.Fixed, 0, 0)
			Expect(err).To(MatchError(dynamo.ErrInvalidConfig))
		})
	})

	Describe("Fixed", func() {
		It("zeros one point per side for a 3-point stencil", func() {
			f := ramp(6)
			boundary.Fixed{Width: 1}.Apply(f)
			Expect(f).To(Equal(dynamo.Field{0, 1, 2, 3, 4, 0}))
		})

		It("zeros two points per side for a 5-point stencil", func() {
			f := ramp(8)
			f[0] = 9
			boundary.Fixed{Width: 2}.Apply(f)
			Expect(f).To(Equal(dynamo.Field{0, 0, 2, 3, 4, 5, 0, 0}))
		})

		It("clamps to a configured value", func() {
			f := ramp(5)
			boundary.Fixed{Width: 1, Value: -1}.Apply(f)
			Expect(f[0]).To(Equal(-1.0))
			Expect(f[4]).To(Equal(-1.0))
		})
	})

	Describe("Periodic", func() {
		It("wraps one ghost point per side", func() {
			f := ramp(6)
			boundary.Periodic{Width: 1}.Apply(f)
			// f[0] = f[N-2], f[N-1] = f[1]
			Expect(f).To(Equal(dynamo.Field{4, 1, 2, 3, 4, 1}))
		})

		It("wraps two ghost points per side", func() {
			f := ramp(10)
			boundary.Periodic{Width: 2}.Apply(f)
			Expect(f[0]).To(Equal(6.0))
			Expect(f[1]).To(Equal(7.0))
			Expect(f[8]).To(Equal(2.0))
			Expect(f[9]).To(Equal(3.0))
		})

		It("agrees with Source for every ghost point", func() {
			for _, w := range []int{1, 2} {
				n := 12
				f := ramp(n)
				orig := f.Clone()
				p := boundary.Periodic{Width: w}
				p.Apply(f)
				for i := 0; i < n; i++ {
					src := p.Source(i, n)
					if src < 0 {
						Expect(f[i]).To(Equal(orig[i]))
						continue
					}
					Expect(f[i]).To(Equal(orig[src]), "w=%d i=%d", w, i)
				}
			}
		})

		It("leaves a too-short field untouched", func() {
			f := dynamo.Field{1, 2, 3}
			boundary.Periodic{Width: 2}.Apply(f)
			Expect(f).To(Equal(dynamo.Field{1, 2, 3}))
		})
	})

	It("applies to every field of a buffer", func() {
		fields := []dynamo.Field{ramp(5), ramp(5)}
		boundary.ApplyAll(boundary.Fixed{Width: 1}, fields)
		for _, f := range fields {
			Expect(f[0]).To(BeZero())
			Expect(f[4]).To(BeZero())
		}
	})

	It("computes the minimum grid per mode", func() {
		Expect(boundary.MinPoints(dynamo.Fixed, 1)).To(Equal(3))
		Expect(boundary.MinPoints(dynamo.Periodic, 1)).To(Equal(3))
		Expect(boundary.MinPoints(dynamo.Fixed, 2)).To(Equal(5))
		Expect(boundary.MinPoints(dynamo.Periodic, 2)).To(Equal(6))
	})
})
