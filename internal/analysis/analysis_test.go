package analysis

import (
	"math"
	"strings"
	"testing"

	"github.com/san-kum/lwave/internal/dynamo"
	"github.com/san-kum/lwave/internal/grid"
	"github.com/san-kum/lwave/internal/initial"
	"github.com/san-kum/lwave/internal/sim"
	"github.com/san-kum/lwave/internal/stencil"
)

func TestPeakLocationRefinesBetweenSamples(t *testing.T) {
	x := []float64{0, 1, 2, 3, 4}
	// samples of -(x-2.25)^2
	f := make(dynamo.Field, len(x))
	for i, xi := range x {
		f[i] = -(xi - 2.25) * (xi - 2.25)
	}
	if got := PeakLocation(x, f); math.Abs(got-2.25) > 1e-12 {
		t.Errorf("expected 2.25, got %g", got)
	}
	if got := PeakLocation(x, dynamo.Field{5, 1, 0, 0, 0}); got != 0 {
		t.Errorf("edge peak should not be refined, got %g", got)
	}
	if !math.IsNaN(PeakLocation(x, dynamo.Field{1})) {
		t.Error("mismatched lengths should give NaN")
	}
}

func TestAdvectedPulseMovesAtWaveSpeed(t *testing.T) {
	g, p, err := grid.New(grid.Spec{XMin: 0, XMax: 1, N: 200, Speed: 1, Courant: 0.5})
	if err != nil {
		t.Fatal(err)
	}
	s := sim.New(stencil.NewAdvection(p), g, p, initial.NarrowGaussian{Center: 0.3, Width: 0.01})
	res, err := s.Run(sim.Config{Steps: 100, Boundary: dynamo.Fixed})
	if err != nil {
		t.Fatal(err)
	}

	track := Track(g.X, res.Frames, 0)
	if len(track) != 101 {
		t.Fatalf("expected 101 positions, got %d", len(track))
	}
	shift := track[100] - track[0]
	want := 100 * p.C * p.Dt
	if math.Abs(shift-want) > g.H {
		t.Errorf("pulse moved %g, expected about %g", shift, want)
	}

	v := Speed(res.Times(), track)
	if math.Abs(v-p.C) > 0.02 {
		t.Errorf("fitted speed %g, expected about %g", v, p.C)
	}
}

func TestPeriodicAdvectionShiftPerStep(t *testing.T) {
	g, p, err := grid.New(grid.Spec{XMin: 0, XMax: 1, N: 200, Speed: 1, Courant: 0.5})
	if err != nil {
		t.Fatal(err)
	}
	s := sim.New(stencil.NewAdvection(p), g, p, initial.NarrowGaussian{Center: 0.3, Width: 0.01})
	res, err := s.Run(sim.Config{Steps: 120, Boundary: dynamo.Periodic})
	if err != nil {
		t.Fatal(err)
	}

	track := Track(g.X, res.Frames, 0)
	for _, n := range []int{1, 10, 40, 80, 120} {
		shift := track[n] - track[0]
		want := float64(n) * p.C * p.Dt
		if math.Abs(shift-want) > g.H {
			t.Errorf("after %d steps the pulse moved %g, expected about %g", n, shift, want)
		}
	}
	if v := Speed(res.Times(), track); math.Abs(v-p.C) > 0.02 {
		t.Errorf("fitted speed %g, expected about %g", v, p.C)
	}
}

func TestSpeed(t *testing.T) {
	times := []float64{0, 1, 2, 3}
	pos := []float64{1, 3, 5, 7}
	if v := Speed(times, pos); math.Abs(v-2) > 1e-12 {
		t.Errorf("expected 2, got %g", v)
	}
	if Speed(times[:1], pos[:1]) != 0 {
		t.Error("single sample should give 0")
	}
}

func TestRMSDifference(t *testing.T) {
	a := dynamo.Field{0, 0, 0, 0}
	b := dynamo.Field{1, -1, 1, -1}
	if got := RMSDifference(a, b); got != 1 {
		t.Errorf("expected 1, got %g", got)
	}
}

func TestSpectrumFindsCosineWavenumber(t *testing.T) {
	const n = 64
	h := 0.1
	f := make(dynamo.Field, n)
	for i := range f {
		f[i] = math.Cos(2 * math.Pi * 4 * float64(i) / n)
	}
	s := NewSpectrum(f, h)
	if len(s.Power) != n/2+1 {
		t.Fatalf("expected %d bins, got %d", n/2+1, len(s.Power))
	}
	want := 2 * math.Pi * 4 / (n * h)
	if math.Abs(s.Dominant()-want) > 1e-9 {
		t.Errorf("dominant wavenumber %g, want %g", s.Dominant(), want)
	}
	if math.Abs(s.Power[4]-n/2) > 1e-9 {
		t.Errorf("expected peak magnitude %d, got %g", n/2, s.Power[4])
	}
	if s.Bandwidth(0.99) != want {
		t.Errorf("all power sits at bin 4, got bandwidth %g", s.Bandwidth(0.99))
	}
}

func TestProbePortrait(t *testing.T) {
	frames := []dynamo.Frame{
		{Fields: []dynamo.Field{{0, 1}, {0, 0}}},
		{Fields: []dynamo.Field{{0, 0.5}, {0, -0.5}}},
	}
	series := ProbeSeries(frames, 0, 1)
	if len(series) != 2 || series[1] != 0.5 {
		t.Fatalf("unexpected probe series %v", series)
	}
	portrait := ProbePortrait(frames, 0, 1, 1)
	if portrait == nil || len(portrait.X) != 2 || portrait.Y[1] != -0.5 || portrait.Index != 1 {
		t.Fatalf("unexpected portrait %+v", portrait)
	}
	art := portrait.ASCII(20, 10)
	if strings.Count(art, "\n") != 10 || !strings.Contains(art, "•") {
		t.Errorf("unexpected ascii portrait:\n%s", art)
	}
	if ProbePortrait(frames, 0, 5, 1) != nil {
		t.Error("missing field should give nil portrait")
	}
	diverged := &Portrait{X: []float64{0, 1, math.Inf(1)}, Y: []float64{0, math.NaN(), 1}}
	if art := diverged.ASCII(20, 10); strings.Count(art, "•") != 1 {
		t.Errorf("only the finite sample should be drawn:\n%s", art)
	}

	var none *Portrait
	if none.ASCII(20, 10) != "" {
		t.Error("nil portrait should draw nothing")
	}
}
