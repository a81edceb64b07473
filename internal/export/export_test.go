package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/lwave/internal/dynamo"
	"github.com/san-kum/lwave/internal/grid"
	"github.com/san-kum/lwave/internal/sim"
	"github.com/san-kum/lwave/internal/viz"
)

func sampleResult(scheme string, names ...string) *sim.Result {
	frames := make([]dynamo.Frame, 3)
	for n := range frames {
		fields := make([]dynamo.Field, len(names))
		for f := range fields {
			fields[f] = dynamo.Field{float64(n), float64(f) + 0.5, -1}
		}
		frames[n] = dynamo.Frame{Step: n, Time: 0.25 * float64(n), Fields: fields}
	}
	return &sim.Result{
		Scheme:     scheme,
		FieldNames: names,
		Grid:       &grid.Grid{X: []float64{0, 0.5, 1}, H: 0.5},
		Params:     grid.Params{C: 1, H: 0.5, Dt: 0.25, Lambda: 0.5},
		Boundary:   dynamo.Periodic,
		Frames:     frames,
		Metrics:    map[string]float64{"energy_drift": 0.01},
	}
}

func TestWriteTabularMaxwellPolarization(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTabular(&buf, sampleResult("maxwell", "E", "H"), 1); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(buf.String(), "\n")
	if lines[0] != "t X E Ex Ey H" {
		t.Fatalf("unexpected header %q", lines[0])
	}
	// point 1 of step 0: E = 0.5, H = 1.5
	comp := num(0.5 / math.Sqrt2)
	want := "0 0.5 0.5 " + comp + " " + comp + " 1.5"
	if lines[2] != want {
		t.Errorf("got %q, want %q", lines[2], want)
	}
	if lines[4] != "" {
		t.Errorf("expected blank line between steps, got %q", lines[4])
	}
	if lines[5] != "0.25 0 1 0.707107 0.707107 1" {
		t.Errorf("unexpected first row of step 1: %q", lines[5])
	}
}

func TestWriteTabularPlainHeader(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTabular(&buf, sampleResult("coupled", "E", "v", "w"), 2); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "t X E v w\n") {
		t.Errorf("unexpected header in %q", out)
	}
	// stride 2 keeps steps 0 and 2
	if strings.Count(out, "\n\n") != 1 {
		t.Errorf("expected two step blocks, got:\n%s", out)
	}
}

func TestWriteFrames(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteFrames(&buf, sampleResult("dispersive", "u"), 1); err != nil {
		t.Fatal(err)
	}
	want := "FRAME 0\n0.000000 0.500000 -1.000000\n\n" +
		"FRAME 1\n1.000000 0.500000 -1.000000\n\n" +
		"FRAME 2\n2.000000 0.500000 -1.000000\n\n"
	if buf.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestWriteTextRejectsEmptyAndUnknown(t *testing.T) {
	res := sampleResult("advection", "E")
	if err := WriteText(&bytes.Buffer{}, res, Format("xml"), 1); !errors.Is(err, dynamo.ErrInvalidConfig) {
		t.Errorf("expected invalid config, got %v", err)
	}
	res.Frames = nil
	if err := WriteText(&bytes.Buffer{}, res, Frames, 1); !errors.Is(err, dynamo.ErrNoFrames) {
		t.Errorf("expected ErrNoFrames, got %v", err)
	}
	if _, err := ParseFormat("FRAMES"); err != nil {
		t.Errorf("format parsing should ignore case: %v", err)
	}
}

func TestCSVRoundTrip(t *testing.T) {
	res := sampleResult("maxwell", "E", "H")
	var buf bytes.Buffer
	if err := WriteCSV(&buf, res); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "step,time,x,E,H\n") {
		t.Fatalf("unexpected header: %q", strings.SplitN(buf.String(), "\n", 2)[0])
	}

	tab, err := ReadCSV(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(tab.Frames) != 3 || len(tab.X) != 3 {
		t.Fatalf("expected 3 frames of 3 points, got %d/%d", len(tab.Frames), len(tab.X))
	}
	for n, fr := range tab.Frames {
		if fr.Step != n || fr.Time != res.Frames[n].Time {
			t.Errorf("frame %d: step %d time %g", n, fr.Step, fr.Time)
		}
		for f := range fr.Fields {
			for i, v := range fr.Fields[f] {
				if v != res.Frames[n].Fields[f][i] {
					t.Errorf("frame %d field %d point %d: %g != %g", n, f, i, v, res.Frames[n].Fields[f][i])
				}
			}
		}
	}
}

func TestReadCSVErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"bad header", "a,b,c,d\n"},
		{"no rows", "step,time,x,E\n"},
		{"bad number", "step,time,x,E\n0,0,0,abc\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadCSV(strings.NewReader(tt.input)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleResult("advection", "E")); err != nil {
		t.Fatal(err)
	}
	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatal(err)
	}
	if data.Scheme != "advection" || data.Boundary != "periodic" || data.Steps != 2 {
		t.Errorf("unexpected header fields: %+v", data)
	}
	if len(data.Frames) != 3 || data.Frames[2][0][0] != 2 {
		t.Errorf("unexpected frames %v", data.Frames)
	}
	if data.Metrics["energy_drift"] != 0.01 {
		t.Errorf("metrics not exported: %v", data.Metrics)
	}
}

func TestWriteJSONDivergedRun(t *testing.T) {
	res := sampleResult("maxwell", "E", "H")
	res.Frames[2].Fields[0][1] = math.Inf(1)
	res.Frames[2].Fields[1][2] = math.NaN()
	res.Metrics["max_amplitude"] = math.Inf(1)
	res.Metrics["energy_drift"] = math.Inf(-1)

	var buf bytes.Buffer
	if err := WriteJSON(&buf, res); err != nil {
		t.Fatalf("diverged run must export: %v", err)
	}
	if !strings.Contains(buf.String(), `"+Inf"`) || !strings.Contains(buf.String(), `"NaN"`) {
		t.Errorf("non-finite values not spelled out:\n%s", buf.String())
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatal(err)
	}
	if !math.IsInf(float64(data.Frames[2][0][1]), 1) || !math.IsNaN(float64(data.Frames[2][1][2])) {
		t.Errorf("frames lost non-finite values: %v", data.Frames[2])
	}
	if data.Frames[2][0][0] != 2 {
		t.Errorf("finite values changed: %v", data.Frames[2][0])
	}
	if !math.IsInf(float64(data.Metrics["max_amplitude"]), 1) || !math.IsInf(float64(data.Metrics["energy_drift"]), -1) {
		t.Errorf("metrics lost non-finite values: %v", data.Metrics)
	}
}

func TestProfileToSVG(t *testing.T) {
	svg := ProfileToSVG([]float64{0, 1, 2}, []Series{
		{Name: "E", Values: dynamo.Field{0, 1, 0}},
		{Name: "H", Values: dynamo.Field{0, -1, 0}},
	}, 200, 100)
	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatal("expected a complete svg document")
	}
	if strings.Count(svg, "<path") != 2 {
		t.Errorf("expected two paths")
	}
	if !strings.Contains(svg, string(viz.CurrentTheme.Field(1))) {
		t.Errorf("second series should use the theme's second field color")
	}
	if !strings.Contains(svg, "<line") {
		t.Errorf("expected a zero axis for signed data")
	}
	if ProfileToSVG([]float64{0}, nil, 10, 10) != "" {
		t.Error("expected empty output for a degenerate plot")
	}
}

func TestCanvasToSVG(t *testing.T) {
	c := viz.NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	svg := CanvasToSVG(c, 4)
	if strings.Count(svg, "<circle") != 2 {
		t.Errorf("expected two dots, got:\n%s", svg)
	}
}
