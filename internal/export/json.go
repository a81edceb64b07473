package export

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/san-kum/lwave/internal/sim"
)

// Float is a float64 that survives JSON when it is not finite: NaN and the
// infinities are written as the strings "NaN", "+Inf" and "-Inf".
type Float float64

func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	switch {
	case math.IsNaN(v):
		return []byte(`"NaN"`), nil
	case math.IsInf(v, 1):
		return []byte(`"+Inf"`), nil
	case math.IsInf(v, -1):
		return []byte(`"-Inf"`), nil
	}
	return strconv.AppendFloat(nil, v, 'g', -1, 64), nil
}

func (f *Float) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		switch s {
		case "NaN":
			*f = Float(math.NaN())
		case "+Inf", "Inf":
			*f = Float(math.Inf(1))
		case "-Inf":
			*f = Float(math.Inf(-1))
		default:
			return fmt.Errorf("invalid float %q", s)
		}
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = Float(v)
	return nil
}

type ExportData struct {
	Scheme   string           `json:"scheme"`
	Boundary string           `json:"boundary"`
	Fields   []string         `json:"fields"`
	C        float64          `json:"c"`
	H        float64          `json:"h"`
	Dt       float64          `json:"dt"`
	Lambda   float64          `json:"lambda"`
	Steps    int              `json:"steps"`
	X        []float64        `json:"x"`
	Times    []float64        `json:"times"`
	Frames   [][][]Float      `json:"frames"`
	Metrics  map[string]Float `json:"metrics"`
	Warnings []string         `json:"warnings,omitempty"`
}

func toFloats(f []float64) []Float {
	out := make([]Float, len(f))
	for i, v := range f {
		out[i] = Float(v)
	}
	return out
}

func NewExportData(res *sim.Result) ExportData {
	data := ExportData{
		Scheme:   res.Scheme,
		Boundary: res.Boundary.String(),
		Fields:   res.FieldNames,
		C:        res.Params.C,
		H:        res.Params.H,
		Dt:       res.Params.Dt,
		Lambda:   res.Params.Lambda,
		Steps:    len(res.Frames) - 1,
		X:        res.Grid.X,
		Times:    res.Times(),
		Frames:   make([][][]Float, len(res.Frames)),
		Metrics:  make(map[string]Float, len(res.Metrics)),
		Warnings: res.Warnings,
	}
	for i, fr := range res.Frames {
		data.Frames[i] = make([][]Float, len(fr.Fields))
		for f, field := range fr.Fields {
			data.Frames[i][f] = toFloats(field)
		}
	}
	for name, v := range res.Metrics {
		data.Metrics[name] = Float(v)
	}
	return data
}

func WriteJSON(w io.Writer, res *sim.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewExportData(res))
}

func ExportJSON(path string, res *sim.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, res)
}
