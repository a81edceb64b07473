package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/lwave/internal/dynamo"
	"github.com/san-kum/lwave/internal/sim"
)

// WriteCSV writes one row per (step, point): step,time,x,<fields>.
func WriteCSV(w io.Writer, res *sim.Result) error {
	if len(res.Frames) == 0 {
		return dynamo.ErrNoFrames
	}
	cw := csv.NewWriter(w)

	header := append([]string{"step", "time", "x"}, res.FieldNames...)
	if err := cw.Write(header); err != nil {
		return err
	}

	row := make([]string, len(header))
	for _, fr := range res.Frames {
		if len(fr.Fields) != len(res.FieldNames) {
			return fmt.Errorf("frame %d has %d fields, want %d", fr.Step, len(fr.Fields), len(res.FieldNames))
		}
		step := strconv.Itoa(fr.Step)
		t := strconv.FormatFloat(fr.Time, 'g', -1, 64)
		for i, x := range res.Grid.X {
			row[0], row[1] = step, t
			row[2] = strconv.FormatFloat(x, 'g', -1, 64)
			for f := range res.FieldNames {
				row[3+f] = strconv.FormatFloat(fr.Fields[f][i], 'g', -1, 64)
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// Table is a history read back from CSV.
type Table struct {
	FieldNames []string
	X          []float64
	Frames     []dynamo.Frame
}

// ReadCSV parses the layout written by WriteCSV. Rows of a step must be
// contiguous.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) < 4 || header[0] != "step" || header[1] != "time" || header[2] != "x" {
		return nil, fmt.Errorf("unexpected header %v", header)
	}
	tab := &Table{FieldNames: header[3:]}
	nf := len(tab.FieldNames)

	var cur *dynamo.Frame
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		vals := make([]float64, len(rec))
		for i, s := range rec {
			if vals[i], err = strconv.ParseFloat(s, 64); err != nil {
				return nil, fmt.Errorf("line %d column %s: %w", line, header[i], err)
			}
		}
		step := int(vals[0])
		if cur == nil || cur.Step != step {
			tab.Frames = append(tab.Frames, dynamo.Frame{
				Step:   step,
				Time:   vals[1],
				Fields: make([]dynamo.Field, nf),
			})
			cur = &tab.Frames[len(tab.Frames)-1]
		}
		if len(tab.Frames) == 1 {
			tab.X = append(tab.X, vals[2])
		}
		for f := 0; f < nf; f++ {
			cur.Fields[f] = append(cur.Fields[f], vals[3+f])
		}
	}
	if len(tab.Frames) == 0 {
		return nil, dynamo.ErrNoFrames
	}
	return tab, nil
}
