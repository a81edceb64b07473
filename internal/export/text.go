package export

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/san-kum/lwave/internal/dynamo"
	"github.com/san-kum/lwave/internal/sim"
)

// Format selects a plain-text layout for a history.
type Format string

const (
	// Tabular writes "t X <fields>" rows, one per point, with a blank line
	// between steps.
	Tabular Format = "tabular"
	// Frames writes a "FRAME n" line followed by the first field's values.
	Frames Format = "frames"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case Tabular, Frames:
		return f, nil
	case "":
		return Tabular, nil
	}
	return "", dynamo.NewConfigError("format", s)
}

// WriteText writes res in the given format, keeping every stride-th frame.
func WriteText(w io.Writer, res *sim.Result, format Format, stride int) error {
	switch format {
	case Tabular:
		return WriteTabular(w, res, stride)
	case Frames:
		return WriteFrames(w, res, stride)
	}
	return dynamo.NewConfigError("format", format)
}

// polarized reports whether E is written with its 45 degree components.
func polarized(res *sim.Result) bool {
	return res.Scheme == "maxwell"
}

func tabularHeader(res *sim.Result) []string {
	cols := []string{"t", "X"}
	for _, name := range res.FieldNames {
		cols = append(cols, name)
		if name == "E" && polarized(res) {
			cols = append(cols, "Ex", "Ey")
		}
	}
	return cols
}

func WriteTabular(w io.Writer, res *sim.Result, stride int) error {
	if len(res.Frames) == 0 {
		return dynamo.ErrNoFrames
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, strings.Join(tabularHeader(res), " "))

	row := make([]string, 0, len(res.FieldNames)+4)
	for k, fr := range strided(res.Frames, stride) {
		if k > 0 {
			bw.WriteByte('\n')
		}
		for i, x := range res.Grid.X {
			row = append(row[:0], num(fr.Time), num(x))
			for f, name := range res.FieldNames {
				v := fr.Fields[f][i]
				row = append(row, num(v))
				if name == "E" && polarized(res) {
					c := num(v / math.Sqrt2)
					row = append(row, c, c)
				}
			}
			fmt.Fprintln(bw, strings.Join(row, " "))
		}
	}
	return bw.Flush()
}

func WriteFrames(w io.Writer, res *sim.Result, stride int) error {
	if len(res.Frames) == 0 {
		return dynamo.ErrNoFrames
	}
	bw := bufio.NewWriter(w)
	for _, fr := range strided(res.Frames, stride) {
		fmt.Fprintf(bw, "FRAME %d\n", fr.Step)
		for i, v := range fr.Fields[0] {
			if i > 0 {
				bw.WriteByte(' ')
			}
			bw.WriteString(strconv.FormatFloat(v, 'f', 6, 64))
		}
		bw.WriteString("\n\n")
	}
	return bw.Flush()
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

// strided keeps every stride-th frame and always the last one.
func strided(frames []dynamo.Frame, stride int) []dynamo.Frame {
	if stride <= 1 || len(frames) == 0 {
		return frames
	}
	out := make([]dynamo.Frame, 0, len(frames)/stride+2)
	for i := 0; i < len(frames); i += stride {
		out = append(out, frames[i])
	}
	if last := frames[len(frames)-1]; out[len(out)-1].Step != last.Step {
		out = append(out, last)
	}
	return out
}
