package sim

import "github.com/san-kum/lwave/internal/dynamo"

// Recorder accumulates deep copies of completed frames.
type Recorder struct {
	frames []dynamo.Frame
}

func NewRecorder(capacity int) *Recorder {
	return &Recorder{frames: make([]dynamo.Frame, 0, capacity)}
}

func (r *Recorder) Record(step int, t float64, fields []dynamo.Field) dynamo.Frame {
	fr := dynamo.Frame{Step: step, Time: t, Fields: fields}.Clone()
	r.frames = append(r.frames, fr)
	return fr
}

func (r *Recorder) Frames() []dynamo.Frame { return r.frames }

func (r *Recorder) Len() int { return len(r.frames) }

// Last returns the most recent frame, or false if nothing was recorded.
func (r *Recorder) Last() (dynamo.Frame, bool) {
	if len(r.frames) == 0 {
		return dynamo.Frame{}, false
	}
	return r.frames[len(r.frames)-1], true
}
