package sim

import "github.com/san-kum/lwave/internal/dynamo"

// Ring is a fixed arena of time-level buffers addressed by a rotating head.
// Next is the only buffer written during a step; Curr and Prev are read-only.
type Ring struct {
	bufs [][]dynamo.Field
	head int
}

func NewRing(levels, fields, points int) *Ring {
	bufs := make([][]dynamo.Field, levels)
	for l := range bufs {
		bufs[l] = make([]dynamo.Field, fields)
		for f := range bufs[l] {
			bufs[l][f] = make(dynamo.Field, points)
		}
	}
	return &Ring{bufs: bufs}
}

func (r *Ring) Levels() int { return len(r.bufs) }

func (r *Ring) at(offset int) []dynamo.Field {
	n := len(r.bufs)
	return r.bufs[((r.head+offset)%n+n)%n]
}

func (r *Ring) Curr() []dynamo.Field { return r.at(0) }
func (r *Ring) Next() []dynamo.Field { return r.at(1) }

// Prev returns the level before Curr, or nil for a two-level ring.
func (r *Ring) Prev() []dynamo.Field {
	if len(r.bufs) < 3 {
		return nil
	}
	return r.at(-1)
}

// Seeds returns the levels a scheme fills before stepping, oldest first.
func (r *Ring) Seeds() [][]dynamo.Field {
	if len(r.bufs) < 3 {
		return [][]dynamo.Field{r.Curr()}
	}
	return [][]dynamo.Field{r.Prev(), r.Curr()}
}

// Rotate makes Next the current level; the oldest level becomes the new Next.
func (r *Ring) Rotate() {
	r.head = (r.head + 1) % len(r.bufs)
}
