package l2triangles

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/banshee-data/tau.report/internal/gesture/l1pose"
)

// ErrIndexOutOfRange is returned when a triple references a joint the
// sample does not carry.
var ErrIndexOutOfRange = errors.New("joint index out of range")

// Triangle is one triple resolved against a pose sample.
type Triangle struct {
	Index     int
	Triple    Triple
	Names     [3]string
	Positions [3]r3.Vec
	Rotations [3]l1pose.Rotator
}

// Set holds the triangles for one frame, in triple-table order.
type Set struct {
	Triangles []Triangle
}

// Len returns the number of triangles in the set.
func (s Set) Len() int { return len(s.Triangles) }

// VertexOffset returns the offset of triangle i's first vertex in the
// flattened vertex array.
func VertexOffset(i int) int { return 3 * i }

// Flatten returns every vertex position in triangle order, A B C per
// triangle. The result has 3*Len() entries.
func (s Set) Flatten() []r3.Vec {
	out := make([]r3.Vec, 0, 3*len(s.Triangles))
	for _, t := range s.Triangles {
		out = append(out, t.Positions[0], t.Positions[1], t.Positions[2])
	}
	return out
}

// Name returns the concatenated joint names of the triangle.
func (t Triangle) Name() string {
	return t.Names[0] + t.Names[1] + t.Names[2]
}

// VertexDelta is the change of one triangle vertex between two frames.
type VertexDelta struct {
	Displacement r3.Vec
	// Rotation is the angle in radians between the two joint orientations.
	Rotation float64
}

// Builder projects pose samples onto a triple table and keeps the previous
// frame's set for deltas.
type Builder struct {
	triples  []Triple
	current  Set
	previous Set
	frames   int
}

// NewBuilder creates a Builder over triples. A nil table selects
// DefaultTriples. The table is copied.
func NewBuilder(triples []Triple) *Builder {
	if triples == nil {
		triples = DefaultTriples
	}
	t := make([]Triple, len(triples))
	copy(t, triples)
	return &Builder{triples: t}
}

// Triples returns the builder's triple table.
func (b *Builder) Triples() []Triple { return b.triples }

// RequiredJoints returns the minimum joint count a sample needs.
func (b *Builder) RequiredJoints() int {
	n := 0
	for _, t := range b.triples {
		n = max(n, t.Max()+1)
	}
	return n
}

// Build resolves every triple against sample. The previous set is retained
// for Deltas. On error the builder state is unchanged.
func (b *Builder) Build(sample l1pose.Sample) (Set, error) {
	n := sample.Len()
	for i, t := range b.triples {
		for _, idx := range [...]int{t.A, t.B, t.C} {
			if idx < 0 || idx >= n {
				return Set{}, fmt.Errorf("%w: triangle %d %s references joint %d, sample has %d joints",
					ErrIndexOutOfRange, i, t, idx, n)
			}
		}
	}

	set := Set{Triangles: make([]Triangle, len(b.triples))}
	for i, t := range b.triples {
		ja, jb, jc := sample.Joints[t.A], sample.Joints[t.B], sample.Joints[t.C]
		set.Triangles[i] = Triangle{
			Index:     i,
			Triple:    t,
			Names:     [3]string{ja.Name, jb.Name, jc.Name},
			Positions: [3]r3.Vec{ja.Position, jb.Position, jc.Position},
			Rotations: [3]l1pose.Rotator{ja.Rotation, jb.Rotation, jc.Rotation},
		}
	}

	b.previous = b.current
	b.current = set
	b.frames++
	return set, nil
}

// Current returns the most recently built set.
func (b *Builder) Current() Set { return b.current }

// Previous returns the set built before the current one.
func (b *Builder) Previous() (Set, bool) {
	return b.previous, b.frames > 1
}

// Deltas returns the per-vertex change of triangle i since the previous
// frame. It reports false until two frames have been built.
func (b *Builder) Deltas(i int) ([3]VertexDelta, bool) {
	var out [3]VertexDelta
	if b.frames < 2 || i < 0 || i >= b.current.Len() || i >= b.previous.Len() {
		return out, false
	}
	cur, prev := b.current.Triangles[i], b.previous.Triangles[i]
	for v := range out {
		out[v] = VertexDelta{
			Displacement: r3.Sub(cur.Positions[v], prev.Positions[v]),
			Rotation:     l1pose.RotationDelta(prev.Rotations[v], cur.Rotations[v]),
		}
	}
	return out, true
}
