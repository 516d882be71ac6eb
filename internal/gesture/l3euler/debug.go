package l3euler

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

const (
	normalLength   = 50
	bisectorLength = 150
)

// DebugLines is the visualisation geometry for one triangle. Edge vectors
// follow the A-B, B-C, C-A winding.
type DebugLines struct {
	AB, BC, CA          r3.Vec
	ABMid, BCMid, CAMid r3.Vec
	// Normal is AB×BC scaled to length 50.
	Normal r3.Vec
	// D1..D3 are in-plane directions perpendicular to AB, BC and CA,
	// scaled to length 150.
	D1, D2, D3 r3.Vec
	// AltCircumcenter is where the AB and BC bisectors meet, solved in the
	// XY projection. AltOK is false when that projection is degenerate.
	AltCircumcenter r3.Vec
	AltOK           bool
}

// NewDebugLines builds the visualisation geometry for triangle abc.
func NewDebugLines(a, b, c r3.Vec) *DebugLines {
	d := &DebugLines{
		AB:    r3.Sub(a, b),
		BC:    r3.Sub(b, c),
		CA:    r3.Sub(c, a),
		ABMid: midpoint(a, b),
		BCMid: midpoint(b, c),
		CAMid: midpoint(c, a),
	}

	v := r3.Cross(d.AB, d.BC)
	d1 := r3.Cross(v, d.AB)
	d2 := r3.Cross(v, d.BC)
	d3 := r3.Cross(v, d.CA)

	d.Normal = scaleTo(v, normalLength)
	d.D1 = scaleTo(d1, bisectorLength)
	d.D2 = scaleTo(d2, bisectorLength)
	d.D3 = scaleTo(d3, bisectorLength)

	den := d.D1.Y*d.D2.X - d.D2.Y*d.D1.X
	if math.Abs(den) > 1e-10*bisectorLength*bisectorLength {
		t := ((d.BCMid.Y-d.ABMid.Y)*d.D2.X + d.D2.Y*d.ABMid.X - d.D2.Y*d.BCMid.X) / den
		d.AltCircumcenter = r3.Add(d.ABMid, r3.Scale(t, d.D1))
		d.AltOK = true
	}
	return d
}

func midpoint(a, b r3.Vec) r3.Vec {
	return r3.Vec{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2, Z: (a.Z + b.Z) / 2}
}

// scaleTo returns v with length n, or the zero vector if v has none.
func scaleTo(v r3.Vec, n float64) r3.Vec {
	l := r3.Norm(v)
	if l == 0 {
		return r3.Vec{}
	}
	return r3.Scale(n/l, v)
}
