package geometry

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// ErrDegenerateGeometry is returned when the vertices do not span a triangle
// (collinear) or a tetrahedron (coplanar) and the circumcenter is undefined.
var ErrDegenerateGeometry = errors.New("degenerate geometry")

// DegenerateTolerance is the smallest accepted sine of the angle spanned at
// vertex a (triangles) or normalised volume (tetrahedra). The test is scale
// invariant, so it behaves the same for centimetre and kilometre inputs.
const DegenerateTolerance = 1e-10

// Offset2D returns the circumcenter of triangle abc relative to a, together
// with its xi/eta coordinates. The xi axis runs from a to b and the eta axis
// from a to c; both edges have unit length in that system.
func Offset2D(a, b, c r2.Vec) (offset r2.Vec, xi, eta float64, err error) {
	ba := r2.Sub(b, a)
	ca := r2.Sub(c, a)
	baLen := r2.Norm2(ba)
	caLen := r2.Norm2(ca)

	det := r2.Cross(ba, ca)
	if degenerate(math.Abs(det), math.Sqrt(baLen*caLen)) {
		return r2.Vec{}, 0, 0, ErrDegenerateGeometry
	}
	denominator := 0.5 / det

	offset = r2.Vec{
		X: (ca.Y*baLen - ba.Y*caLen) * denominator,
		Y: (ba.X*caLen - ca.X*baLen) * denominator,
	}

	// Cramer's rule in the (ab, ac) basis.
	xi = (offset.X*ca.Y - offset.Y*ca.X) * (2 * denominator)
	eta = (offset.Y*ba.X - offset.X*ba.Y) * (2 * denominator)
	return offset, xi, eta, nil
}

// TriangleCircumcenter2D returns the absolute circumcenter of the planar
// triangle abc and its xi/eta coordinates relative to a.
func TriangleCircumcenter2D(a, b, c r2.Vec) (center r2.Vec, xi, eta float64, err error) {
	offset, xi, eta, err := Offset2D(a, b, c)
	if err != nil {
		return r2.Vec{}, 0, 0, err
	}
	return r2.Add(a, offset), xi, eta, nil
}

// Offset3D returns the circumcenter of the spatial triangle abc relative to
// a, together with xi/eta coordinates. The result always lies in the plane of
// the triangle.
//
//	m - a = (|b-a|² (c-a) - |c-a|² (b-a)) × ((b-a)×(c-a)) / (2 |(b-a)×(c-a)|²)
func Offset3D(a, b, c r3.Vec) (offset r3.Vec, xi, eta float64, err error) {
	ba := r3.Sub(b, a)
	ca := r3.Sub(c, a)
	baLen := r3.Norm2(ba)
	caLen := r3.Norm2(ca)

	cross := r3.Cross(ba, ca)
	crossLen := r3.Norm2(cross)
	if degenerate(math.Sqrt(crossLen), math.Sqrt(baLen*caLen)) {
		return r3.Vec{}, 0, 0, ErrDegenerateGeometry
	}
	denominator := 0.5 / crossLen

	weighted := r3.Sub(r3.Scale(baLen, ca), r3.Scale(caLen, ba))
	offset = r3.Scale(denominator, r3.Cross(weighted, cross))

	// Three algebraically equivalent forms exist, one per cross product
	// component. Divide by whichever has the largest magnitude.
	ax, ay, az := math.Abs(cross.X), math.Abs(cross.Y), math.Abs(cross.Z)
	switch {
	case ax >= ay && ax >= az:
		xi = (offset.Y*ca.Z - offset.Z*ca.Y) / cross.X
		eta = (offset.Z*ba.Y - offset.Y*ba.Z) / cross.X
	case ay >= az:
		xi = (offset.Z*ca.X - offset.X*ca.Z) / cross.Y
		eta = (offset.X*ba.Z - offset.Z*ba.X) / cross.Y
	default:
		xi = (offset.X*ca.Y - offset.Y*ca.X) / cross.Z
		eta = (offset.Y*ba.X - offset.X*ba.Y) / cross.Z
	}
	return offset, xi, eta, nil
}

// TriangleCircumcenter3D returns the absolute circumcenter of triangle abc.
func TriangleCircumcenter3D(a, b, c r3.Vec) (r3.Vec, error) {
	offset, _, _, err := Offset3D(a, b, c)
	if err != nil {
		return r3.Vec{}, err
	}
	return r3.Add(a, offset), nil
}

// TriangleCircumcenter3DParams is TriangleCircumcenter3D with the xi/eta
// interpolation coordinates returned as well.
func TriangleCircumcenter3DParams(a, b, c r3.Vec) (center r3.Vec, xi, eta float64, err error) {
	offset, xi, eta, err := Offset3D(a, b, c)
	if err != nil {
		return r3.Vec{}, 0, 0, err
	}
	return r3.Add(a, offset), xi, eta, nil
}

// TetrahedronCircumcenter returns the absolute circumcenter of tetrahedron
// abcd and its xi/eta/zeta coordinates along the edges ab, ac and ad.
//
//	m - a = (|d-a|² [(b-a)×(c-a)] + |c-a|² [(d-a)×(b-a)] + |b-a|² [(c-a)×(d-a)])
//	        / (2 det[b-a; c-a; d-a])
func TetrahedronCircumcenter(a, b, c, d r3.Vec) (center r3.Vec, xi, eta, zeta float64, err error) {
	ba := r3.Sub(b, a)
	ca := r3.Sub(c, a)
	da := r3.Sub(d, a)
	baLen := r3.Norm2(ba)
	caLen := r3.Norm2(ca)
	daLen := r3.Norm2(da)

	crossCD := r3.Cross(ca, da)
	crossDB := r3.Cross(da, ba)
	crossBC := r3.Cross(ba, ca)

	det := r3.Dot(ba, crossCD)
	if degenerate(math.Abs(det), math.Sqrt(baLen*caLen*daLen)) {
		return r3.Vec{}, 0, 0, 0, ErrDegenerateGeometry
	}
	denominator := 0.5 / det

	offset := r3.Scale(denominator, r3.Add(
		r3.Add(r3.Scale(baLen, crossCD), r3.Scale(caLen, crossDB)),
		r3.Scale(daLen, crossBC),
	))

	xi = r3.Dot(offset, crossCD) * (2 * denominator)
	eta = r3.Dot(offset, crossDB) * (2 * denominator)
	zeta = r3.Dot(offset, crossBC) * (2 * denominator)
	return r3.Add(a, offset), xi, eta, zeta, nil
}

// Centroid returns the mean of the three vertices.
func Centroid(a, b, c r3.Vec) r3.Vec {
	return r3.Vec{
		X: (a.X + b.X + c.X) / 3,
		Y: (a.Y + b.Y + c.Y) / 3,
		Z: (a.Z + b.Z + c.Z) / 3,
	}
}

// Circumradius3D returns the circumradius of triangle abc.
func Circumradius3D(a, b, c r3.Vec) (float64, error) {
	offset, _, _, err := Offset3D(a, b, c)
	if err != nil {
		return 0, err
	}
	return r3.Norm(offset), nil
}

// degenerate reports whether measure is negligible against scale. A zero
// scale means two vertices coincide.
func degenerate(measure, scale float64) bool {
	if scale == 0 || math.IsNaN(measure) || math.IsNaN(scale) {
		return true
	}
	return measure <= DegenerateTolerance*scale
}

// SpanSine returns the sine of the angle at a spanned by ab and ac. It is
// the measure the triangle kernels compare against DegenerateTolerance, and
// is zero when two vertices coincide.
func SpanSine(a, b, c r3.Vec) float64 {
	ba := r3.Sub(b, a)
	ca := r3.Sub(c, a)
	scale := math.Sqrt(r3.Norm2(ba) * r3.Norm2(ca))
	if scale == 0 {
		return 0
	}
	return r3.Norm(r3.Cross(ba, ca)) / scale
}
