package l1pose

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// ErrInvalidSample is returned when a pose carries non-finite coordinates.
var ErrInvalidSample = errors.New("invalid pose sample")

// Rotator is a joint orientation in degrees, using the game layer's
// roll (X), pitch (Y), yaw (Z) convention.
type Rotator struct {
	Roll  float64 `json:"roll"`
	Pitch float64 `json:"pitch"`
	Yaw   float64 `json:"yaw"`
}

// Quat returns the unit quaternion for the rotator, applying roll first,
// then pitch, then yaw.
func (r Rotator) Quat() quat.Number {
	qx := axisAngle(r3.Vec{X: 1}, r.Roll)
	qy := axisAngle(r3.Vec{Y: 1}, r.Pitch)
	qz := axisAngle(r3.Vec{Z: 1}, r.Yaw)
	return quat.Mul(qz, quat.Mul(qy, qx))
}

func axisAngle(axis r3.Vec, deg float64) quat.Number {
	half := deg * math.Pi / 360
	s := math.Sin(half)
	return quat.Number{Real: math.Cos(half), Imag: axis.X * s, Jmag: axis.Y * s, Kmag: axis.Z * s}
}

// RotationDelta returns the angle in radians of the rotation that takes a
// to b. The result is in [0, π].
func RotationDelta(a, b Rotator) float64 {
	rel := quat.Mul(quat.Conj(a.Quat()), b.Quat())
	w := math.Abs(rel.Real / quat.Abs(rel))
	if w > 1 {
		w = 1
	}
	return 2 * math.Acos(w)
}

// Joint is one tracked skeleton socket.
type Joint struct {
	Name     string  `json:"name"`
	Position r3.Vec  `json:"position"`
	Rotation Rotator `json:"rotation"`
}

// Sample is a single pose snapshot. Joint order is stable across frames:
// index i always refers to the same socket.
type Sample struct {
	Joints []Joint `json:"joints"`
}

// Len returns the number of joints in the sample.
func (s Sample) Len() int { return len(s.Joints) }

// Names returns the joint names in index order.
func (s Sample) Names() []string {
	out := make([]string, len(s.Joints))
	for i, j := range s.Joints {
		out[i] = j.Name
	}
	return out
}

// Positions returns the joint positions in index order.
func (s Sample) Positions() []r3.Vec {
	out := make([]r3.Vec, len(s.Joints))
	for i, j := range s.Joints {
		out[i] = j.Position
	}
	return out
}

// Rotations returns the joint rotations in index order.
func (s Sample) Rotations() []Rotator {
	out := make([]Rotator, len(s.Joints))
	for i, j := range s.Joints {
		out[i] = j.Rotation
	}
	return out
}

// Validate rejects samples with NaN or infinite coordinates.
func (s Sample) Validate() error {
	for i, j := range s.Joints {
		for _, v := range [...]float64{
			j.Position.X, j.Position.Y, j.Position.Z,
			j.Rotation.Roll, j.Rotation.Pitch, j.Rotation.Yaw,
		} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: joint %d (%s) is not finite", ErrInvalidSample, i, j.Name)
			}
		}
	}
	return nil
}

// Clone returns a deep copy of the sample.
func (s Sample) Clone() Sample {
	joints := make([]Joint, len(s.Joints))
	copy(joints, s.Joints)
	return Sample{Joints: joints}
}
