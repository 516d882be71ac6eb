package l1pose

import (
	"math"
	"time"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/banshee-data/tau.report/internal/timeutil"
)

// restPose is a relaxed A-pose in centimetres (X forward, Y left, Z up).
// Knees and elbows are slightly bent so limb triangles never collapse.
var restPose = map[int]r3.Vec{
	Hips:          {X: 0, Y: 0, Z: 100},
	Spine:         {X: 0, Y: 0, Z: 110},
	Spine1:        {X: 0, Y: 0, Z: 125},
	Spine2:        {X: 0, Y: 0, Z: 138},
	Neck:          {X: 0, Y: 0, Z: 150},
	Head:          {X: 2, Y: 0, Z: 162},
	HeadTopEnd:    {X: 2, Y: 0, Z: 178},
	LeftShoulder:  {X: 0, Y: 8, Z: 145},
	LeftArm:       {X: 0, Y: 18, Z: 144},
	LeftForeArm:   {X: 3, Y: 36, Z: 122},
	LeftHand:      {X: 8, Y: 50, Z: 103},
	RightShoulder: {X: 0, Y: -8, Z: 145},
	RightArm:      {X: 0, Y: -18, Z: 144},
	RightForeArm:  {X: 3, Y: -36, Z: 122},
	RightHand:     {X: 8, Y: -50, Z: 103},
	LeftUpLeg:     {X: 0, Y: 10, Z: 95},
	LeftLeg:       {X: 5, Y: 11, Z: 52},
	LeftFoot:      {X: 0, Y: 12, Z: 8},
	LeftToeBase:   {X: 14, Y: 12, Z: 2},
	LeftToeEnd:    {X: 22, Y: 12, Z: 2},
	RightUpLeg:    {X: 0, Y: -10, Z: 95},
	RightLeg:      {X: 5, Y: -11, Z: 52},
	RightFoot:     {X: 0, Y: -12, Z: 8},
	RightToeBase:  {X: 14, Y: -12, Z: 2},
	RightToeEnd:   {X: 22, Y: -12, Z: 2},
}

// SyntheticSource generates a walking-in-place skeleton: arms and legs swing
// in counter-phase and the torso sways. It is deterministic for a given
// elapsed time.
type SyntheticSource struct {
	clock     timeutil.Clock
	start     time.Time
	frequency float64
	names     []string
}

// NewSyntheticSource creates a generator driven by clock. frequency is the
// gait cycle rate in Hz; zero selects 0.5 Hz.
func NewSyntheticSource(clock timeutil.Clock, frequency float64) *SyntheticSource {
	if clock == nil {
		clock = timeutil.WallClock{}
	}
	if frequency <= 0 {
		frequency = 0.5
	}
	return &SyntheticSource{
		clock:     clock,
		start:     clock.Now(),
		frequency: frequency,
		names:     SkeletonNames(),
	}
}

// Next returns the pose for the clock's current time.
func (s *SyntheticSource) Next() (Sample, error) {
	return s.At(s.clock.Since(s.start).Seconds()), nil
}

// At returns the pose t seconds into the gait cycle.
func (s *SyntheticSource) At(t float64) Sample {
	w := 2 * math.Pi * s.frequency * t

	pos := make([]r3.Vec, SkeletonJointCount)
	rot := make([]Rotator, SkeletonJointCount)
	for i := range pos {
		pos[i] = restPosition(i)
	}

	armSwing := 35 * math.Sin(w)
	armLift := 10 * math.Sin(1.3*w)
	legSwing := 20 * math.Sin(w)

	swingChain(pos, rot, LeftArm, armChain(LeftArm), Rotator{Roll: armLift, Pitch: armSwing})
	swingChain(pos, rot, RightArm, armChain(RightArm), Rotator{Roll: -armLift, Pitch: -armSwing})
	swingChain(pos, rot, LeftUpLeg, legChain(LeftUpLeg), Rotator{Pitch: -legSwing})
	swingChain(pos, rot, RightUpLeg, legChain(RightUpLeg), Rotator{Pitch: legSwing})

	upper := append([]int{Spine1, Spine2, Neck, Head, HeadTopEnd, LeftShoulder, RightShoulder},
		append(armChain(LeftArm), armChain(RightArm)...)...)
	swingChain(pos, rot, Hips, upper, Rotator{Roll: 5 * math.Sin(0.7*w), Yaw: 8 * math.Sin(0.5*w)})

	joints := make([]Joint, SkeletonJointCount)
	for i := range joints {
		joints[i] = Joint{Name: s.names[i], Position: pos[i], Rotation: rot[i]}
	}
	return Sample{Joints: joints}
}

// restPosition returns the rest position of socket i. Finger sockets fan out
// from their hand.
func restPosition(i int) r3.Vec {
	if p, ok := restPose[i]; ok {
		return p
	}
	var hand int
	var side float64
	switch {
	case i > LeftHand && i < RightShoulder:
		hand, side = LeftHand, 1
	case i > RightHand && i < LeftUpLeg:
		hand, side = RightHand, -1
	default:
		return r3.Vec{}
	}
	k := i - hand - 1
	finger, seg := float64(k/4), float64(k%4+1)
	base := restPose[hand]
	return r3.Vec{
		X: base.X + (finger-2)*1.5,
		Y: base.Y + side*seg*1.2,
		Z: base.Z - seg*2.5,
	}
}

func armChain(arm int) []int {
	hand := arm + 2
	chain := []int{arm, arm + 1, hand}
	for i := hand + 1; i <= hand+20; i++ {
		chain = append(chain, i)
	}
	return chain
}

func legChain(upLeg int) []int {
	return []int{upLeg + 1, upLeg + 2, upLeg + 3, upLeg + 4}
}

// swingChain rotates every socket in chain about the pivot socket and adds
// the rotation to each socket's orientation.
func swingChain(pos []r3.Vec, rot []Rotator, pivot int, chain []int, by Rotator) {
	q := by.Quat()
	origin := pos[pivot]
	for _, i := range chain {
		if i == pivot {
			rot[i] = addRotators(rot[i], by)
			continue
		}
		pos[i] = r3.Add(origin, rotate(q, r3.Sub(pos[i], origin)))
		rot[i] = addRotators(rot[i], by)
	}
}

func rotate(q quat.Number, v r3.Vec) r3.Vec {
	p := quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}
	out := quat.Mul(quat.Mul(q, p), quat.Conj(q))
	return r3.Vec{X: out.Imag, Y: out.Jmag, Z: out.Kmag}
}

func addRotators(a, b Rotator) Rotator {
	return Rotator{Roll: a.Roll + b.Roll, Pitch: a.Pitch + b.Pitch, Yaw: a.Yaw + b.Yaw}
}
