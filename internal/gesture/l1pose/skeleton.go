package l1pose

// Socket indices of the humanoid skeleton the triangle table is authored
// against. Fingers occupy 11-30 (left) and 35-54 (right).
const (
	Hips          = 0
	Spine         = 1
	Spine1        = 2
	Spine2        = 3
	Neck          = 4
	Head          = 5
	HeadTopEnd    = 6
	LeftShoulder  = 7
	LeftArm       = 8
	LeftForeArm   = 9
	LeftHand      = 10
	RightShoulder = 31
	RightArm      = 32
	RightForeArm  = 33
	RightHand     = 34
	LeftUpLeg     = 55
	LeftLeg       = 56
	LeftFoot      = 57
	LeftToeBase   = 58
	LeftToeEnd    = 59
	RightUpLeg    = 60
	RightLeg      = 61
	RightFoot     = 62
	RightToeBase  = 63
	RightToeEnd   = 64

	// SkeletonJointCount is the number of sockets in the default skeleton.
	SkeletonJointCount = 65
)

var fingerNames = [...]string{"Thumb", "Index", "Middle", "Ring", "Pinky"}

// SkeletonNames returns the socket names of the default skeleton in index
// order.
func SkeletonNames() []string {
	names := make([]string, SkeletonJointCount)
	names[Hips] = "Hips"
	names[Spine] = "Spine"
	names[Spine1] = "Spine1"
	names[Spine2] = "Spine2"
	names[Neck] = "Neck"
	names[Head] = "Head"
	names[HeadTopEnd] = "HeadTop_End"

	for _, side := range []struct {
		prefix string
		base   int
	}{{"Left", LeftShoulder}, {"Right", RightShoulder}} {
		names[side.base] = side.prefix + "Shoulder"
		names[side.base+1] = side.prefix + "Arm"
		names[side.base+2] = side.prefix + "ForeArm"
		names[side.base+3] = side.prefix + "Hand"
		i := side.base + 4
		for _, finger := range fingerNames {
			for seg := 1; seg <= 4; seg++ {
				names[i] = side.prefix + "Hand" + finger + string(rune('0'+seg))
				i++
			}
		}
	}

	for _, side := range []struct {
		prefix string
		base   int
	}{{"Left", LeftUpLeg}, {"Right", RightUpLeg}} {
		names[side.base] = side.prefix + "UpLeg"
		names[side.base+1] = side.prefix + "Leg"
		names[side.base+2] = side.prefix + "Foot"
		names[side.base+3] = side.prefix + "ToeBase"
		names[side.base+4] = side.prefix + "Toe_End"
	}
	return names
}
