package l2triangles

import (
	"fmt"

	"github.com/banshee-data/tau.report/internal/gesture/l1pose"
)

// Triple names three skeleton sockets by index. A is the anchor vertex: the
// tau buffer's measuring stick runs from A to the circumcenter.
type Triple struct {
	A, B, C int
}

// Max returns the largest joint index referenced by the triple.
func (t Triple) Max() int {
	return max(t.A, t.B, t.C)
}

func (t Triple) String() string {
	return fmt.Sprintf("(%d,%d,%d)", t.A, t.B, t.C)
}

// DefaultTriples is the hand-authored triangle table over the 65-socket
// skeleton. Triangle identity is the position in this table and must not be
// reordered.
var DefaultTriples = []Triple{
	// Center symmetrical
	{l1pose.Head, l1pose.LeftUpLeg, l1pose.RightUpLeg},
	{l1pose.Head, l1pose.LeftToeBase, l1pose.RightToeBase},
	{l1pose.Spine1, l1pose.LeftShoulder, l1pose.RightShoulder},
	{l1pose.Spine1, l1pose.LeftHand, l1pose.RightHand},
	{l1pose.Spine1, l1pose.LeftUpLeg, l1pose.RightUpLeg},

	// Right side: head
	{l1pose.Head, l1pose.RightShoulder, l1pose.Neck},
	{l1pose.Head, l1pose.RightShoulder, l1pose.Spine1},
	{l1pose.Head, l1pose.RightArm, l1pose.RightHand},
	{l1pose.Head, l1pose.RightArm, l1pose.RightFoot},

	// Right side: chest
	{l1pose.Spine1, l1pose.RightShoulder, l1pose.Neck},
	{l1pose.Spine1, l1pose.RightShoulder, l1pose.RightHand},
	{l1pose.Spine1, l1pose.RightUpLeg, l1pose.RightFoot},
	{l1pose.Spine1, l1pose.RightArm, l1pose.RightHand},

	// Right side: hip
	{l1pose.RightUpLeg, l1pose.RightShoulder, l1pose.LeftUpLeg},
	{l1pose.RightUpLeg, l1pose.RightShoulder, l1pose.RightArm},
	{l1pose.RightUpLeg, l1pose.RightShoulder, l1pose.RightHand},
	{l1pose.RightUpLeg, l1pose.Neck, l1pose.RightShoulder},
	{l1pose.RightUpLeg, l1pose.RightArm, l1pose.RightHand},
	{l1pose.RightUpLeg, l1pose.RightLeg, l1pose.LeftLeg},
	{l1pose.RightUpLeg, l1pose.RightLeg, l1pose.RightFoot},

	// Right side: knee
	{l1pose.RightLeg, l1pose.RightShoulder, l1pose.RightArm},
	{l1pose.RightLeg, l1pose.RightShoulder, l1pose.LeftLeg},
	{l1pose.RightLeg, l1pose.RightUpLeg, l1pose.LeftUpLeg},
	{l1pose.RightLeg, l1pose.RightFoot, l1pose.LeftFoot},

	// Right side: ankle
	{l1pose.RightFoot, l1pose.RightShoulder, l1pose.LeftShoulder},
	{l1pose.RightFoot, l1pose.RightLeg, l1pose.LeftLeg},

	// Left side: head
	{l1pose.Head, l1pose.LeftShoulder, l1pose.Neck},
	{l1pose.Head, l1pose.LeftShoulder, l1pose.Spine1},
	{l1pose.Head, l1pose.LeftArm, l1pose.LeftHand},
	{l1pose.Head, l1pose.LeftArm, l1pose.LeftFoot},

	// Left side: chest
	{l1pose.Spine1, l1pose.LeftShoulder, l1pose.LeftArm},
	{l1pose.Spine1, l1pose.LeftShoulder, l1pose.LeftHand},
	{l1pose.Spine1, l1pose.LeftUpLeg, l1pose.LeftFoot},
	{l1pose.Spine1, l1pose.LeftArm, l1pose.LeftHand},

	// Left side: hip
	{l1pose.LeftUpLeg, l1pose.LeftShoulder, l1pose.RightUpLeg},
	{l1pose.LeftUpLeg, l1pose.LeftShoulder, l1pose.LeftArm},
	{l1pose.LeftUpLeg, l1pose.LeftShoulder, l1pose.LeftHand},
	{l1pose.LeftUpLeg, l1pose.Neck, l1pose.LeftShoulder},
	{l1pose.LeftUpLeg, l1pose.LeftArm, l1pose.LeftHand},
	{l1pose.LeftUpLeg, l1pose.LeftLeg, l1pose.RightLeg},
	{l1pose.LeftUpLeg, l1pose.LeftLeg, l1pose.LeftFoot},

	// Left side: leg
	{l1pose.LeftLeg, l1pose.LeftShoulder, l1pose.LeftArm},
	{l1pose.LeftLeg, l1pose.LeftShoulder, l1pose.RightLeg},
	{l1pose.LeftLeg, l1pose.LeftUpLeg, l1pose.RightUpLeg},
	{l1pose.LeftLeg, l1pose.LeftFoot, l1pose.RightFoot},

	// Left side: ankle
	{l1pose.LeftFoot, l1pose.LeftShoulder, l1pose.RightShoulder},
	{l1pose.LeftFoot, l1pose.LeftLeg, l1pose.RightLeg},

	// Cross center
	{l1pose.Head, l1pose.RightArm, l1pose.LeftFoot},
	{l1pose.Head, l1pose.LeftArm, l1pose.RightFoot},
	{l1pose.Head, l1pose.RightForeArm, l1pose.LeftHand},
	{l1pose.Head, l1pose.LeftArm, l1pose.RightHand},
	{l1pose.Spine1, l1pose.RightUpLeg, l1pose.LeftHand},
	{l1pose.Spine1, l1pose.LeftUpLeg, l1pose.RightHand},
	{l1pose.Spine1, l1pose.RightShoulder, l1pose.LeftHand},
	{l1pose.Spine1, l1pose.LeftShoulder, l1pose.RightHand},
	{l1pose.RightUpLeg, l1pose.LeftShoulder, l1pose.RightArm},
	{l1pose.LeftUpLeg, l1pose.RightShoulder, l1pose.LeftArm},
	{l1pose.RightUpLeg, l1pose.LeftShoulder, l1pose.RightHand},
	{l1pose.LeftUpLeg, l1pose.RightShoulder, l1pose.LeftHand},
	{l1pose.RightUpLeg, l1pose.LeftArm, l1pose.RightHand},
	{l1pose.LeftUpLeg, l1pose.RightArm, l1pose.LeftHand},
	{l1pose.RightUpLeg, l1pose.LeftLeg, l1pose.RightHand},
	{l1pose.LeftUpLeg, l1pose.RightLeg, l1pose.LeftHand},
	{l1pose.RightUpLeg, l1pose.LeftFoot, l1pose.RightLeg},
	{l1pose.LeftUpLeg, l1pose.RightFoot, l1pose.LeftLeg},
	{l1pose.RightLeg, l1pose.LeftShoulder, l1pose.RightArm},
	{l1pose.LeftLeg, l1pose.RightShoulder, l1pose.LeftArm},
}
