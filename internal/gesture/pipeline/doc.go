// Package pipeline provides the frame orchestrator for the gesture
// pipeline.
//
// This package is the composition root: it imports from the layer packages
// (l1pose, l2triangles, l3euler, l4tau) and the ambient config, clock and
// monitoring packages, but none of those import pipeline/.
//
// Per frame it records the pose, builds the triangle set, applies the
// update-interval gate, extracts Euler lines and advances one tau buffer
// per triangle. Buffers are created lazily the first time a triangle has a
// usable Euler line and live for the rest of the session.
package pipeline
