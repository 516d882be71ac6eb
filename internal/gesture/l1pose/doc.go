// Package l1pose owns Layer 1 (Pose) of the gesture data model.
//
// Responsibilities: the per-frame skeleton snapshot (named joints with
// positions and orientations), the short raw-sample history kept alongside
// it, and the Source contract through which the engine or game layer hands
// frames to the pipeline.
// Key types: Sample, Joint, Rotator, History, Source.
//
// Dependency rule: L1 depends only on geometry-free value types. It never
// imports triangles, Euler lines, or tau buffers.
package l1pose
