// Package l4tau owns Layer 4 (Tau) of the gesture data model.
//
// Responsibilities: the per-triangle motion buffer that follows an Euler
// line over time and derives tau (time to closure of its angular gap),
// tau-dot, a smoothed second difference and the growing/steady trend flags,
// for both the frame-to-frame and the whole-gesture baselines.
// Key types: Buffer, Series, Outcome, Reading.
//
// Timestamps are float seconds on a single session clock. A Buffer is not
// safe for concurrent use; the pipeline gives each one to a single worker
// per frame.
//
// Dependency rule: L4 may depend on geometry and L3 values, but never on
// the pipeline.
package l4tau
