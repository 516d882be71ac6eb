// Package l2triangles owns Layer 2 (Triangles) of the gesture data model.
//
// Responsibilities: the fixed table of joint index triples, projecting each
// pose sample onto that table, and the previous-frame set used for
// per-vertex deltas.
// Key types: Triple, Triangle, Set, Builder.
//
// Dependency rule: L2 may depend on L1 and geometry, but never on Euler
// lines (L3) or tau buffers (L4).
package l2triangles
