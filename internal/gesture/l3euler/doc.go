// Package l3euler owns Layer 3 (Euler lines) of the gesture data model.
//
// Responsibilities: per-triangle centroid, circumcenter and Euler line
// (centroid minus circumcenter), plus the optional visualisation geometry
// (edge vectors, bisectors, normal and the bisector-intersection
// circumcenter).
// Key types: Sample, DebugLines, Options.
//
// Dependency rule: L3 may depend on L1, L2 and geometry, but never on tau
// buffers (L4).
package l3euler
