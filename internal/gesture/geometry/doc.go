// Package geometry holds the closed-form circumcenter kernels used by the
// gesture pipeline.
//
// Responsibilities: triangle circumcenters in R² and R³, tetrahedron
// circumcenters, and the interpolation (xi/eta/zeta) coordinates that go with
// them. All functions are pure and allocate nothing.
//
// Every formula works in coordinates relative to vertex a, so rounding error
// scales with the distances between vertices rather than with their absolute
// position. Degenerate input (collinear or coplanar vertices) is reported as
// ErrDegenerateGeometry instead of propagating Inf or NaN.
//
// Dependency rule: geometry depends on nothing else in the module.
package geometry
