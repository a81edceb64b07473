// Package dynamo provides the core value types shared by the Lax-Wendroff
// engine and its collaborators.
//
// The package defines:
//
//   - [Field]: one physical quantity sampled at every grid point
//   - [Frame]: the complete field state of one time step
//   - [BoundaryMode]: the edge policy selected once per run
//   - [ConfigError], [StabilityWarning]: typed errors raised before stepping
//
// # Example
//
//	g, p, _ := grid.New(grid.Spec{XMin: 0, XMax: 1, N: 200, Speed: 1, Courant: 0.5})
//	scheme := stencil.NewAdvection(p)
//	s := sim.New(scheme, g, p, initial.NarrowGaussian{Center: 0.5, Width: 0.01})
//	result, _ := s.Run(sim.Config{Steps: 1000, Boundary: dynamo.Periodic})
//
// # Thread Safety
//
// Frames returned in a result are never mutated afterwards and may be read
// from any goroutine. The simulator itself is single-threaded.
package dynamo
