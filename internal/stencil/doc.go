// Package stencil implements the Lax-Wendroff interior updates.
//
// Every [Scheme] advances a set of fields by one time step on the interior
// index range [Reach, N-Reach). Edge points are never read as outputs nor
// written; they belong to the boundary package.
//
//   - [Coupled]: first-order system E, v = dE/dt, w = dE/dx
//   - [Maxwell]: transverse E, H pair
//   - [Advection]: scalar dE/dt = -c dE/dx
//   - [Dispersive]: three-level scheme with a five-point fourth-difference term
//
// All updates are explicit and cost O(N) per step.
package stencil
