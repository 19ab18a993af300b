// Package bar implements a linear finite element model of an axially loaded
// bar: uniform 2-node meshes, global stiffness assembly, Dirichlet constraints,
// a direct solve of K*u=F and element strain/stress recovery.
//
// A typical analysis goes through Run:
//
//	res, err := bar.Run(bar.Config{
//		Length:       1,
//		YoungModulus: 210e9,
//		Area:         0.01,
//		NumElements:  10,
//		AppliedForce: 1000,
//	})
//
// The individual stages (NewUniformMesh, Assemble, System.Constrain or
// Reduce, Solve and PostProcess) are exported for callers that need access
// to the intermediate systems.
package bar
