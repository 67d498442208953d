// Package compute provides the data-parallel kernel runner shared by
// every per-cell LB operator.
//
// Kernels never loop over cells directly; they call [ParallelFor], which
// chunks the index range across runtime.NumCPU() goroutines and waits for
// all of them before returning. This keeps per-kernel cell outputs free of
// any dependency on sibling cells within the same kernel invocation.
package compute
