// Package dag resolves a dependency graph over abstract nodes into an ordered
// sequence of batches that are safe to process in parallel.
//
// Participants implement [Node]. On top of that the package provides:
//   - Fold / ApplyDependencies: depth-first, post-order folds over the
//     dependency subgraph of a node, with cycle detection
//   - DependenciesFulfilled: a short-circuiting fulfillment check
//   - DependsOnRecursive / BuildRecursiveDependencySet: transitive closures
//   - BuildBatches / BuildBatchesFrom: Kahn-style leveling into batches
//
// The working set handed to BuildBatches must be closed under DependsOn.
// A dependency outside the set can never be satisfied and fails the run with
// a [ResolutionError], exactly like a cycle or a permanently unfulfilled node:
//
//	working, err := dag.BuildRecursiveDependencySet(roots, true)
//	if err != nil {
//	    return err
//	}
//	batches, err := dag.BuildBatches(working)
//
// Batches must be consumed in order. Nodes inside one batch do not depend on
// each other and may be processed concurrently by the caller.
//
// Traversal is recursive, so the usable graph depth is bounded by the
// goroutine stack. The package keeps no state between calls and never logs.
package dag
