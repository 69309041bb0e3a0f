// Package testutil provides a minimal dag.Node implementation and a fluent
// graph builder for exercising the dag package in tests.
//
//	g := testutil.NewGraph().
//	    Add("a").
//	    Add("b", "a").
//	    Add("c", "b", "a")
//	batches, err := dag.BuildBatchesFrom(g.Task("c"))
package testutil
