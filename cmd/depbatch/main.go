// Command depbatch plans the checkout of a project and its dependencies in
// parallel batches.
package main

import (
	"context"
	"os"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}
