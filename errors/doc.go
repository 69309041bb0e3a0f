// Package errors provides the structured error type shared by the loader,
// planner, HTTP service and command line. Every AppError carries a
// machine-readable code, an HTTP status and a process exit code, and
// FromGraph translates errors from the dag package into that form.
package errors
