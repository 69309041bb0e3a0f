// Package endpoint provides the operational handlers of the plan service:
// /health and /version.
package endpoint
