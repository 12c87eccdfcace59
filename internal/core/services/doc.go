// Package services implements the driving port interfaces.
// Services contain the push/pull reconciliation logic and orchestrate
// calls to driven ports (adapters).
//
// Services are pure Go with no knowledge of HTTP, files or terminals.
package services
