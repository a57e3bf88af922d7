// Package driving defines the interfaces through which the outside
// world (HTTP handlers, the renewal scheduler, the CLI) drives the
// core services.
package driving
