// Package google provides shared Google API plumbing: OAuth client
// construction, the code-exchange flow, rate limiting, and error
// translation from googleapi responses to domain errors.
package google
