package driven

// Sanitiser reduces raw exported HTML to an allow-listed subset.
// Sanitisation is pure and deterministic: the same input always yields
// the same output. Disallowed markup is stripped, never an error.
type Sanitiser interface {
	Sanitise(rawHTML string) string
}
