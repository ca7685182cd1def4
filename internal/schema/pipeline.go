package schema

// Schema turns one raw request part into its normalized value.
type Schema interface {
	Parse(f Fields) (any, error)
}

// Patch is implemented by normalized update bodies.
type Patch interface {
	Empty() bool
}

// Pipeline is a schema made of three explicit stages. Decode and Validate
// only inspect the input; Normalize runs once both reported nothing and is
// the single place where values are trimmed or coerced.
type Pipeline[R, N any] struct {
	Decode    func(Fields) (R, []Issue)
	Validate  func(R) []Issue
	Normalize func(R) (N, error)
}

// Run executes the stages in order. Issues from Decode and Validate are
// collected together into a *ViolationError.
func (p Pipeline[R, N]) Run(f Fields) (N, error) {
	var zero N

	raw, issues := p.Decode(f)
	issues = merge(issues, p.Validate(raw))
	if len(issues) > 0 {
		return zero, &ViolationError{Issues: issues}
	}

	return p.Normalize(raw)
}

// Parse implements Schema.
func (p Pipeline[R, N]) Parse(f Fields) (any, error) {
	return p.Run(f)
}
