package schema

import "context"

// Part names the section of a request a schema applies to.
type Part int

const (
	Params Part = iota
	Query
	Body
)

func (p Part) String() string {
	switch p {
	case Params:
		return "params"
	case Query:
		return "query"
	case Body:
		return "body"
	}
	return "unknown"
}

// Target declares which schema validates which request part. Nil entries are
// skipped.
type Target struct {
	Params Schema
	Query  Schema
	Body   Schema
}

type contextKey struct {
	part Part
}

// WithValue stores the normalized value of a request part.
func WithValue(ctx context.Context, part Part, v any) context.Context {
	return context.WithValue(ctx, contextKey{part}, v)
}

// Value fetches the normalized value of a request part.
func Value[T any](ctx context.Context, part Part) (T, bool) {
	v, ok := ctx.Value(contextKey{part}).(T)
	return v, ok
}
