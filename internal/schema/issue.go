package schema

import (
	"strings"

	"github.com/JonathanThomaz/catalogo-produtos/internal/domain"
)

// Issue is one violated rule. Path is empty for object-level problems.
type Issue struct {
	Path    string
	Message string
}

func (i Issue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

// ViolationError is returned when input breaks one or more schema rules.
type ViolationError struct {
	Issues []Issue
}

func (e *ViolationError) Error() string {
	return "schema violation: " + strings.Join(e.Details(), "; ")
}

// Details renders every issue as "<path>: <message>".
func (e *ViolationError) Details() []string {
	details := make([]string, 0, len(e.Issues))
	for _, i := range e.Issues {
		details = append(details, i.String())
	}
	return details
}

func fromValidation(errs domain.ValidationErrors) []Issue {
	if len(errs) == 0 {
		return nil
	}

	issues := make([]Issue, 0, len(errs))
	for _, e := range errs {
		issues = append(issues, Issue{Path: e.Field, Message: e.Message})
	}
	return issues
}

// merge appends rule issues for fields that were not already reported by the
// decode stage.
func merge(decoded, rules []Issue) []Issue {
	seen := make(map[string]struct{}, len(decoded))
	for _, i := range decoded {
		if i.Path != "" {
			seen[i.Path] = struct{}{}
		}
	}

	for _, i := range rules {
		if _, ok := seen[i.Path]; ok {
			continue
		}
		decoded = append(decoded, i)
	}
	return decoded
}
