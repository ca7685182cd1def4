package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/JonathanThomaz/catalogo-produtos/internal/domain"
)

const msgExpectedObject = "Esperado um objeto JSON"

// ErrMalformedJSON is returned when a request body is not parseable JSON.
var ErrMalformedJSON = errors.New("malformed JSON body")

// Fields holds the undecoded content of one request part keyed by field name.
// Every part (path params, query string, JSON body) is brought to this shape
// before a schema sees it.
type Fields map[string]json.RawMessage

// FieldsFromJSON splits a JSON object body into its members. An empty body
// reads as an empty object. A non-object document is a schema violation;
// unparseable bytes are not.
func FieldsFromJSON(body []byte) (Fields, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return Fields{}, nil
	}

	if !json.Valid(body) {
		return nil, ErrMalformedJSON
	}

	if body[0] != '{' {
		return nil, &ViolationError{Issues: []Issue{{Message: msgExpectedObject}}}
	}

	f := Fields{}
	if err := json.Unmarshal(body, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}

	return f, nil
}

// FieldsFromStrings wraps plain string values, such as route variables.
func FieldsFromStrings(values map[string]string) Fields {
	f := make(Fields, len(values))
	for k, v := range values {
		f[k] = quote(v)
	}
	return f
}

// FieldsFromValues keeps the first value of every query parameter.
func FieldsFromValues(values url.Values) Fields {
	f := make(Fields, len(values))
	for k, vs := range values {
		if len(vs) == 0 {
			continue
		}
		f[k] = quote(vs[0])
	}
	return f
}

func quote(s string) json.RawMessage {
	b, _ := json.Marshal(s)
	return b
}

// stringField decodes a member that must be a JSON string. An absent member
// yields nil and no issue.
func stringField(f Fields, name string) (*string, *Issue) {
	raw, ok := f[name]
	if !ok {
		return nil, nil
	}

	var s string
	if len(raw) == 0 || raw[0] != '"' || json.Unmarshal(raw, &s) != nil {
		return nil, &Issue{Path: name, Message: domain.Message(name, "required")}
	}

	return &s, nil
}

// numberField decodes a member that must be a JSON number, keeping its exact
// literal so no precision is lost before validation.
func numberField(f Fields, name string) (*json.Number, *Issue) {
	raw, ok := f[name]
	if !ok {
		return nil, nil
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || !(raw[0] == '-' || (raw[0] >= '0' && raw[0] <= '9')) {
		return nil, &Issue{Path: name, Message: domain.Message(name, "required")}
	}

	n := json.Number(raw)
	return &n, nil
}

// unknownFields reports members not listed in known.
func unknownFields(f Fields, known ...string) *Issue {
	allowed := make(map[string]struct{}, len(known))
	for _, k := range known {
		allowed[k] = struct{}{}
	}

	var extra []string
	for k := range f {
		if _, ok := allowed[k]; !ok {
			extra = append(extra, "'"+k+"'")
		}
	}
	if len(extra) == 0 {
		return nil
	}

	sort.Strings(extra)
	return &Issue{Message: "Campo(s) não reconhecido(s): " + strings.Join(extra, ", ")}
}
