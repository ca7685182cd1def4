package schema

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldsFromJSON(t *testing.T) {
	t.Run("object", func(t *testing.T) {
		f, err := FieldsFromJSON([]byte(` {"a":1,"b":"x"} `))
		require.NoError(t, err)
		assert.Len(t, f, 2)
		assert.JSONEq(t, `"x"`, string(f["b"]))
	})

	for _, in := range []string{"", "  \n "} {
		t.Run("empty body "+in, func(t *testing.T) {
			f, err := FieldsFromJSON([]byte(in))
			require.NoError(t, err)
			assert.NotNil(t, f)
			assert.Empty(t, f)
		})
	}

	for _, in := range []string{"[]", `"text"`, "42", "null"} {
		t.Run("not an object "+in, func(t *testing.T) {
			_, err := FieldsFromJSON([]byte(in))
			assert.Equal(t, []string{"Esperado um objeto JSON"}, violations(t, err))
		})
	}

	for _, in := range []string{"{", `{"a":}`, "{'a':1}"} {
		t.Run("malformed "+in, func(t *testing.T) {
			_, err := FieldsFromJSON([]byte(in))
			assert.ErrorIs(t, err, ErrMalformedJSON)
		})
	}
}

func TestIssueDetails(t *testing.T) {
	err := &ViolationError{Issues: []Issue{
		{Message: "object"},
		{Path: "price", Message: "bad"},
	}}

	assert.Equal(t, []string{"object", "price: bad"}, err.Details())
	assert.Equal(t, "schema violation: object; price: bad", err.Error())
}

func TestMergeSkipsDecodedPaths(t *testing.T) {
	got := merge(
		[]Issue{{Path: "title", Message: "type"}, {Message: "unknown"}},
		[]Issue{{Path: "title", Message: "rule"}, {Path: "price", Message: "rule"}},
	)

	assert.Equal(t, []Issue{
		{Path: "title", Message: "type"},
		{Message: "unknown"},
		{Path: "price", Message: "rule"},
	}, got)
}

func TestContextValues(t *testing.T) {
	ctx := WithValue(context.Background(), Params, ProductID{ID: 3})

	id, ok := Value[ProductID](ctx, Params)
	assert.True(t, ok)
	assert.Equal(t, 3, id.ID)

	_, ok = Value[ProductID](ctx, Body)
	assert.False(t, ok)

	_, ok = Value[ProductQuery](ctx, Params)
	assert.False(t, ok)
}
