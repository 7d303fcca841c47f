package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go.typeforge.dev/ts2schema/schema"
)

func TestTrue(t *testing.T) {
	t.Parallel()

	s := schema.True()
	assert.Empty(t, s.Type)
	assert.Nil(t, s.Not)
}

func TestFalse(t *testing.T) {
	t.Parallel()

	s := schema.False()
	assert.NotNil(t, s.Not)
}

func TestRef(t *testing.T) {
	t.Parallel()

	s := schema.Ref("#/$defs/Pet")
	assert.Equal(t, "#/$defs/Pet", s.Ref)
}

func TestConst(t *testing.T) {
	t.Parallel()

	s := schema.Const("active")
	a := assert.New(t)
	a.NotNil(s.Const)
	a.Equal("active", *s.Const)
}

func TestRawValue(t *testing.T) {
	t.Parallel()

	raw := schema.RawValue(map[string]any{"a": 1})
	assert.JSONEq(t, `{"a":1}`, string(raw))
}

func TestRawValue_UnmarshalableReturnsNil(t *testing.T) {
	t.Parallel()

	raw := schema.RawValue(func() {})
	assert.Nil(t, raw)
}

func TestDefPointer(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "#/$defs/Pet", schema.DefPointer("Pet"))
}

func TestDefinitionPointer(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "#/definitions/Pet", schema.DefinitionPointer("Pet"))
}
