package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInternerDeduplicates(t *testing.T) {
	in := NewInterner()
	a := in.Intern("Foo")
	b := in.Intern("Foo")
	c := in.Intern("Bar")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Equal(t, "Foo", in.MustLookup(a))
	assert.Equal(t, 3, in.Len())
}

func TestInternerEmptyStringIsNoStringID(t *testing.T) {
	in := NewInterner()
	assert.Equal(t, NoStringID, in.Intern(""))
}

func TestInternerNormalizesToNFC(t *testing.T) {
	in := NewInterner()
	composed := in.Intern("caf\u00e9")
	decomposed := in.Intern("cafe\u0301")
	assert.Equal(t, composed, decomposed)

	id, ok := in.Find("cafe\u0301")
	require.True(t, ok)
	assert.Equal(t, composed, id)
}

func TestInternerLookupUnknown(t *testing.T) {
	in := NewInterner()
	_, ok := in.Lookup(StringID(42))
	assert.False(t, ok)
	assert.Panics(t, func() { in.MustLookup(StringID(42)) })
}
