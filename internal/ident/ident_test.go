package ident

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_IsValidAndUnique(t *testing.T) {
	a, b := New(), New()
	assert.Len(t, a, 24)
	assert.True(t, Valid(a))
	assert.NotEqual(t, a, b)
}

func TestNew_IsTimeOrdered(t *testing.T) {
	a := New()
	b := New()
	assert.Less(t, a, b, "later identifiers should sort after earlier ones")
}

func TestParse(t *testing.T) {
	id, err := Parse("  65A1B2C3D4E5F60718293A4B ")
	require.NoError(t, err)
	assert.Equal(t, "65a1b2c3d4e5f60718293a4b", id)

	_, err = Parse("not-an-id")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformed))

	_, err = Parse("")
	assert.True(t, errors.Is(err, ErrMalformed))
}

func TestParseAll(t *testing.T) {
	ids, err := ParseAll([]string{"65a1b2c3d4e5f60718293a4b", "65a1b2c3d4e5f60718293a4c"})
	require.NoError(t, err)
	assert.Len(t, ids, 2)

	_, err = ParseAll([]string{"65a1b2c3d4e5f60718293a4b", "zz"})
	assert.True(t, errors.Is(err, ErrMalformed))

	ids, err = ParseAll(nil)
	require.NoError(t, err)
	assert.Empty(t, ids)
}
