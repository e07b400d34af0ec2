package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringSliceValue(t *testing.T) {
	v, err := StringSlice{"a", "b"}.Value()
	require.NoError(t, err)
	assert.Equal(t, "a,b", v)

	v, err = StringSlice(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "", v)

	_, err = StringSlice{"a,b"}.Value()
	assert.Error(t, err)
}

func TestStringSliceScan(t *testing.T) {
	var s StringSlice

	require.NoError(t, s.Scan("x,y"))
	assert.Equal(t, StringSlice{"x", "y"}, s)

	require.NoError(t, s.Scan([]byte("z")))
	assert.Equal(t, StringSlice{"z"}, s)

	require.NoError(t, s.Scan(""))
	assert.Empty(t, s)
	assert.NotNil(t, s)

	require.NoError(t, s.Scan(nil))
	assert.NotNil(t, s)

	assert.Error(t, s.Scan(42))
}

func TestStringSliceSetOps(t *testing.T) {
	s := StringSlice{"a"}

	s = s.Add("b").Add("a")
	assert.Equal(t, StringSlice{"a", "b"}, s)
	assert.True(t, s.Has("b"))

	removed := s.Remove("a")
	assert.Equal(t, StringSlice{"b"}, removed)
	assert.Equal(t, StringSlice{"a", "b"}, s, "Remove must not mutate the receiver")

	assert.Empty(t, StringSlice{"a", "a"}.Remove("a"))
}
