package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cheap parameters keep the suite fast
func testHasher() *ArgonHash {
	return &ArgonHash{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}
}

func TestArgonHashCompare(t *testing.T) {
	a := testHasher()

	hash, err := a.Hash("hunter22")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=1024,t=1,p=1$"))

	ok, err := a.Compare("hunter22", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = a.Compare("hunter23", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestArgonHashSalted(t *testing.T) {
	a := testHasher()

	h1, err := a.Hash("same")
	require.NoError(t, err)
	h2, err := a.Hash("same")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
}

func TestArgonHashUsesEncodedParameters(t *testing.T) {
	hash, err := testHasher().Hash("pw")
	require.NoError(t, err)

	ok, err := New().Compare("pw", hash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestArgonHashInvalidFormat(t *testing.T) {
	a := testHasher()

	for _, h := range []string{"", "plain", "$2a$05$bcrypthashvalue", "$argon2id$v=19$m=x$salt$hash"} {
		_, err := a.Compare("pw", h)
		assert.ErrorIs(t, err, ErrInvalidHash, h)
	}
}
