package security

import (
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateResetPassword(t *testing.T) {
	seen := map[string]bool{}

	for range 200 {
		p, err := GenerateResetPassword()
		require.NoError(t, err)
		require.Len(t, p, 8)

		var upper, digit int
		for _, r := range p {
			switch {
			case unicode.IsUpper(r):
				upper++
			case unicode.IsDigit(r):
				digit++
			default:
				assert.True(t, strings.ContainsRune(lowerChars, r), "unexpected rune %q in %s", r, p)
			}
		}

		assert.Equal(t, 1, upper, p)
		assert.Equal(t, 1, digit, p)
		seen[p] = true
	}

	assert.Greater(t, len(seen), 190)
}
