package slugkey

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		key, err := Generate()
		require.NoError(t, err)
		require.Len(t, key, KeyLength)
		for _, r := range key {
			require.True(t, strings.ContainsRune(alphabet, r), "beklenmeyen karakter: %q", r)
		}
		seen[key] = struct{}{}
	}
	// 36^12 uzayında 100 üretimde çakışma pratikte imkansız.
	require.Len(t, seen, 100)
}

func TestGenerateN(t *testing.T) {
	key, err := GenerateN(20)
	require.NoError(t, err)
	require.Len(t, key, 20)

	_, err = GenerateN(0)
	require.Error(t, err)
}
