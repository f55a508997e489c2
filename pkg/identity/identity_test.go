package identity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegisteredKeyIsNormalizedEmail(t *testing.T) {
	id := Registered(7, "  Ali@Example.COM ")
	require.Equal(t, "ali@example.com", id.Key())
	require.False(t, id.IsAnonymous())
	require.EqualValues(t, 7, id.UserID())
	require.True(t, id.Valid())
}

func TestAnonymousKeyIsToken(t *testing.T) {
	id := Anonymous(" tok-123 ")
	require.Equal(t, "tok-123", id.Key())
	require.True(t, id.IsAnonymous())
	require.EqualValues(t, 0, id.UserID())
	require.True(t, id.Valid())
}

func TestEmptyIdentityIsInvalid(t *testing.T) {
	require.False(t, Anonymous("").Valid())
	require.False(t, Anonymous("   ").Valid())
	require.False(t, Registered(0, "").Valid())
}

func TestNewAnonymousTokenIsUnique(t *testing.T) {
	a := NewAnonymousToken()
	b := NewAnonymousToken()
	require.NotEmpty(t, a)
	require.NotEqual(t, a, b)
}
