package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAuthenticateRoundTrip(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.SetPassword("wizard", "hunter2"))
	require.NoError(t, s.Authenticate("wizard", "hunter2"))
}

func TestAuthenticateWrongPassword(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.SetPassword("wizard", "hunter2"))
	require.ErrorIs(t, s.Authenticate("wizard", "wrong"), ErrWrongPassword)
}

func TestAuthenticateUnknownUser(t *testing.T) {
	s := NewStore()
	require.ErrorIs(t, s.Authenticate("nobody", "whatever"), ErrUnknownUser)
}

func TestRemoveRevokesCredential(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.SetPassword("wizard", "hunter2"))
	s.Remove("wizard")
	require.ErrorIs(t, s.Authenticate("wizard", "hunter2"), ErrUnknownUser)
}
