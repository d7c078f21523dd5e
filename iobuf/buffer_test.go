package iobuf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFirstCommandIdempotent(t *testing.T) {
	b := New()
	require.NoError(t, b.Append([]byte("look\x00")))

	c1, ok := b.First()
	require.True(t, ok)
	c2, ok := b.First()
	require.True(t, ok)
	require.Equal(t, c1, c2)
	require.Equal(t, "look", string(c1))

	b.Advance()
	_, ok = b.First()
	require.False(t, ok)
}

func TestLeadingNullsDiscarded(t *testing.T) {
	b := New()
	require.NoError(t, b.Append([]byte("\x00\x00look\x00")))

	cmd, ok := b.First()
	require.True(t, ok)
	require.Equal(t, "look", string(cmd))
}

func TestCRLFProducesNoEmptyCommand(t *testing.T) {
	b := New()
	require.NoError(t, b.Append([]byte("look\x00\x00say hi\x00")))

	cmd, ok := b.First()
	require.True(t, ok)
	require.Equal(t, "look", string(cmd))
	b.Advance()

	cmd, ok = b.First()
	require.True(t, ok)
	require.Equal(t, "say hi", string(cmd))
}

func TestPartialCommandCompactsAndWaits(t *testing.T) {
	b := New()
	require.NoError(t, b.Append([]byte("loo")))

	_, ok := b.First()
	require.False(t, ok)
	require.Equal(t, 0, b.Start)
	require.Equal(t, 3, b.End)

	require.NoError(t, b.Append([]byte("k\x00")))
	cmd, ok := b.First()
	require.True(t, ok)
	require.Equal(t, "look", string(cmd))
}

func TestFullBufferForceTruncates(t *testing.T) {
	old := MaxText
	MaxText = 8
	defer func() { MaxText = old }()

	b := New()
	require.NoError(t, b.Append([]byte("12345678")))

	cmd, ok := b.First()
	require.True(t, ok)
	require.Len(t, cmd, 7)
	require.Equal(t, "123456", string(cmd[:6]))
	require.Equal(t, byte(0), cmd[6])
}

func TestSingleCharMode(t *testing.T) {
	b := New()
	b.SingleChar = true
	require.NoError(t, b.Append([]byte("ab")))

	cmd, ok := b.First()
	require.True(t, ok)
	require.Equal(t, "a", string(cmd))

	b.Advance()
	cmd, ok = b.First()
	require.True(t, ok)
	require.Equal(t, "b", string(cmd))
}

func TestHasCommandMatchesFirst(t *testing.T) {
	b := New()
	require.False(t, b.HasCommand())
	require.NoError(t, b.Append([]byte("partial")))
	require.False(t, b.HasCommand())
	require.NoError(t, b.Append([]byte("\x00")))
	require.True(t, b.HasCommand())
}
