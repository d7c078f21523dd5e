package frame

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPushPopRestoresRegisters(t *testing.T) {
	s := NewStack(4)
	saved := Registers{PC: 7, FP: 3}
	_, err := s.Push(Function, saved)
	require.NoError(t, err)
	require.Equal(t, 1, s.Depth())

	restored, err := s.Pop()
	require.NoError(t, err)
	require.Equal(t, saved, restored)
	require.Equal(t, 0, s.Depth())
}

func TestPushFailsWhenFull(t *testing.T) {
	s := NewStack(2)
	_, err := s.Push(Function, Registers{})
	require.NoError(t, err)
	_, err = s.Push(Function, Registers{})
	require.NoError(t, err)

	_, err = s.Push(Function, Registers{})
	require.ErrorIs(t, err, ErrStackFull)
	require.NotZero(t, s.ErrorState()&StackFull)
}

func TestPopEmptyFails(t *testing.T) {
	s := NewStack(2)
	_, err := s.Pop()
	require.ErrorIs(t, err, ErrStackEmpty)
}

func TestDepthBoundsInvariant(t *testing.T) {
	s := NewStack(3)
	require.GreaterOrEqual(t, s.Depth(), 0)
	require.LessOrEqual(t, s.Depth(), s.Capacity())
	s.Push(Function, Registers{})
	s.Push(Function, Registers{})
	require.GreaterOrEqual(t, s.Depth(), 0)
	require.LessOrEqual(t, s.Depth(), s.Capacity())
}
