package interactive

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSnoopLoopPrevention(t *testing.T) {
	a := newFakeObject("a")
	b := newFakeObject("b")
	c := newFakeObject("c")

	require.True(t, SetSnoop(a, b))
	require.True(t, SetSnoop(b, c))
	require.True(t, SetSnoop(a, c))

	// c -> a would close the cycle a -> c -> a.
	require.False(t, SetSnoop(c, a))

	require.Equal(t, c, QuerySnooping(a))
	require.Equal(t, a, QuerySnoop(c))
}

func TestSnoopBreak(t *testing.T) {
	a := newFakeObject("a")
	b := newFakeObject("b")
	require.True(t, SetSnoop(a, b))
	require.Equal(t, b, QuerySnooping(a))
	require.Equal(t, a, QuerySnoop(b))

	require.True(t, SetSnoop(a, nil))
	require.Nil(t, QuerySnooping(a))
	require.Nil(t, QuerySnoop(b))
}

func TestSnoopConsistencyInvariant(t *testing.T) {
	a := newFakeObject("a")
	b := newFakeObject("b")
	require.True(t, SetSnoop(a, b))
	require.Equal(t, b.ip, a.ip.snoopOn)
	require.Equal(t, a.ip, b.ip.snoopBy)
}
