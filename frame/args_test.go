package frame

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type sliceStack struct {
	items []any
}

func (s *sliceStack) Len() int { return len(s.items) }

func (s *sliceStack) PopLast(n int) []any {
	start := len(s.items) - n
	out := append([]any(nil), s.items[start:]...)
	s.items = s.items[:start]
	return out
}

func (s *sliceStack) PushUndefineds(n int) {
	for i := 0; i < n; i++ {
		s.items = append(s.items, nil)
	}
}

func (s *sliceStack) PushArray(items []any) {
	s.items = append(s.items, append([]any{}, items...))
}

func TestNormalizeStrictExcessArgsPopped(t *testing.T) {
	vs := &sliceStack{items: []any{1, 2, 3, 4, 5}}
	n := NormalizeStrict(vs, 2, 3)
	require.Equal(t, 5, n)
	// 3 excess popped, 3 locals pushed: net length = 2(kept) + 3(locals) = 5
	require.Len(t, vs.items, 5)
}

func TestNormalizeStrictMissingArgsPadded(t *testing.T) {
	vs := &sliceStack{items: []any{1}}
	n := NormalizeStrict(vs, 3, 2)
	require.Equal(t, 5, n)
	// 1 actual + (2 - (1-3)) = 4 undefineds pushed -> total 1+4 = 5
	require.Len(t, vs.items, 1+(2-(1-3)))
}

func TestNormalizeVarargsAggregatesTrailing(t *testing.T) {
	vs := &sliceStack{items: []any{"a", "b", "c", "d"}}
	n := NormalizeVarargs(vs, 2, 1)
	require.Equal(t, 3, n)
	// formal 0 = "a", formal1(varargs array) = ["b","c","d"], then 1 local undefined
	require.Len(t, vs.items, 3)
	arr, ok := vs.items[1].([]any)
	require.True(t, ok)
	require.Equal(t, []any{"b", "c", "d"}, arr)
	require.Equal(t, "a", vs.items[0])
	require.Nil(t, vs.items[2])
}

func TestNormalizeVarargsShortfallGetsEmptyArray(t *testing.T) {
	vs := &sliceStack{items: []any{"a"}}
	NormalizeVarargs(vs, 3, 0)
	require.Len(t, vs.items, 3)
	require.Equal(t, "a", vs.items[0])
	require.Nil(t, vs.items[1]) // padded undefined
	arr, ok := vs.items[2].([]any)
	require.True(t, ok)
	require.Empty(t, arr)
}
