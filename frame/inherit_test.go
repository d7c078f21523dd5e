package frame

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func buildInheritanceChain() (*Program, *Program, *Program) {
	r := &Program{NameStr: "R", Functions: []FunctionEntry{
		{Name: "foo", NumArg: 2, NumLocal: 1},
	}}
	q := &Program{NameStr: "Q", Functions: []FunctionEntry{
		{Name: "foo", Inherited: true, InheritOffset: 0, InheritIndex: 0},
	}, Inherit: []InheritEntry{
		{Prog: r, FunctionIndexOffset: 10, VariableIndexOffset: 5},
	}}
	p := &Program{NameStr: "P", Functions: make([]FunctionEntry, 8)}
	p.Functions[7] = FunctionEntry{Name: "foo", Inherited: true, InheritOffset: 0, InheritIndex: 0}
	p.Inherit = []InheritEntry{
		{Prog: q, FunctionIndexOffset: 100, VariableIndexOffset: 50},
	}
	return p, q, r
}

func TestInheritanceResolutionDeterminism(t *testing.T) {
	p, _, r := buildInheritanceChain()

	vs := &sliceStack{}
	s := NewStack(4)
	s.Push(Function, Registers{})

	res1, err := s.SetupNewFrame(p, 7, vs)
	require.NoError(t, err)

	vs2 := &sliceStack{}
	s2 := NewStack(4)
	s2.Push(Function, Registers{})
	res2, err := s2.SetupNewFrame(p, 7, vs2)
	require.NoError(t, err)

	require.Equal(t, res1, res2)
	require.Same(t, r, res1.Prog)
	require.Equal(t, 100+10, res1.FunctionIndexOffset)
	require.Equal(t, 50+5, res1.VariableIndexOffset)
}

func TestInheritanceTwoHopAccumulation(t *testing.T) {
	// P -> Q -> R, each hop accumulating its own offset.
	p, q, r := buildInheritanceChain()
	_ = q

	vs := &sliceStack{}
	s := NewStack(4)
	s.Push(Function, Registers{})
	res, err := s.SetupNewFrame(p, 7, vs)
	require.NoError(t, err)

	require.Same(t, r, res.Prog)
	require.Equal(t, 100+10, res.FunctionIndexOffset)
	require.Equal(t, 50+5, res.VariableIndexOffset)
	require.Equal(t, r.Functions[0].NumArg, res.Entry.NumArg)
}
