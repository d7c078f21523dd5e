package trace

import (
	"fmt"
	"strings"
	"testing"

	"github.com/miseqsprime/neolith/frame"
	"github.com/stretchr/testify/require"
)

type fakeFuncInfo struct {
	name             string
	numArg, numLocal int
}

type fakeProgram struct {
	name  string
	funcs map[int]fakeFuncInfo
}

func (p *fakeProgram) Name() string { return p.name }
func (p *fakeProgram) Size() int    { return 100 }

func (p *fakeProgram) FunctionInfo(index int) (string, int, int, bool) {
	fi, ok := p.funcs[index]
	if !ok {
		return "", 0, 0, false
	}
	return fi.name, fi.numArg, fi.numLocal, true
}

func (p *fakeProgram) FormattedLine(pc int) string { return fmt.Sprintf("/%s:%d", p.name, pc) }

type fakeObject struct{ name string }

func (o *fakeObject) Name() string { return o.name }

type fakeFunp struct{ numArg, numLocal int }

func (f *fakeFunp) Arity() (int, int) { return f.numArg, f.numLocal }

func buildTwoFrameStack() (*frame.Stack, *fakeProgram, *fakeObject) {
	prog := &fakeProgram{name: "room", funcs: map[int]fakeFuncInfo{
		0: {"main", 0, 0},
		1: {"helper", 2, 1},
	}}
	obj := &fakeObject{name: "obj#1"}

	s := frame.NewStack(4)
	s.Push(frame.Function, frame.Registers{})
	s.Top().TableIndex = 0

	s.Push(frame.Function, frame.Registers{Prog: prog, CurrentObject: obj, PC: 10})
	s.Top().TableIndex = 1

	return s, prog, obj
}

func TestBuildUsesCallerSavedRegistersForInteriorFrames(t *testing.T) {
	s, prog, obj := buildTwoFrameStack()
	current := frame.Registers{Prog: prog, CurrentObject: obj, PC: 42}

	entries := Build(s, current, nil, nil, Options{})
	require.Len(t, entries, 2)

	require.Equal(t, "main", entries[0].Function)
	require.Equal(t, "room", entries[0].Program)
	require.Equal(t, "obj#1", entries[0].Object)
	require.Equal(t, "/room:10", entries[0].Location)

	require.Equal(t, "helper", entries[1].Function)
	require.Equal(t, "/room:42", entries[1].Location)
}

func TestBuildCollectsArgsAndLocalsWhenRequested(t *testing.T) {
	s, prog, obj := buildTwoFrameStack()
	current := frame.Registers{Prog: prog, CurrentObject: obj, PC: 42}

	args := func(depth, numArg int) []any {
		out := make([]any, numArg)
		for i := range out {
			out[i] = i
		}
		return out
	}
	locals := func(depth, numArg, numLocal int) []any {
		return make([]any, numLocal)
	}

	entries := Build(s, current, args, locals, Options{WithArgs: true, WithLocals: true})
	require.Empty(t, entries[0].Arguments)
	require.Nil(t, entries[0].Locals) // main has zero locals, never fetched
	require.Len(t, entries[1].Arguments, 2)
	require.Len(t, entries[1].Locals, 1)
}

func TestBuildHandlesCatchAndFunpFrames(t *testing.T) {
	s := frame.NewStack(4)
	s.Push(frame.Catch, frame.Registers{PC: 5})
	funp := &fakeFunp{numArg: 1, numLocal: 0}
	f, _ := s.Push(frame.Funp, frame.Registers{PC: 9})
	f.FunpCallable = funp

	entries := Build(s, frame.Registers{}, nil, nil, Options{})
	require.Equal(t, "CATCH", entries[0].Function)
	require.Equal(t, "<function>", entries[1].Function)
}

func TestDumpFormatsOneLinePerFrameAndFindsHeartbeat(t *testing.T) {
	entries := []Entry{
		{Function: "look", Program: "room", Object: "obj#1", Location: "/room:10"},
		{Function: "heart_beat", Program: "room", Object: "obj#1", Location: "/room:42"},
		{Function: "CATCH", Program: "room", Object: "obj#1", Location: "/room:43"},
	}

	out, heartbeat := Dump(entries)
	require.Equal(t, "obj#1", heartbeat)
	require.True(t, strings.Contains(out, "look() at /room:10, in program /room (object obj#1)"))
	require.True(t, strings.Contains(out, "(catch) at /room:43"))
}

func TestDumpObjectlessFrameUsesNoneMarker(t *testing.T) {
	entries := []Entry{{Function: "boot", Program: "master", Location: "/master:1"}}
	out, _ := Dump(entries)
	require.True(t, strings.Contains(out, "(object <none>)"))
}
