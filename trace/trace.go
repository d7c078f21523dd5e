// Package trace formats the call-frame stack into the two shapes callers
// need: a textual dump for logs and error reports, and a structured slice
// of entries for introspection efuns.
package trace

import (
	"github.com/miseqsprime/neolith/frame"
)

// Options mirrors the DUMP_WITH_ARGS / DUMP_WITH_LOCALVARS bits that
// control how much of each frame gets captured.
type Options struct {
	WithArgs   bool
	WithLocals bool
}

// Entry is one frame's trace record: a function identity plus the
// program/object/location it executed in, and optionally its arguments
// and locals.
type Entry struct {
	Function  string
	Program   string
	Object    string
	Location  string
	Arguments []any
	Locals    []any
}

// ArgsFunc fetches the first numArg values belonging to the frame at the
// given stack depth. Depth 0 is the bottom of the stack.
type ArgsFunc func(depth, numArg int) []any

// LocalsFunc fetches the numLocal values following the arguments for the
// frame at the given stack depth.
type LocalsFunc func(depth, numArg, numLocal int) []any

// functionNamer is satisfied by a frame.Program that can resolve a
// function-table index to a name and arity. *frame.Program implements it.
type functionNamer interface {
	FunctionInfo(index int) (name string, numArg, numLocal int, ok bool)
}

// formattedLiner is satisfied by a frame.Program that can translate a pc
// into a "/file:line" string. *frame.Program implements it.
type formattedLiner interface {
	FormattedLine(pc int) string
}

// funpArity is satisfied by a reified function-pointer callable that
// knows its own arity.
type funpArity interface {
	Arity() (numArg, numLocal int)
}

// namedObject is satisfied by anything with a Name, matching
// interactive.Object without importing it.
type namedObject interface {
	Name() string
}

// Build walks the call-frame stack bottom to top and produces exactly one
// Entry per live frame. Each frame takes its program/object/location from
// the next frame's saved registers; the topmost frame, presently executing,
// takes them from current, the live registers, since nothing has been
// pushed to save them yet.
func Build(stack *frame.Stack, current frame.Registers, args ArgsFunc, locals LocalsFunc, opts Options) []Entry {
	depth := stack.Depth()
	if depth <= 0 {
		return nil
	}
	entries := make([]Entry, 0, depth)
	for i := 0; i < depth; i++ {
		f := stack.At(i)
		var ctx frame.Registers
		if i+1 < depth {
			ctx = stack.At(i + 1).Saved
		} else {
			ctx = current
		}
		entries = append(entries, buildEntry(f, ctx, i, args, locals, opts))
	}
	return entries
}

func buildEntry(f *frame.Frame, ctx frame.Registers, depth int, args ArgsFunc, locals LocalsFunc, opts Options) Entry {
	e := Entry{}
	numArg, numLocal := -1, -1

	switch f.Kind {
	case frame.Function:
		if ctx.Prog != nil {
			if fi, ok := ctx.Prog.(functionNamer); ok {
				if name, na, nl, ok2 := fi.FunctionInfo(f.TableIndex); ok2 {
					e.Function = name
					numArg, numLocal = na, nl
				}
			}
		}
	case frame.Catch:
		e.Function = "CATCH"
	case frame.Fake:
		e.Function = "<function>"
	case frame.Funp:
		e.Function = "<function>"
		if fa, ok := f.FunpCallable.(funpArity); ok {
			numArg, numLocal = fa.Arity()
		}
	}

	if ctx.Prog != nil {
		e.Program = ctx.Prog.Name()
	}
	if no, ok := ctx.CurrentObject.(namedObject); ok {
		e.Object = no.Name()
	}
	e.Location = formatLocation(ctx.Prog, ctx.PC)

	if opts.WithArgs && numArg >= 0 && args != nil {
		e.Arguments = args(depth, numArg)
	}
	if opts.WithLocals && numLocal > 0 && numArg >= 0 && locals != nil {
		e.Locals = locals(depth, numArg, numLocal)
	}
	return e
}

func formatLocation(prog frame.Program, pc int) string {
	if prog == nil {
		return "(no program)"
	}
	if fl, ok := prog.(formattedLiner); ok {
		return fl.FormattedLine(pc)
	}
	return "(compiled program)"
}
