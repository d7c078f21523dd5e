package frame

import "fmt"

// FunctionEntry describes one function-table slot: either a concrete
// definition (NumArg/NumLocal/TrueVarargs meaningful) or an inherited-name
// marker pointing at a slot in some other program via Inherit.
type FunctionEntry struct {
	Name string

	Inherited     bool
	InheritOffset int // index into the owning Program's Inherit table
	InheritIndex  int // index to resolve next, within the inherited program

	TableIndex  int // runtime function-table index once resolved
	NumArg      int
	NumLocal    int
	TrueVarargs bool
}

// InheritEntry is one row of a program's inherit table: the inherited
// program plus the running index offsets grafted onto any of its function
// or variable references.
type InheritEntry struct {
	Prog                *Program
	FunctionIndexOffset int
	VariableIndexOffset int
}

// Program is a compiled bytecode program: named, sized (for pc bounds
// checks and line-number translation), with a function table supporting
// multi-hop inheritance and a line table for the trace formatter.
type Program struct {
	NameStr   string
	SizeBytes int
	Functions []FunctionEntry
	Inherit   []InheritEntry
	Lines     *LineTable
}

func (p *Program) Name() string { return p.NameStr }
func (p *Program) Size() int    { return p.SizeBytes }

func (p *Program) entry(index int) *FunctionEntry { return &p.Functions[index] }

// FunctionInfo resolves a function-table index to the trace formatter's
// name/arity fields. ok is false for an out-of-range index.
func (p *Program) FunctionInfo(index int) (name string, numArg, numLocal int, ok bool) {
	if index < 0 || index >= len(p.Functions) {
		return "", 0, 0, false
	}
	e := p.Functions[index]
	return e.Name, e.NumArg, e.NumLocal, true
}

// FormattedLine resolves pc to a "/file:line" string the way find_line's
// callers expect, falling back to the same diagnostic text find_line's
// error codes produce when no line info is available.
func (p *Program) FormattedLine(pc int) string {
	file, line, status := p.Lines.translate(pc)
	switch status {
	case lineOK:
		return fmt.Sprintf("/%s:%d", file, line)
	case lineIncludesTooDeep:
		return "(includes too deep)"
	default:
		return "(no line numbers)"
	}
}
