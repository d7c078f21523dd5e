package frame

// Resolved is the outcome of walking an inheritance chain down to its
// concrete definition.
type Resolved struct {
	Prog                *Program
	Entry               *FunctionEntry
	FunctionIndexOffset int
	VariableIndexOffset int
}

// resolveInheritance walks prog.Functions[index] while it names an
// inherited slot, accumulating the running function/variable index
// offsets and switching programs, until it lands on a concrete definition.
// Matches setup_new_frame/setup_inherited_frame's shared walk in frame.c;
// callers choose whether to start the accumulators at zero (SetupNewFrame)
// or keep ones already relative to an outer base (SetupInheritedFrame).
func resolveInheritance(prog *Program, index int, fiOffset, viOffset int) Resolved {
	entry := prog.entry(index)
	for entry.Inherited {
		inh := prog.Inherit[entry.InheritOffset]
		fiOffset += inh.FunctionIndexOffset
		viOffset += inh.VariableIndexOffset
		prog = inh.Prog
		index = entry.InheritIndex
		entry = prog.entry(index)
	}
	return Resolved{Prog: prog, Entry: entry, FunctionIndexOffset: fiOffset, VariableIndexOffset: viOffset}
}

// SetupNewFrame resolves inheritance starting from a fresh base (offsets
// reset to zero), records the resolved table index into the stack's top
// frame, and normalizes the argument/local layout on vs. It returns the
// resolved program and function entry so the caller can update its
// current-program register.
func (s *Stack) SetupNewFrame(prog *Program, index int, vs ValueStack) (Resolved, error) {
	return s.setupFrame(prog, index, 0, 0, vs)
}

// SetupInheritedFrame is identical to SetupNewFrame except the running
// index-offset accumulators are NOT reset: they are already relative to an
// outer non-inherited base established by an enclosing SetupNewFrame.
func (s *Stack) SetupInheritedFrame(prog *Program, index int, fiOffset, viOffset int, vs ValueStack) (Resolved, error) {
	return s.setupFrame(prog, index, fiOffset, viOffset, vs)
}

func (s *Stack) setupFrame(prog *Program, index int, fiOffset, viOffset int, vs ValueStack) (Resolved, error) {
	top := s.Top()
	if top == nil {
		return Resolved{}, ErrStackEmpty
	}

	r := resolveInheritance(prog, index, fiOffset, viOffset)

	top.Kind = Function
	top.TableIndex = r.Entry.TableIndex
	top.NumArg = r.Entry.NumArg
	top.NumLocal = r.Entry.NumLocal
	top.Saved.FunctionIndexOffset = r.FunctionIndexOffset
	top.Saved.VariableIndexOffset = r.VariableIndexOffset

	var n int
	if r.Entry.TrueVarargs {
		n = NormalizeVarargs(vs, top.NumArg, top.NumLocal)
	} else {
		n = NormalizeStrict(vs, top.NumArg, top.NumLocal)
	}
	top.NumLocalVariables = n

	return r, nil
}
