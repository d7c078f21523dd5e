package interp

import (
	"github.com/miseqsprime/neolith/interactive"
)

// Method is a registered handler a ReferenceInterpreter can Apply.
type Method func(ob interactive.Object, args []Value) (Value, error)

// ReferenceInterpreter is a minimal, dependency-free stand-in for the real
// bytecode interpreter, sufficient to drive the dispatcher and frame
// machinery's tests end to end without a real VM.
type ReferenceInterpreter struct {
	methods map[string]Method
	pending []Value
}

// NewReferenceInterpreter returns an interpreter with no registered
// methods; the dispatcher's "method absent" path is exercised by calling
// Apply for a name nobody registered.
func NewReferenceInterpreter() *ReferenceInterpreter {
	return &ReferenceInterpreter{methods: map[string]Method{}}
}

// Register installs a method callable by name via Apply.
func (r *ReferenceInterpreter) Register(name string, m Method) {
	r.methods[name] = m
}

// Push stages a value to be consumed by the next Apply/CallFunctionPointer
// call, mirroring the value-stack push/pop vocabulary the real interpreter
// exposes (push_svalue, copy_and_push_string, ...).
func (r *ReferenceInterpreter) Push(v Value) {
	r.pending = append(r.pending, v)
}

func (r *ReferenceInterpreter) popN(n int) []Value {
	if n > len(r.pending) {
		n = len(r.pending)
	}
	start := len(r.pending) - n
	args := append([]Value(nil), r.pending[start:]...)
	r.pending = r.pending[:start]
	return args
}

func (r *ReferenceInterpreter) Apply(name string, ob interactive.Object, nargs int, _ Origin) (*Value, error) {
	args := r.popN(nargs)
	m, ok := r.methods[name]
	if !ok {
		return nil, nil
	}
	v, err := m(ob, args)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *ReferenceInterpreter) CallFunctionPointer(fn interactive.Callable, nargs int) (*Value, error) {
	args := r.popN(nargs)
	v, err := fn.Call(args...)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *ReferenceInterpreter) EvalInstruction(p []byte) error {
	return nil
}
