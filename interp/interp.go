// Package interp defines the contracts the dispatcher and frame machinery
// need from the external bytecode interpreter, the I/O layer, and the
// object layer. Per spec, those three subsystems are out of scope — this
// package specifies only the calls this core makes into them, plus a small
// in-memory reference implementation (ReferenceInterpreter) used by tests
// and by the demo entrypoint in cmd/neolithd.
package interp

import "github.com/miseqsprime/neolith/interactive"

// Origin mirrors the ORIGIN_* constants passed to apply(), identifying why
// a method call is being made (driver, simul-efun, local call...).
type Origin int

const (
	OriginDriver Origin = iota
	OriginLocal
	OriginEfun
)

// Value is a single interpreter register value — this core never inspects
// its contents, only moves it around.
type Value = any

// Interpreter is the contract toward the bytecode interpreter proper.
type Interpreter interface {
	// Apply calls a named method on ob with nargs already pushed onto the
	// value stack. Returns nil if the method does not exist.
	Apply(name string, ob interactive.Object, nargs int, origin Origin) (*Value, error)
	// CallFunctionPointer calls a reified callable the same way, but
	// without a name/object lookup.
	CallFunctionPointer(fn interactive.Callable, nargs int) (*Value, error)
	// EvalInstruction transfers control to the opcode loop starting at p,
	// returning when the current frame completes or a failure is raised.
	EvalInstruction(p []byte) error
}

// Editor is the contract toward the line editor: whether one is active for
// a given interactive state, and delivery of a raw command line to it. A
// nil Editor means no editor subsystem is wired, matching the line editor's
// listed out-of-scope status — the dispatcher simply never takes that
// branch.
type Editor interface {
	Active(ip *interactive.State) bool
	Deliver(ip *interactive.State, command string) error
}

// Parser is the contract toward the default command parser. Parse reports
// whether command matched some verb; a false match triggers notify-fail
// resolution. A nil Parser means no parser is wired.
type Parser interface {
	Parse(ob interactive.Object, command string) (matched bool, err error)
}

// ArgPusher is an optional capability an Interpreter may implement to
// accept a single argument value ahead of an Apply call. The value-stack
// vocabulary (push_svalue and friends) is out of scope for this module's
// own interfaces; ArgPusher is the narrow bridge the dispatcher uses to
// pass the one argument its own calls need (the command line passed to
// process_input) without reaching into interpreter internals.
type ArgPusher interface {
	Push(v Value)
}

// IOLayer is the contract toward the telnet/console transport.
type IOLayer interface {
	FlushMessage(ip *interactive.State) error
	TellObject(ob interactive.Object, text string) error
	SetConsoleEcho(on bool)
	SetTelnetEcho(ob interactive.Object, on bool)
	SetTelnetSingleChar(ip *interactive.State, on bool)
	// TelnetNeg applies one-shot option negotiation/filtering to raw,
	// writing the filtered result into dst and returning the slice used.
	TelnetNeg(dst []byte, raw []byte) []byte
}
