// Package interactive models the per-connected-user state the dispatcher
// and frame machinery operate on: the input buffer, mode flags, any pending
// redirect, the notify-fail slot, the prompt, and the snoop graph.
package interactive

import (
	"time"

	"github.com/miseqsprime/neolith/iobuf"
)

// Flags is a bitset mirroring the original driver's iflags field.
type Flags uint32

const (
	NoEcho Flags = 1 << iota
	NoEsc
	SingleChar
	CmdInBuf
	HasCmdTurn
	HasWritePrompt
	HasProcessInput
	NotifyFailFunc
	WasSingleChar
)

func (f *Flags) has(bit Flags) bool  { return *f&bit != 0 }
func (f *Flags) set(bit Flags)       { *f |= bit }
func (f *Flags) clear(bit Flags)     { *f &^= bit }
func (f *Flags) assign(bit Flags, v bool) {
	if v {
		f.set(bit)
	} else {
		f.clear(bit)
	}
}

// ConnectionType distinguishes the local console session from a remote
// peer reached over telnet or the websocket gateway; echo/single-char
// control is routed differently depending on which one a state belongs to.
type ConnectionType int

const (
	Console ConnectionType = iota
	Telnet
	WebSocket
)

// RedirectFlags is the subset of Flags a Redirect install may carry.
type RedirectFlags = Flags

// Redirect is a one-shot capture of the next command by a callable, as
// installed by the public input-to/get_char style API.
type Redirect struct {
	Callable  Callable
	CarryArgs []any
	Flags     RedirectFlags
}

// Callable is the minimal contract a redirect target or notify-fail
// function needs; the real implementation lives with the external
// Interpreter (see package interp).
type Callable interface {
	Call(args ...any) (any, error)
}

// FailMessage is the tagged StringOrCallable notify-fail slot: exactly one
// of String or Func is meaningful at a time, gated by Flags&NotifyFailFunc.
type FailMessage struct {
	String string
	Func   Callable
}

// Object is the minimal contract this package needs from the object layer:
// liveness and a stable back-pointer to its own interactive state.
type Object interface {
	Destructed() bool
	Interactive() *State
	SetInteractive(*State)
	Name() string
}

// State is one connected user's interactive record.
type State struct {
	Owner          Object
	Input          *iobuf.Buffer
	Flags          Flags
	Connection     ConnectionType
	PendingRedirect *Redirect
	FailMessage    FailMessage
	Prompt         string
	LastTime       time.Time

	snoopBy *State // who is snooping on me
	snoopOn *State // who I am snooping
}

// New creates an interactive state owned by ob.
func New(ob Object) *State {
	return &State{
		Owner: ob,
		Input: iobuf.New(),
		Prompt: "> ",
	}
}

// HasFlag reports whether the given flag bit is set.
func (s *State) HasFlag(bit Flags) bool { return s.Flags.has(bit) }

// SetFlag sets or clears the given flag bit.
func (s *State) SetFlag(bit Flags, v bool) { s.Flags.assign(bit, v) }

// SnoopBy returns the state snooping on this one, or nil.
func (s *State) SnoopBy() *State { return s.snoopBy }

// SnoopOn returns the state this one is snooping, or nil.
func (s *State) SnoopOn() *State { return s.snoopOn }

// Close unlinks this state from any snoop peers, as required at
// disconnect/destruction time so no dangling snoopBy/snoopOn reference
// survives it.
func (s *State) Close() {
	if s.snoopOn != nil {
		s.snoopOn.snoopBy = nil
		s.snoopOn = nil
	}
	if s.snoopBy != nil {
		s.snoopBy.snoopOn = nil
		s.snoopBy = nil
	}
}
