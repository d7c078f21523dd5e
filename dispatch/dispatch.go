// Package dispatch implements the per-tick interactive command loop: next-
// user selection, one-command extraction, the routing ladder (escape,
// editor, redirect, preprocessor/parser), notify-fail resolution, and
// prompt emission.
package dispatch

import (
	"time"

	"github.com/miseqsprime/neolith/interactive"
	"github.com/miseqsprime/neolith/interp"
	"github.com/miseqsprime/neolith/logging"
	"github.com/miseqsprime/neolith/users"
)

// Config is the subset of the driver's typed configuration the dispatcher
// itself consults.
type Config struct {
	MaxText            int
	DefaultFailMessage string
	StripEscapes       bool
}

// Dispatcher ties the user table, the interpreter and I/O-layer contracts,
// and the routing policy together. Editor and Parser are both optional
// external collaborators (nil means "not wired"): the line editor and the
// default command parser are out of scope for this module, referenced only
// by capability.
type Dispatcher struct {
	Users  *users.Table
	Interp interp.Interpreter
	IO     interp.IOLayer
	Editor interp.Editor
	Parser interp.Parser
	Config Config
	Load   LoadAverage
}

// New builds a Dispatcher. Editor and Parser may be left nil.
func New(table *users.Table, interpreter interp.Interpreter, io interp.IOLayer, cfg Config) *Dispatcher {
	return &Dispatcher{Users: table, Interp: interpreter, IO: io, Config: cfg}
}

// Tick runs one full dispatch cycle: choose a user with a turn and a ready
// command, extract it, and route it. Reports whether a command was
// dispatched this tick.
func (d *Dispatcher) Tick() bool {
	_, ip, ok := d.chooseNextUser()
	if !ok {
		return false
	}
	command, ok := d.readCommand(ip)
	if !ok {
		return false
	}
	d.Load.Update()
	d.routeCommand(ip, command)
	return true
}

// chooseNextUser implements 4.2's scan: flush pending output for every
// examined user, and select the first one (in rotation order) with
// CMD_IN_BUF set, a ready command, and HAS_CMD_TURN.
func (d *Dispatcher) chooseNextUser() (int, *interactive.State, bool) {
	idx, ok := d.Users.Visit(func(_ int, ip *interactive.State) bool {
		if d.IO != nil {
			if err := d.IO.FlushMessage(ip); err != nil {
				logging.WithUser(ip.Owner.Name()).WithError(err).Warn("flush_message failed during next-user scan")
			}
		}

		if !ip.HasFlag(interactive.CmdInBuf) {
			return false
		}

		if _, present := ip.Input.First(); !present {
			ip.SetFlag(interactive.CmdInBuf, false)
			return false
		}

		if !ip.HasFlag(interactive.HasCmdTurn) {
			return false
		}

		ip.SetFlag(interactive.HasCmdTurn, false)
		return true
	})
	if !ok {
		return -1, nil, false
	}
	return idx, d.Users.At(idx), true
}

// readCommand extracts the selected user's ready command: filters it
// through telnet negotiation stripping, advances the input buffer,
// reconciles CMD_IN_BUF, restores echo if it was suspended, and stamps
// last-activity time.
func (d *Dispatcher) readCommand(ip *interactive.State) (string, bool) {
	raw, present := ip.Input.First()
	if !present {
		return "", false
	}

	dst := make([]byte, len(raw))
	filtered := raw
	if d.IO != nil {
		filtered = d.IO.TelnetNeg(dst, raw)
	}
	// Copy out before Advance, which may reuse the storage filtered points into.
	command := string(filtered)

	ip.Input.Advance()
	ip.SetFlag(interactive.CmdInBuf, ip.Input.HasCommand())

	if ip.HasFlag(interactive.NoEcho) {
		ip.SetFlag(interactive.NoEcho, false)
		if d.IO != nil {
			if ip.Connection == interactive.Console {
				d.IO.SetConsoleEcho(true)
			} else {
				d.IO.SetTelnetEcho(ip.Owner, true)
			}
		}
	}

	ip.LastTime = time.Now()
	return command, true
}

// routeCommand implements the 4.3 decision ladder, the IP-validity check,
// and prompt emission.
func (d *Dispatcher) routeCommand(ip *interactive.State, command string) {
	ob := ip.Owner

	bang := len(command) > 0 && command[0] == '!'
	escapeApplies := bang && (d.editorActive(ip) || (ip.PendingRedirect != nil && !ip.HasFlag(interactive.NoEsc)))

	switch {
	case escapeApplies:
		if ip.HasFlag(interactive.SingleChar) {
			ip.SetFlag(interactive.WasSingleChar, true)
			ip.SetFlag(interactive.SingleChar, false)
			if d.IO != nil {
				d.IO.SetTelnetSingleChar(ip, false)
			}
			return // command left unconsumed, to be re-seen next tick
		}
		if ip.HasFlag(interactive.WasSingleChar) {
			ip.SetFlag(interactive.WasSingleChar, false)
			ip.SetFlag(interactive.SingleChar, true)
			if d.IO != nil {
				d.IO.SetTelnetSingleChar(ip, true)
			}
		}
		d.dispatchCommand(ip, command[1:])

	case d.editorActive(ip):
		if d.Editor != nil {
			if err := d.Editor.Deliver(ip, command); err != nil {
				logging.WithUser(ob.Name()).WithError(err).Warn("editor delivery failed")
			}
		}

	case ip.PendingRedirect != nil:
		if _, _, err := interactive.Consume(ip, d.IO, command); err != nil {
			logging.WithUser(ob.Name()).WithError(err).Warn("redirect consumption failed")
		}

	default:
		d.dispatchCommand(ip, command)
	}

	if !d.ipStillValid(ob, ip) {
		return
	}
	d.emitPrompt(ip)
}

func (d *Dispatcher) ipStillValid(ob interactive.Object, ip *interactive.State) bool {
	return ob != nil && !ob.Destructed() && ob.Interactive() == ip
}

func (d *Dispatcher) editorActive(ip *interactive.State) bool {
	return d.Editor != nil && d.Editor.Active(ip)
}
