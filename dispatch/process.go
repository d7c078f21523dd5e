package dispatch

import (
	"strings"

	"github.com/miseqsprime/neolith/interactive"
	"github.com/miseqsprime/neolith/interp"
	"github.com/miseqsprime/neolith/logging"
)

// dispatchCommand implements 4.4: clear any stale notify-fail install, run
// the NO_ANSI escape-stripping pre-pass, offer the command to the
// preprocessor hook if one is installed, and hand whatever survives to the
// parser.
func (d *Dispatcher) dispatchCommand(ip *interactive.State, command string) {
	interactive.ClearNotify(ip)

	if d.Config.StripEscapes {
		command = stripEscapes(command)
	}

	if !ip.HasFlag(interactive.HasProcessInput) {
		d.parse(ip, command)
		return
	}

	result, err := d.applyWithArg(ip.Owner, "process_input", command)
	if err != nil {
		logging.WithUser(ip.Owner.Name()).WithError(err).Warn("process_input failed")
		d.parse(ip, command)
		return
	}
	if result == nil {
		// Method vanished since the flag was set: stop offering it.
		ip.SetFlag(interactive.HasProcessInput, false)
		d.parse(ip, command)
		return
	}

	switch v := (*result).(type) {
	case string:
		if d.Config.MaxText > 0 && len(v) >= d.Config.MaxText {
			v = v[:d.Config.MaxText-1]
		}
		d.parse(ip, v)
	case int:
		if v == 0 {
			d.parse(ip, command)
		}
		// nonzero: the hook fully handled the command itself.
	case bool:
		if !v {
			d.parse(ip, command)
		}
	default:
		d.parse(ip, command)
	}
}

// parse hands command to the external default parser, if one is wired, and
// resolves notify-fail on a non-match.
func (d *Dispatcher) parse(ip *interactive.State, command string) {
	if d.Parser == nil {
		return
	}
	matched, err := d.Parser.Parse(ip.Owner, command)
	if err != nil {
		logging.WithUser(ip.Owner.Name()).WithError(err).Warn("parse failed")
		return
	}
	if !matched {
		d.notifyFail(ip)
	}
}

// notifyFail implements 4.6's resolution order: an installed callable takes
// precedence over an installed string, which takes precedence over the
// driver's configured default, which takes precedence over the literal
// fallback "What?". The slot is cleared after the callable runs, so a
// notify-fail installed by the callable during its own call is cleared too.
func (d *Dispatcher) notifyFail(ip *interactive.State) {
	if ip.HasFlag(interactive.NotifyFailFunc) {
		fn := ip.FailMessage.Func
		result, err := fn.Call()
		if err != nil {
			logging.WithUser(ip.Owner.Name()).WithError(err).Warn("notify-fail callable failed")
		} else if s, ok := result.(string); ok && d.IO != nil {
			d.IO.TellObject(ip.Owner, s)
		}
		interactive.ClearNotify(ip)
		return
	}

	if ip.FailMessage.String != "" {
		if d.IO != nil {
			d.IO.TellObject(ip.Owner, ip.FailMessage.String)
		}
		interactive.ClearNotify(ip)
		return
	}

	if d.IO == nil {
		return
	}
	if d.Config.DefaultFailMessage != "" {
		d.IO.TellObject(ip.Owner, d.Config.DefaultFailMessage+"\n")
		return
	}
	d.IO.TellObject(ip.Owner, "What?\n")
}

// emitPrompt implements 4.7: no prompt while a redirect is pending; the
// write_prompt hook takes over the prompt line if installed and still
// present; otherwise the stored prompt string is printed, whether or not
// the editor is active. Output is always flushed.
func (d *Dispatcher) emitPrompt(ip *interactive.State) {
	defer func() {
		if d.IO != nil {
			_ = d.IO.FlushMessage(ip)
		}
	}()

	if ip.PendingRedirect != nil {
		return
	}

	if ip.HasFlag(interactive.HasWritePrompt) {
		result, err := d.applyWithArg(ip.Owner, "write_prompt", nil)
		if err == nil && result != nil {
			return
		}
		ip.SetFlag(interactive.HasWritePrompt, false)
	}

	if d.editorActive(ip) {
		if d.IO != nil {
			_ = d.IO.TellObject(ip.Owner, ip.Prompt)
		}
		return
	}

	if d.IO != nil {
		_ = d.IO.TellObject(ip.Owner, ip.Prompt)
	}
}

// stripEscapes replaces ESC bytes with spaces, the STRIP_BEFORE_PROCESS_INPUT
// behavior gated by Config.StripEscapes.
func stripEscapes(s string) string {
	if !strings.ContainsRune(s, 0x1B) {
		return s
	}
	return strings.Map(func(r rune) rune {
		if r == 0x1B {
			return ' '
		}
		return r
	}, s)
}

// applyWithArg pushes arg (when non-nil) onto the interpreter's value stack
// via the optional ArgPusher capability, then applies name on ob.
func (d *Dispatcher) applyWithArg(ob interactive.Object, name string, arg interp.Value) (*interp.Value, error) {
	if arg != nil {
		if pusher, ok := d.Interp.(interp.ArgPusher); ok {
			pusher.Push(arg)
			return d.Interp.Apply(name, ob, 1, interp.OriginDriver)
		}
	}
	return d.Interp.Apply(name, ob, 0, interp.OriginDriver)
}
