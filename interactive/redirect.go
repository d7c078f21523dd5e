package interactive

import "github.com/pkg/errors"

// ErrRedirectInstalled names the failure of installing a Redirect while one
// is already pending on the target state. Install itself does not return it:
// it reports that case by returning false.
var ErrRedirectInstalled = errors.New("interactive: redirect already installed")

// Install attaches a one-shot Redirect to ob's interactive state. It fails
// (returning false, matching the original install efun's 0/1 contract)
// when ob is nil, the sentence/callable is nil, ob is not interactive, or a
// Redirect is already installed.
func Install(ob Object, callable Callable, carryArgs []any, flags RedirectFlags) bool {
	if ob == nil || callable == nil {
		return false
	}
	ip := ob.Interactive()
	if ip == nil || ip.PendingRedirect != nil {
		return false
	}

	ip.PendingRedirect = &Redirect{Callable: callable, CarryArgs: carryArgs, Flags: flags & (NoEcho | NoEsc | SingleChar)}
	ip.Flags |= ip.PendingRedirect.Flags
	return true
}

// EchoController toggles echo/single-char display state on the transport
// backing an interactive connection; the concrete implementation lives in
// package iolayer.
type EchoController interface {
	SetConsoleEcho(on bool)
	SetTelnetEcho(ob Object, on bool)
	SetTelnetSingleChar(ip *State, on bool)
}

// Consume delivers one arriving command line to a pending Redirect,
// following the one-shot contract: the redirect is detached before the
// callable runs (so the callable may install a fresh one), NOESC is
// cleared, and SINGLE_CHAR install is undone if it was set by Install.
// Consume reports whether a Redirect was present to consume.
func Consume(ip *State, io EchoController, command string) (bool, any, error) {
	ip.Flags.clear(NoEsc)

	r := ip.PendingRedirect
	if r == nil {
		return false, nil, nil
	}
	ip.PendingRedirect = nil

	if r.Flags.has(SingleChar) {
		ip.Flags.clear(SingleChar)
		if io != nil {
			io.SetTelnetSingleChar(ip, false)
		}
	}

	args := make([]any, 0, 1+len(r.CarryArgs))
	args = append(args, command)
	args = append(args, r.CarryArgs...)

	v, err := r.Callable.Call(args...)
	return true, v, err
}
