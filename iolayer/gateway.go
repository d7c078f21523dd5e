// Package iolayer is the concrete (if deliberately minimal) realization of
// the I/O-layer contract the dispatcher and frame machinery treat as an
// external collaborator: telnet option-negotiation stripping, per-connection
// echo/single-char control split by connection type, snoop-on-write
// mirroring, and a websocket gateway alongside the raw telnet listener.
package iolayer

import (
	"bufio"
	"sync"

	"github.com/pkg/errors"

	"github.com/miseqsprime/neolith/interactive"
)

// ErrNotRegistered is returned by any Gateway operation addressing a state
// with no registered connection.
var ErrNotRegistered = errors.New("iolayer: no connection registered for state")

type connEntry struct {
	conn Conn
	buf  *bufio.Writer
}

// Gateway is the shared I/O layer instance wired into the dispatcher as its
// interp.IOLayer and interactive.EchoController implementation.
type Gateway struct {
	mu      sync.Mutex
	conns   map[*interactive.State]*connEntry
	console Conn
}

// NewGateway constructs an empty Gateway.
func NewGateway() *Gateway {
	return &Gateway{conns: make(map[*interactive.State]*connEntry)}
}

// Register attaches a transport connection to an interactive state.
// Registering a console-typed state makes it the target of
// SetConsoleEcho, matching the original's single global console.
func (g *Gateway) Register(ip *interactive.State, conn Conn) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.conns[ip] = &connEntry{conn: conn, buf: bufio.NewWriter(conn)}
	if ip.Connection == interactive.Console {
		g.console = conn
	}
}

// Unregister flushes and closes the connection backing ip, if any.
func (g *Gateway) Unregister(ip *interactive.State) {
	g.mu.Lock()
	e, ok := g.conns[ip]
	if ok {
		delete(g.conns, ip)
	}
	if ok && g.console == e.conn {
		g.console = nil
	}
	g.mu.Unlock()

	if ok {
		e.buf.Flush()
		e.conn.Close()
	}
}

func (g *Gateway) entry(ip *interactive.State) *connEntry {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.conns[ip]
}

// Send buffers data for ip's connection and, per the write-path mirroring
// rule, recursively sends the same bytes to whoever is snooping ip. A
// failed mirror write never fails the primary send.
func (g *Gateway) Send(ip *interactive.State, data []byte) error {
	e := g.entry(ip)
	if e == nil {
		return ErrNotRegistered
	}
	if _, err := e.buf.Write(data); err != nil {
		return errors.Wrap(err, "iolayer: send")
	}
	if snooper := ip.SnoopBy(); snooper != nil {
		_ = g.Send(snooper, data)
	}
	return nil
}

// FlushMessage implements interp.IOLayer: flush ip's buffered output.
func (g *Gateway) FlushMessage(ip *interactive.State) error {
	e := g.entry(ip)
	if e == nil {
		return nil
	}
	return e.buf.Flush()
}

// TellObject implements interp.IOLayer: send text to ob's interactive
// connection, if it has one.
func (g *Gateway) TellObject(ob interactive.Object, text string) error {
	ip := ob.Interactive()
	if ip == nil {
		return nil
	}
	return g.Send(ip, []byte(text))
}

// SetConsoleEcho implements interactive.EchoController for the local
// console session, if one is registered.
func (g *Gateway) SetConsoleEcho(on bool) {
	g.mu.Lock()
	c := g.console
	g.mu.Unlock()
	if c != nil {
		c.SetEcho(on)
	}
}

// SetTelnetEcho implements interactive.EchoController for a remote
// (telnet or websocket) peer.
func (g *Gateway) SetTelnetEcho(ob interactive.Object, on bool) {
	ip := ob.Interactive()
	if ip == nil {
		return
	}
	if e := g.entry(ip); e != nil {
		e.conn.SetEcho(on)
	}
}

// SetTelnetSingleChar implements interactive.EchoController.
func (g *Gateway) SetTelnetSingleChar(ip *interactive.State, on bool) {
	if e := g.entry(ip); e != nil {
		e.conn.SetSingleChar(on)
	}
}

// TelnetNeg implements interp.IOLayer's one-shot option-negotiation filter.
func (g *Gateway) TelnetNeg(dst []byte, raw []byte) []byte {
	return StripTelnetNegotiation(dst, raw)
}
