package iolayer

import (
	"fmt"
	"io"
	"net"

	"github.com/gorilla/websocket"
)

// Conn is the transport handle a Gateway holds per interactive connection.
// It abstracts over the three connection types an InteractiveState can have
// (interactive.Console, interactive.Telnet, interactive.WebSocket).
type Conn interface {
	io.Writer
	SetEcho(on bool)
	SetSingleChar(on bool)
	Close() error
}

// consoleConn wraps the local terminal. Echo/single-char control on a local
// console is a tty-mode concern external to this module (the original's
// set_console_echo talks to the controlling terminal driver directly); here
// it is tracked but not enforced beyond remembering the requested state,
// since this module doesn't own raw tty mode switching.
type consoleConn struct {
	w         io.Writer
	echo      bool
	singleChar bool
}

func NewConsoleConn(w io.Writer) Conn {
	return &consoleConn{w: w, echo: true}
}

func (c *consoleConn) Write(p []byte) (int, error) { return c.w.Write(p) }
func (c *consoleConn) SetEcho(on bool)             { c.echo = on }
func (c *consoleConn) SetSingleChar(on bool)        { c.singleChar = on }
func (c *consoleConn) Close() error                 { return nil }

// telnetConn wraps a raw TCP connection, sending the IAC WILL/WONT ECHO
// negotiation bytes a real telnet client honors when echo is toggled.
type telnetConn struct {
	conn net.Conn
}

func NewTelnetConn(conn net.Conn) Conn {
	return &telnetConn{conn: conn}
}

func (c *telnetConn) Write(p []byte) (int, error) { return c.conn.Write(p) }

// Read exposes the underlying net.Conn's inbound stream so a caller can pump
// bytes into an interactive.State's input buffer; Conn itself doesn't
// require Read since a console connection has no socket to read from here.
func (c *telnetConn) Read(p []byte) (int, error) { return c.conn.Read(p) }

func (c *telnetConn) SetEcho(on bool) {
	cmd := wont
	if on {
		cmd = will
	}
	c.conn.Write([]byte{iac, byte(cmd), 1}) // option 1 == ECHO
}

func (c *telnetConn) SetSingleChar(on bool) {
	cmd := dont
	if on {
		cmd = do
	}
	c.conn.Write([]byte{iac, byte(cmd), 34}) // option 34 == LINEMODE
}

func (c *telnetConn) Close() error { return c.conn.Close() }

// websocketConn wraps a browser-facing gorilla/websocket connection. Echo
// and single-char mode have no terminal-level meaning over a websocket, so
// both are relayed as small control frames the frontend client is expected
// to honor rather than anything this module enforces itself.
type websocketConn struct {
	conn    *websocket.Conn
	pending []byte
}

func NewWebsocketConn(conn *websocket.Conn) Conn {
	return &websocketConn{conn: conn}
}

func (c *websocketConn) Write(p []byte) (int, error) {
	if err := c.conn.WriteMessage(websocket.TextMessage, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Read adapts gorilla's message-oriented ReadMessage into a byte stream,
// buffering any remainder of a message too big for one caller-supplied p.
func (c *websocketConn) Read(p []byte) (int, error) {
	for len(c.pending) == 0 {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return 0, err
		}
		c.pending = data
	}
	n := copy(p, c.pending)
	c.pending = c.pending[n:]
	return n, nil
}

func (c *websocketConn) SetEcho(on bool) {
	c.conn.WriteMessage(websocket.TextMessage, []byte(fmt.Sprintf(`{"control":"echo","on":%t}`, on)))
}

func (c *websocketConn) SetSingleChar(on bool) {
	c.conn.WriteMessage(websocket.TextMessage, []byte(fmt.Sprintf(`{"control":"single_char","on":%t}`, on)))
}

func (c *websocketConn) Close() error { return c.conn.Close() }
