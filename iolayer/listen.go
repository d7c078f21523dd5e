package iolayer

import (
	"net"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
)

// OnAccept is called with a freshly established transport connection; the
// caller is expected to create an interactive.State, register it with a
// Gateway, and add it to the user table.
type OnAccept func(conn Conn)

// ListenTelnet accepts raw TCP connections on addr and hands each one to
// onAccept as a telnetConn, until the listener is closed or the process
// exits. Intended to run in its own goroutine from cmd/neolithd.
func ListenTelnet(addr string, onAccept OnAccept) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrapf(err, "iolayer: listen telnet on %s", addr)
	}
	defer ln.Close()

	for {
		conn, err := ln.Accept()
		if err != nil {
			return errors.Wrap(err, "iolayer: accept telnet")
		}
		onAccept(NewTelnetConn(conn))
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browser-based MUD clients are commonly served from a different
	// origin than the driver's listen address, so every origin is
	// accepted. Neither this gateway nor the accept path in cmd/neolithd
	// performs a credential check.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ListenWebsocket serves a websocket upgrade endpoint on addr, handing each
// accepted connection to onAccept as a websocketConn. Runs until the HTTP
// server errors or the process exits.
func ListenWebsocket(addr string, path string, onAccept OnAccept) error {
	mux := http.NewServeMux()
	mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		onAccept(NewWebsocketConn(conn))
	})
	return http.ListenAndServe(addr, mux)
}
