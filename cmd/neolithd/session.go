package main

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/miseqsprime/neolith/interactive"
)

// guestObject is the minimal interactive.Object this demo entrypoint gives
// each connection; a real deployment's object layer (mudlib, login/auth
// objects, persistence) is out of scope here — this just satisfies the
// contract dispatch needs to route commands somewhere.
type guestObject struct {
	mu         sync.Mutex
	name       string
	ip         *interactive.State
	destructed bool
}

var guestSeq int64

func newGuestObject() *guestObject {
	n := atomic.AddInt64(&guestSeq, 1)
	return &guestObject{name: fmt.Sprintf("guest%d", n)}
}

func (g *guestObject) Destructed() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.destructed
}

func (g *guestObject) Interactive() *interactive.State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.ip
}

func (g *guestObject) SetInteractive(ip *interactive.State) {
	g.mu.Lock()
	g.ip = ip
	g.mu.Unlock()
}

func (g *guestObject) Name() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.name
}

func (g *guestObject) destroy() {
	g.mu.Lock()
	g.destructed = true
	g.mu.Unlock()
}
