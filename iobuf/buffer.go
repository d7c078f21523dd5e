// Package iobuf implements the per-user input buffer and command framing
// described by the interactive driver core: a bounded byte buffer holding
// received octets, framed into commands by null separators.
package iobuf

import "errors"

// MaxText bounds a single InputBuffer, mirroring the original driver's
// MAX_TEXT constant. Kept as a package var rather than a const so tests can
// shrink it to exercise the truncation path without a 2kb fixture.
var MaxText = 2048

var errBufferFull = errors.New("iobuf: command exceeds buffer capacity")

// Buffer holds bytes received from one connection before they are framed
// into commands. Bytes in [Start, End) are pending input; a null byte acts
// as a command separator. Zero-length commands between successive
// separators (as produced by a CR/LF pair) are silently discarded by
// First/Advance.
type Buffer struct {
	storage    []byte
	Start, End int
	// SingleChar puts the buffer into single-character mode: any byte
	// present at all constitutes a complete command, no separator needed.
	SingleChar bool
}

// New allocates a Buffer with the package's current MaxText capacity.
func New() *Buffer {
	return &Buffer{storage: make([]byte, MaxText)}
}

func (b *Buffer) cap() int { return len(b.storage) }

// Append copies src into the tail of the buffer, growing End. It is the
// caller's (transport layer's) job to have already turned line terminators
// into null separators; Append only does byte accounting. Telnet
// negotiation is stripped later, from each command the dispatcher reads.
func (b *Buffer) Append(src []byte) error {
	if b.End+len(src) > b.cap() {
		return errBufferFull
	}
	copy(b.storage[b.End:], src)
	b.End += len(src)
	return nil
}

// HasCommand reports whether a complete command is currently available
// without consuming anything.
func (b *Buffer) HasCommand() bool {
	p := b.Start
	for p < b.End && b.storage[p] == 0 {
		p++
	}
	if p >= b.End {
		return false
	}
	if b.SingleChar {
		return true
	}
	for p < b.End && b.storage[p] != 0 {
		p++
	}
	return p < b.End
}

// First returns the first complete command without consuming it. It mirrors
// first_cmd_in_buf: leading null bytes are skipped (and Start advanced past
// them), and if the tail of the buffer is a partial command that cannot be
// resolved because the buffer is full, it is force-truncated and returned
// as-is. A nil, false return means "no complete command yet" — the caller
// should wait for more bytes.
func (b *Buffer) First() ([]byte, bool) {
	p := b.Start
	for p < b.End && b.storage[p] == 0 {
		p++
	}
	b.Start = p

	if b.Start >= b.End {
		b.Start, b.End = 0, 0
		if b.cap() > 0 {
			b.storage[0] = 0
		}
		return nil, false
	}

	if b.SingleChar {
		return b.storage[b.Start : b.Start+1], true
	}

	q := b.Start
	for q < b.End && b.storage[q] != 0 {
		q++
	}
	if q < b.End {
		return b.storage[b.Start:q], true
	}

	// Partial command at the tail: compact it to the front of the buffer.
	n := copy(b.storage, b.storage[b.Start:b.End])
	b.End = n
	b.Start = 0

	if b.End > b.cap()-2 {
		b.storage[b.End-2] = 0
		b.storage[b.End-1] = 0
		b.End--
		return b.storage[:b.End], true
	}

	return nil, false
}

// Advance skips past the command most recently returned by First, then
// skips any trailing null separators, mirroring next_cmd_in_buf. If the
// scan reaches End, the buffer resets to empty.
func (b *Buffer) Advance() {
	p := b.Start
	if b.SingleChar {
		if p < b.End {
			p++
		}
	} else {
		for p < b.End && b.storage[p] != 0 {
			p++
		}
	}
	for p < b.End && b.storage[p] == 0 {
		p++
	}
	if p < b.End {
		b.Start = p
	} else {
		b.Start, b.End = 0, 0
		if b.cap() > 0 {
			b.storage[0] = 0
		}
	}
}

// Reset empties the buffer without reallocating storage.
func (b *Buffer) Reset() {
	b.Start, b.End = 0, 0
	if b.cap() > 0 {
		b.storage[0] = 0
	}
}
