/*
Package gunzip implements reading of gzip (RFC 1952) compressed data,
inflating the DEFLATE (RFC 1951) payload as it goes.

The package exposes two layers. Stream is a zlib-style resumable
inflater: the caller owns the input and output buffers, and Inflate
makes as much progress as those buffers allow before suspending.
Reader wraps a Stream around an io.Reader for the common streaming
case:

	r, err := gunzip.NewReader(f)
	io.Copy(os.Stdout, r)
	r.Close()
*/
package gunzip

import (
	"errors"
	"fmt"
)

/*
 * Copyright (c) 2018 Josh Varga
 *
 * This software is provided 'as-is', without any express or implied
 * warranty. In no event will the authors be held liable for any damages
 * arising from the use of this software.
 *
 * Permission is granted to anyone to use this software for any purpose,
 * including commercial applications, and to alter it and redistribute it
 * freely, subject to the following restrictions:
 *
 * 1. The origin of this software must not be misrepresented; you must not
 *    claim that you wrote the original software. If you use this software
 *    in a product, an acknowledgment in the product documentation would be
 *    appreciated but is not required.
 * 2. Altered source versions must be plainly marked as such, and must not be
 *    misrepresented as being the original software.
 * 3. This notice may not be removed or altered from any source distribution.
 */

// Version identifies the streaming API generation. InitVersion rejects
// callers built against a different generation.
const Version = "1.0.0"

var (
	// ErrStream is returned for structurally malformed input: bad magic,
	// bad block type, over-subscribed Huffman code, CRC or ISIZE mismatch.
	// It is also returned when the API is misused (uninitialized stream,
	// unsupported window size). Terminal.
	ErrStream = errors.New("gunzip: stream error")
	// ErrData is returned when the structure is valid but a decoded symbol
	// is not: an unassigned bit sequence, a distance code of 30 or 31, a
	// literal/length symbol of 286 or 287, a distance reaching beyond the
	// emitted output. Terminal.
	ErrData = errors.New("gunzip: data error")
	// ErrMem is returned when state for the stream cannot be allocated.
	ErrMem = errors.New("gunzip: insufficient memory")
	// ErrBuf is returned when Inflate can make no progress because the
	// caller provided neither input nor output room. Transient: refill
	// either side and call again.
	ErrBuf = errors.New("gunzip: no progress possible")
	// ErrVersion is returned by InitVersion on an API version mismatch.
	ErrVersion = errors.New("gunzip: incompatible version")
	// ErrUnexpectedEOF means the underlying reader ran dry inside a member.
	ErrUnexpectedEOF = errors.New("gunzip: unexpected EOF")
)

// Status reports how an Inflate call ended when it did not fail.
type Status int

const (
	// Ok means the call suspended: it needs more input, or more output
	// room, before it can continue.
	Ok Status = iota
	// StreamEnd means the gzip trailer has been consumed and validated.
	StreamEnd
)

// Header holds the informational fields of the gzip member header.
type Header struct {
	Name    string // FNAME field, empty if absent
	ModTime uint32 // MTIME, seconds since the Unix epoch, 0 if unset
	XFL     byte
	OS      byte
}

// Stream is a resumable gzip inflater. The caller sets In to the next
// chunk of compressed bytes and Out to writable space, then calls
// Inflate; the call consumes from the front of In, fills the front of
// Out, and advances both slices. A Stream must not be used from more
// than one goroutine at a time.
type Stream struct {
	In       []byte // next compressed input; Inflate consumes from the front
	Out      []byte // output space; Inflate fills and advances
	TotalIn  int64  // total compressed bytes consumed
	TotalOut int64  // total uncompressed bytes produced
	Msg      string // detail for the last terminal error
	Header   Header // populated while the member header is parsed

	state *inflateState
}

// Init prepares z for a new gzip member. Only windowBits == 15 (the
// 32 KiB window every gzip stream uses) is supported.
func (z *Stream) Init(windowBits int) error {
	return z.InitVersion(windowBits, Version)
}

// InitVersion is Init with an explicit API version check.
func (z *Stream) InitVersion(windowBits int, version string) error {
	if version != Version {
		return fmt.Errorf("%w: built against %q, have %q", ErrVersion, version, Version)
	}
	if windowBits != 15 {
		return fmt.Errorf("%w: unsupported windowBits %d (only 15)", ErrStream, windowBits)
	}
	z.TotalIn = 0
	z.TotalOut = 0
	z.Msg = ""
	z.Header = Header{}
	z.state = newInflateState(uint(windowBits))
	return nil
}

// End releases the stream state. The partial output already returned
// remains valid. Inflate after End reports ErrStream.
func (z *Stream) End() error {
	z.state = nil
	return nil
}

// Inflate decompresses as much as the current In and Out slices allow.
// It returns Ok when suspended for I/O, StreamEnd once the trailer has
// been consumed and validated, and a terminal error wrapped around
// ErrStream, ErrData or ErrMem otherwise.
func (z *Stream) Inflate() (Status, error) {
	s := z.state
	if s == nil {
		return Ok, fmt.Errorf("%w: stream not initialized", ErrStream)
	}
	if s.mode == modeBad {
		return Ok, fmt.Errorf("%w: %s", ErrStream, z.Msg)
	}
	if s.mode == modeDone {
		return StreamEnd, nil
	}

	s.in = z.In
	s.out = z.Out
	s.outBase = z.Out
	s.read = 0
	s.wrote = 0
	s.crcPos = 0

	st, err := z.run()
	s.syncCRC()

	z.In = s.in
	z.Out = s.out
	s.totalIn += uint64(s.read)
	s.totalOut += uint64(s.wrote)
	z.TotalIn = int64(s.totalIn)
	z.TotalOut = int64(s.totalOut)

	if err != nil {
		return Ok, err
	}
	if st == Ok && s.read == 0 && s.wrote == 0 && len(z.In) == 0 && len(z.Out) == 0 {
		return Ok, ErrBuf
	}
	return st, nil
}

// fatal latches a terminal error: Msg keeps the detail, the mode is
// poisoned, and the returned error wraps the taxonomy class.
func (z *Stream) fatal(class error, format string, args ...interface{}) error {
	z.Msg = fmt.Sprintf(format, args...)
	z.state.mode = modeBad
	return fmt.Errorf("%w: %s", class, z.Msg)
}
