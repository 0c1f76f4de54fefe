package gunzip

import (
	"errors"
	"io"
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

const readerChunk = 16384

// Reader decompresses a gzip stream while it is being read.
type Reader struct {
	// Header holds the member header fields, available as soon as
	// NewReader returns.
	Header Header

	r   io.Reader
	z   Stream
	buf []byte
	err error // sticky; io.EOF once the trailer has validated
}

// NewReader creates a Reader that reads and decompresses from r.
// The gzip member header is parsed before NewReader returns.
// It is the caller's responsibility to call Close on the Reader when done.
func NewReader(r io.Reader) (*Reader, error) {
	zr := &Reader{r: r, buf: make([]byte, readerChunk)}
	if err := zr.z.Init(15); err != nil {
		return nil, err
	}
	for !zr.z.state.headerDone() {
		if len(zr.z.In) == 0 {
			if err := zr.fill(); err != nil {
				return nil, err
			}
		}
		if _, err := zr.z.Inflate(); err != nil {
			return nil, err
		}
	}
	zr.Header = zr.z.Header
	return zr, nil
}

// fill refreshes the stream's input slice from the underlying reader.
func (zr *Reader) fill() error {
	n, err := zr.r.Read(zr.buf)
	if n > 0 {
		zr.z.In = zr.buf[:n]
		return nil
	}
	if err == nil || errors.Is(err, io.EOF) {
		// the member is not finished, so a clean EOF is still truncation
		return ErrUnexpectedEOF
	}
	return err
}

func (zr *Reader) Read(p []byte) (n int, err error) {
	if zr.err != nil {
		return 0, zr.err
	}
	if len(p) == 0 {
		return 0, nil
	}
	for {
		zr.z.Out = p[n:]
		st, err := zr.z.Inflate()
		n = len(p) - len(zr.z.Out)
		if err != nil && !errors.Is(err, ErrBuf) {
			zr.err = err
			return n, err
		}
		if st == StreamEnd {
			zr.err = io.EOF
			if n > 0 {
				return n, nil
			}
			return 0, io.EOF
		}
		if n == len(p) {
			return n, nil
		}
		// suspended: output room remains, so more input is required
		if err := zr.fill(); err != nil {
			zr.err = err
			return n, err
		}
	}
}

// Close releases the inflater state. It does not close the underlying
// reader.
func (zr *Reader) Close() error {
	return zr.z.End()
}
