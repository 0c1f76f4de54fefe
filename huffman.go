package gunzip

import (
	"errors"
	"math/bits"
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

const (
	maxCodeBits   = 15 // longest code in the literal/length and distance trees
	maxHeaderBits = 7  // longest code in the header (code length) tree
	maxLitSyms    = 288
	maxDistSyms   = 30
	numHeaderSyms = 19
	endOfBlock    = 256

	// invalidSym marks dense-table slots no canonical code reaches.
	invalidSym = 0xffff
)

var (
	errOverSubscribed = errors.New("over-subscribed code lengths")
	errCodeTooLong    = errors.New("code length exceeds table width")
)

/*
 * Huffman decoding table.  syms is a dense array of 1<<bits entries
 * indexed by the next bits reservoir bits taken as-is: DEFLATE stores
 * each code MSB-first but packs bits LSB-first into bytes, so the
 * index for a code is its bit reversal, padded with every possible
 * low-bit suffix.  One peek of bits bits therefore resolves any
 * symbol; lens (indexed by symbol) then says how many of the peeked
 * bits belong to the code and must be dropped.
 */
type huffTable struct {
	syms []uint16
	lens []byte
	bits uint
}

/*
 * build constructs the dense table for the canonical code described by
 * lens (RFC 1951, section 3.2.2): count the codes of each length,
 * derive the first code of each length, then hand out consecutive
 * values in symbol order.  storage provides the table memory and must
 * hold at least 1<<maxBits entries; tables for dynamic blocks reuse
 * one allocation this way.
 *
 * A set of lengths whose Kraft sum exceeds one is rejected here, so
 * the expansion loop below can never assign a slot twice.  Incomplete
 * sets are allowed: their unreachable slots keep the invalidSym
 * sentinel and decode to a data error if the stream ever selects
 * them.  An all-zero vector builds a table that rejects every input.
 */
func (t *huffTable) build(lens []byte, storage []uint16, maxBits uint) error {
	var count [maxCodeBits + 1]uint16
	maxlen := uint(0)
	for _, l := range lens {
		count[l]++
		if uint(l) > maxlen {
			maxlen = uint(l)
		}
	}
	if maxlen > maxBits {
		return errCodeTooLong
	}
	if maxlen == 0 {
		// no symbols: any lookup must fail
		t.syms = storage[:2]
		t.syms[0] = invalidSym
		t.syms[1] = invalidSym
		t.lens = lens
		t.bits = 1
		return nil
	}

	// reject Kraft sums above one before filling the table
	left := 1
	for l := uint(1); l <= maxlen; l++ {
		left <<= 1
		left -= int(count[l])
		if left < 0 {
			return errOverSubscribed
		}
	}

	// first canonical code of each length
	var next [maxCodeBits + 2]uint16
	code := uint16(0)
	for l := uint(1); l <= maxlen; l++ {
		code = (code + count[l-1]) << 1
		next[l] = code
	}

	size := uint32(1) << maxlen
	table := storage[:size]
	for i := range table {
		table[i] = invalidSym
	}
	for sym, l := range lens {
		if l == 0 {
			continue
		}
		c := next[l]
		next[l]++
		// the stream presents the code MSB-first in LSB-first packing:
		// reverse it, then stamp every low-bit suffix
		rc := uint32(bits.Reverse16(c) >> (16 - uint(l)))
		for pos := rc; pos < size; pos += uint32(1) << uint(l) {
			table[pos] = uint16(sym)
		}
	}
	t.syms = table
	t.lens = lens
	t.bits = maxlen
	return nil
}

// litSymKind classifies a decoded literal/length symbol.
type litSymKind int

const (
	symLiteral litSymKind = iota
	symEndOfBlock
	symLengthCode
	symInvalid
)

func classifyLitSym(v uint16) litSymKind {
	switch {
	case v < endOfBlock:
		return symLiteral
	case v == endOfBlock:
		return symEndOfBlock
	case v <= 285:
		return symLengthCode
	default:
		return symInvalid
	}
}

/*
 * Length and distance code tables (RFC 1951, section 3.2.5).  A length
 * code 257..285 maps through lengthBase/lengthExtra to a copy length
 * of 3..258; a distance code 0..29 maps through distBase/distExtra to
 * a distance of 1..32768.
 */
var lengthBase = [29]uint16{
	3, 4, 5, 6, 7, 8, 9, 10, 11, 13, 15, 17, 19, 23, 27, 31,
	35, 43, 51, 59, 67, 83, 99, 115, 131, 163, 195, 227, 258,
}

var lengthExtra = [29]byte{
	0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 2, 2, 2, 2,
	3, 3, 3, 3, 4, 4, 4, 4, 5, 5, 5, 5, 0,
}

var distBase = [30]uint32{
	1, 2, 3, 4, 5, 7, 9, 13, 17, 25, 33, 49, 65, 97, 129, 193,
	257, 385, 513, 769, 1025, 1537, 2049, 3073, 4097, 6145, 8193, 12289, 16385, 24577,
}

var distExtra = [30]byte{
	0, 0, 0, 0, 1, 1, 2, 2, 3, 3, 4, 4, 5, 5, 6, 6,
	7, 7, 8, 8, 9, 9, 10, 10, 11, 11, 12, 12, 13, 13,
}

// codeOrder is the fixed permutation in which the header tree's code
// lengths appear in a dynamic block (RFC 1951, section 3.2.7).
var codeOrder = [numHeaderSyms]byte{
	16, 17, 18, 0, 8, 7, 9, 6, 10, 5, 11, 4, 12, 3, 13, 2, 14, 1, 15,
}

/*
 * Fixed Huffman tables (RFC 1951, section 3.2.6).  Literal/length
 * lengths: 0..143 -> 8, 144..255 -> 9, 256..279 -> 7, 280..287 -> 8.
 * Distances: all 30 codes are 5 bits.  Built once at package init and
 * shared immutably by every stream.
 */
var (
	fixedLitTable  huffTable
	fixedDistTable huffTable

	fixedLitLens   [maxLitSyms]byte
	fixedDistLens  [maxDistSyms]byte
	fixedLitSyms   [1 << 9]uint16
	fixedDistSyms  [1 << 5]uint16
)

func init() {
	for i := range fixedLitLens {
		switch {
		case i < 144:
			fixedLitLens[i] = 8
		case i < 256:
			fixedLitLens[i] = 9
		case i < 280:
			fixedLitLens[i] = 7
		default:
			fixedLitLens[i] = 8
		}
	}
	for i := range fixedDistLens {
		fixedDistLens[i] = 5
	}
	if err := fixedLitTable.build(fixedLitLens[:], fixedLitSyms[:], 9); err != nil {
		panic(err)
	}
	if err := fixedDistTable.build(fixedDistLens[:], fixedDistSyms[:], 5); err != nil {
		panic(err)
	}
}
