package gunzip

import (
	"errors"
	"testing"
)

func TestBuildCanonical(t *testing.T) {
	// RFC 1951 worked example shape: lengths {2,1,3,3} give the
	// canonical codes 10, 0, 110, 111
	lens := []byte{2, 1, 3, 3}
	storage := make([]uint16, 1<<maxCodeBits)
	var tab huffTable
	if err := tab.build(lens, storage, maxCodeBits); err != nil {
		t.Fatalf("build: %v", err)
	}
	if tab.bits != 3 {
		t.Fatalf("bits=%d : expected=3", tab.bits)
	}
	// index is the bit-reversed code padded with every low-bit suffix
	want := []uint16{1, 0, 1, 2, 1, 0, 1, 3}
	for i, sym := range want {
		if tab.syms[i] != sym {
			t.Errorf("syms[%d]=%d : expected=%d", i, tab.syms[i], sym)
		}
	}
}

func TestBuildOverSubscribed(t *testing.T) {
	lens := []byte{1, 1, 1}
	storage := make([]uint16, 1<<maxCodeBits)
	var tab huffTable
	if err := tab.build(lens, storage, maxCodeBits); !errors.Is(err, errOverSubscribed) {
		t.Fatalf("expected errOverSubscribed, found %v", err)
	}
}

func TestBuildIncomplete(t *testing.T) {
	// a single 1-bit code: the other half of the table must reject
	lens := []byte{1}
	storage := make([]uint16, 1<<maxCodeBits)
	var tab huffTable
	if err := tab.build(lens, storage, maxCodeBits); err != nil {
		t.Fatalf("build: %v", err)
	}
	if tab.syms[0] != 0 {
		t.Errorf("syms[0]=%d : expected=0", tab.syms[0])
	}
	if tab.syms[1] != invalidSym {
		t.Errorf("syms[1]=%#x : expected sentinel", tab.syms[1])
	}
}

func TestBuildAllZero(t *testing.T) {
	lens := []byte{0, 0, 0, 0}
	storage := make([]uint16, 1<<maxCodeBits)
	var tab huffTable
	if err := tab.build(lens, storage, maxCodeBits); err != nil {
		t.Fatalf("build: %v", err)
	}
	for i, sym := range tab.syms {
		if sym != invalidSym {
			t.Errorf("syms[%d]=%d : expected sentinel", i, sym)
		}
	}
}

func TestBuildRejectsLongCodes(t *testing.T) {
	lens := []byte{8, 8}
	storage := make([]uint16, 1<<maxHeaderBits)
	var tab huffTable
	if err := tab.build(lens, storage, maxHeaderBits); !errors.Is(err, errCodeTooLong) {
		t.Fatalf("expected errCodeTooLong, found %v", err)
	}
}

func TestFixedTables(t *testing.T) {
	if fixedLitTable.bits != 9 {
		t.Fatalf("fixed literal table width=%d : expected=9", fixedLitTable.bits)
	}
	// end-of-block is the 7-bit all-zero code: every 9-bit index with
	// zero low bits selects it
	for _, idx := range []uint32{0x000, 0x080, 0x100, 0x180} {
		if fixedLitTable.syms[idx] != endOfBlock {
			t.Errorf("syms[%#x]=%d : expected=%d", idx, fixedLitTable.syms[idx], endOfBlock)
		}
	}
	// 'A' has the 8-bit code 0x71; reversed that is 0x8e
	for _, idx := range []uint32{0x08e, 0x18e} {
		if fixedLitTable.syms[idx] != 'A' {
			t.Errorf("syms[%#x]=%d : expected=%d", idx, fixedLitTable.syms[idx], 'A')
		}
	}
	if fixedLitTable.lens['A'] != 8 || fixedLitTable.lens[endOfBlock] != 7 || fixedLitTable.lens[285] != 8 {
		t.Errorf("unexpected fixed code lengths")
	}
	if fixedDistTable.bits != 5 {
		t.Fatalf("fixed distance table width=%d : expected=5", fixedDistTable.bits)
	}
	// distance codes 30 and 31 do not exist
	for _, idx := range []uint32{0x0f, 0x1f} { // reversals of 11110 and 11111
		if fixedDistTable.syms[idx] != invalidSym {
			t.Errorf("syms[%#x]=%d : expected sentinel", idx, fixedDistTable.syms[idx])
		}
	}
}

func TestClassifyLitSym(t *testing.T) {
	cases := []struct {
		v    uint16
		kind litSymKind
	}{
		{0, symLiteral},
		{255, symLiteral},
		{256, symEndOfBlock},
		{257, symLengthCode},
		{285, symLengthCode},
		{286, symInvalid},
		{287, symInvalid},
		{invalidSym, symInvalid},
	}
	for _, c := range cases {
		if kind := classifyLitSym(c.v); kind != c.kind {
			t.Errorf("classifyLitSym(%d)=%d : expected=%d", c.v, kind, c.kind)
		}
	}
}

func TestLengthDistanceTables(t *testing.T) {
	// boundary entries straight from RFC 1951
	if lengthBase[0] != 3 || lengthBase[28] != 258 || lengthExtra[28] != 0 {
		t.Errorf("length table boundaries wrong")
	}
	if distBase[0] != 1 || distBase[29] != 24577 || distExtra[29] != 13 {
		t.Errorf("distance table boundaries wrong")
	}
	// the largest representable distance is exactly one window
	if max := distBase[29] + (1 << distExtra[29]) - 1; max != 32768 {
		t.Errorf("max distance=%d : expected=32768", max)
	}
}
