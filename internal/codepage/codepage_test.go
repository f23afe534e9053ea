package codepage

import "testing"

func TestRoundTripDefinedBytes(t *testing.T) {
	for b := 0; b < 256; b++ {
		r := CP037.DecodeByte(byte(b))
		got := CP037.EncodeRune(r)
		if got != byte(b) {
			t.Errorf("CP037 round trip failed for byte 0x%02x: decoded %q, re-encoded 0x%02x", b, r, got)
		}
	}
	for b := 0; b < 256; b++ {
		r := CP1047.DecodeByte(byte(b))
		got := CP1047.EncodeRune(r)
		if got != byte(b) {
			t.Errorf("CP1047 round trip failed for byte 0x%02x: decoded %q, re-encoded 0x%02x", b, r, got)
		}
	}
}

func TestASCIILetters(t *testing.T) {
	if CP037.DecodeByte(0xC1) != 'A' {
		t.Error("0xC1 should decode to 'A'")
	}
	if CP037.DecodeByte(0xF0) != '0' {
		t.Error("0xF0 should decode to '0'")
	}
	if CP037.EncodeRune('A') != 0xC1 {
		t.Error("'A' should encode to 0xC1")
	}
}

func TestBracketsDiffer(t *testing.T) {
	if CP037.EncodeRune('[') == CP1047.EncodeRune('[') {
		t.Error("expected CP037 and CP1047 to place '[' at different bytes")
	}
}

func TestGraphicEscape(t *testing.T) {
	s := CP037.Decode([]byte{0x0e, 0xC4, 0xC1})
	runes := []rune(s)
	if len(runes) != 2 {
		t.Fatalf("expected 2 runes, got %d", len(runes))
	}
	if runes[0] != '┌' {
		t.Errorf("expected box-drawing char, got %q", runes[0])
	}
	if runes[1] != 'A' {
		t.Errorf("expected 'A' after GE scope ended, got %q", runes[1])
	}
}

func TestLookup(t *testing.T) {
	if Lookup("1047") != CP1047 {
		t.Error("Lookup(1047) should return CP1047")
	}
	if Lookup("bogus") != CP037 {
		t.Error("Lookup of unknown page should fall back to CP037")
	}
}
