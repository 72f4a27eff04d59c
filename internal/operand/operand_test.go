package operand

import "testing"

func TestPair16_RoundTrip(t *testing.T) {
	var high, low uint8
	p := NewPair16(&high, &low)

	p.Write(0x1234)
	if high != 0x12 || low != 0x34 {
		t.Fatalf("Write(0x1234): high=%#02x low=%#02x", high, low)
	}
	if got := p.Read(); got != 0x1234 {
		t.Fatalf("Read() = %#04x, want 0x1234", got)
	}
}

func TestPair16_MaskedLowByte(t *testing.T) {
	var a, f uint8
	af := NewMaskedPair16(&a, &f, 0xF0)

	af.Write(0x1299)
	if a != 0x12 {
		t.Fatalf("a = %#02x, want 0x12", a)
	}
	if f != 0x90 {
		t.Fatalf("f = %#02x, want 0x90 (low nibble masked)", f)
	}
}
