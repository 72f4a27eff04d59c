package cpu

import (
	"github.com/tuankiet65/knocknock/internal/operand"
	"github.com/tuankiet65/knocknock/pkg/bits"
)

// Flag bit positions within F (§3, §4.6).
const (
	flagZ uint8 = 1 << 7
	flagN uint8 = 1 << 6
	flagH uint8 = 1 << 5
	flagC uint8 = 1 << 4
)

// Registers is the LR35902 register file: eight 8-bit registers
// addressable individually or paired into BC/DE/HL/AF, plus SP/PC.
type Registers struct {
	A, F uint8
	B, C uint8
	D, E uint8
	H, L uint8

	SP uint16
	PC uint16
}

// Reset sets the post-boot-ROM register values (§6 entry conditions).
func (r *Registers) Reset() {
	r.A, r.F = 0x01, 0xB0
	r.B, r.C = 0x00, 0x13
	r.D, r.E = 0x00, 0xD8
	r.H, r.L = 0x01, 0x4D
	r.SP = 0xFFFE
	r.PC = 0x0100
}

func (r *Registers) getFlag(mask uint8) bool { return bits.Test(r.F, maskBit(mask)) }

func (r *Registers) setFlag(mask uint8, v bool) {
	if v {
		r.F = bits.Set(r.F, maskBit(mask))
	} else {
		r.F = bits.Reset(r.F, maskBit(mask))
	}
	r.F &= 0xF0
}

// maskBit converts a flag bitmask (e.g. flagZ = 1<<7) to the bit index
// bits.Set/Reset/Test expect.
func maskBit(mask uint8) uint8 {
	for i := uint8(0); i < 8; i++ {
		if mask == 1<<i {
			return i
		}
	}
	panic("cpu: invalid flag mask")
}

func (r *Registers) Zero() bool      { return r.getFlag(flagZ) }
func (r *Registers) Subtract() bool  { return r.getFlag(flagN) }
func (r *Registers) HalfCarry() bool { return r.getFlag(flagH) }
func (r *Registers) Carry() bool     { return r.getFlag(flagC) }

func (r *Registers) SetZero(v bool)      { r.setFlag(flagZ, v) }
func (r *Registers) SetSubtract(v bool)  { r.setFlag(flagN, v) }
func (r *Registers) SetHalfCarry(v bool) { r.setFlag(flagH, v) }
func (r *Registers) SetCarry(v bool)     { r.setFlag(flagC, v) }

// BC/DE/HL/AF present a Pair16-compatible view so the executor can
// treat every register pair through the operand.Operand16 interface
// (8-bit registers and SP are accessed as plain fields). AF masks the low nibble of F on write,
// matching the flag register round-trip invariant (§8).
func (r *Registers) BC() *operand.Pair16 { return operand.NewPair16(&r.B, &r.C) }
func (r *Registers) DE() *operand.Pair16 { return operand.NewPair16(&r.D, &r.E) }
func (r *Registers) HL() *operand.Pair16 { return operand.NewPair16(&r.H, &r.L) }
func (r *Registers) AF() *operand.Pair16 { return operand.NewMaskedPair16(&r.A, &r.F, 0xF0) }
