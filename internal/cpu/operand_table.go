package cpu

// The 8-bit register operand table addressed by bits 2-0 (or 5-3) of an
// opcode: {B, C, D, E, H, L, (HL), A} (§4.5 CB-prefix decode; the same
// order underlies the unprefixed LD r,r' and ALU rows).
const r8IndirectHL = 6

func (c *CPU) getR8(index uint8) uint8 {
	switch index {
	case 0:
		return c.r.B
	case 1:
		return c.r.C
	case 2:
		return c.r.D
	case 3:
		return c.r.E
	case 4:
		return c.r.H
	case 5:
		return c.r.L
	case r8IndirectHL:
		return c.bus.Read(c.r.HL().Read())
	case 7:
		return c.r.A
	}
	panic("cpu: invalid r8 index")
}

func (c *CPU) setR8(index uint8, value uint8) {
	switch index {
	case 0:
		c.r.B = value
	case 1:
		c.r.C = value
	case 2:
		c.r.D = value
	case 3:
		c.r.E = value
	case 4:
		c.r.H = value
	case 5:
		c.r.L = value
	case r8IndirectHL:
		c.bus.Write(c.r.HL().Read(), value)
	case 7:
		c.r.A = value
	default:
		panic("cpu: invalid r8 index")
	}
}

// rp is the 16-bit register pair table addressed by bits 5-4 for
// LD rr,nn / INC rr / DEC rr / ADD HL,rr: {BC, DE, HL, SP}.
func (c *CPU) getRP(p uint8) uint16 {
	switch p {
	case 0:
		return c.r.BC().Read()
	case 1:
		return c.r.DE().Read()
	case 2:
		return c.r.HL().Read()
	case 3:
		return c.r.SP
	}
	panic("cpu: invalid rp index")
}

func (c *CPU) setRP(p uint8, value uint16) {
	switch p {
	case 0:
		c.r.BC().Write(value)
	case 1:
		c.r.DE().Write(value)
	case 2:
		c.r.HL().Write(value)
	case 3:
		c.r.SP = value
	}
}

// rp2 is the register pair table used by PUSH/POP: {BC, DE, HL, AF}.
func (c *CPU) getRP2(p uint8) uint16 {
	if p == 3 {
		return c.r.AF().Read()
	}
	return c.getRP(p)
}

func (c *CPU) setRP2(p uint8, value uint16) {
	if p == 3 {
		c.r.AF().Write(value)
		return
	}
	c.setRP(p, value)
}

// condition evaluates the four branch conditions addressed by bits
// 4-3 of a control-flow opcode: {NZ, Z, NC, C}.
func (c *CPU) condition(index uint8) bool {
	switch index {
	case 0:
		return !c.r.Zero()
	case 1:
		return c.r.Zero()
	case 2:
		return !c.r.Carry()
	case 3:
		return c.r.Carry()
	}
	panic("cpu: invalid condition index")
}
