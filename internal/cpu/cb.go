package cpu

// executeCB dispatches the CB-prefixed instruction set (§4.5): bits
// 7-6 select the group, bits 5-3 the bit index or rotate/shift kind,
// bits 2-0 the register operand from {B,C,D,E,H,L,(HL),A}.
func (c *CPU) executeCB(opcode uint8) {
	x, y, z, _ := decomposeOpcode(opcode)
	value := c.getR8(z)

	switch x {
	case 0:
		c.setR8(z, c.rotateShift(y, value))
	case 1:
		c.bit(y, value)
	case 2:
		c.setR8(z, res(y, value))
	case 3:
		c.setR8(z, set(y, value))
	}
}

func (c *CPU) rotateShift(op uint8, value uint8) uint8 {
	switch op {
	case 0:
		return c.rlc(value)
	case 1:
		return c.rrc(value)
	case 2:
		return c.rl(value)
	case 3:
		return c.rr(value)
	case 4:
		return c.sla(value)
	case 5:
		return c.sra(value)
	case 6:
		return c.swap(value)
	case 7:
		return c.srl(value)
	}
	panic("cpu: invalid CB rotate/shift op")
}
