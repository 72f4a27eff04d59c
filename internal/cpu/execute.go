package cpu

// execute.go dispatches every opcode that needs no immediate byte:
// register-to-register loads, ALU-with-register, INC/DEC, the
// accumulator rotate/misc row, and every fixed-form control-flow,
// stack, and I/O-port instruction that addresses (HL)/(C) directly.

func (c *CPU) execute(opcode uint8) {
	x, y, z, q := decomposeOpcode(opcode)

	switch x {
	case 0:
		c.executeX0(opcode, y, z, q)
		return
	case 1:
		if opcode == 0x76 {
			c.halted = true
			return
		}
		c.setR8(y, c.getR8(z))
		return
	case 2:
		c.execAlu(y, c.getR8(z))
		return
	case 3:
		c.executeX3(opcode, y, z, q)
		return
	}
}

func (c *CPU) executeX0(opcode uint8, y, z, q uint8) {
	switch z {
	case 0:
		switch y {
		case 0: // NOP
		case 2: // STOP: no further hardware behavior modeled (§4.5)
		}
	case 1:
		if q == 1 { // ADD HL,rp[p]
			c.addHL(c.getRP(y >> 1))
		}
		// q==0 (LD rp,nn) is handled by executeWithImm16
	case 2:
		c.executeIndirectAccumulator(y>>1, q)
	case 3:
		if q == 0 {
			c.setRP(y>>1, c.getRP(y>>1)+1)
		} else {
			c.setRP(y>>1, c.getRP(y>>1)-1)
		}
	case 4:
		c.setR8(y, c.inc8(c.getR8(y)))
	case 5:
		c.setR8(y, c.dec8(c.getR8(y)))
	case 7:
		c.executeAccumulatorMisc(y)
	}
}

// executeIndirectAccumulator implements LD (BC/DE/HL+/HL-),A and its
// mirror LD A,(BC/DE/HL+/HL-) (x=0, z=2).
func (c *CPU) executeIndirectAccumulator(p, q uint8) {
	var addr uint16
	switch p {
	case 0:
		addr = c.r.BC().Read()
	case 1:
		addr = c.r.DE().Read()
	case 2:
		addr = c.r.HL().Read()
		c.r.HL().Write(addr + 1)
	case 3:
		addr = c.r.HL().Read()
		c.r.HL().Write(addr - 1)
	}
	if q == 0 {
		c.bus.Write(addr, c.r.A)
	} else {
		c.r.A = c.bus.Read(addr)
	}
}

func (c *CPU) executeAccumulatorMisc(y uint8) {
	switch y {
	case 0:
		c.rlca()
	case 1:
		c.rrca()
	case 2:
		c.rla()
	case 3:
		c.rra()
	case 4:
		c.daa()
	case 5:
		c.cpl()
	case 6:
		c.scf()
	case 7:
		c.ccf()
	}
}

func (c *CPU) execAlu(op uint8, value uint8) {
	switch op {
	case 0:
		c.add(value)
	case 1:
		c.adc(value)
	case 2:
		c.subInstr(value)
	case 3:
		c.sbc(value)
	case 4:
		c.and(value)
	case 5:
		c.xor(value)
	case 6:
		c.or(value)
	case 7:
		c.cp(value)
	}
}

func (c *CPU) executeX3(opcode uint8, y, z, q uint8) {
	switch z {
	case 0:
		switch {
		case y <= 3: // RET cc
			if c.condition(y) {
				c.r.PC = c.pop16()
			}
		}
	case 1:
		if q == 0 { // POP rp2[p]
			c.setRP2(y>>1, c.pop16())
			return
		}
		switch y >> 1 {
		case 0: // RET
			c.r.PC = c.pop16()
		case 1: // RETI
			c.r.PC = c.pop16()
			c.ime = true
		case 2: // JP (HL)
			c.r.PC = c.r.HL().Read()
		case 3: // LD SP,HL
			c.r.SP = c.r.HL().Read()
		}
	case 2:
		switch y {
		case 4: // LD (C),A
			c.bus.Write(0xFF00+uint16(c.r.C), c.r.A)
		case 6: // LD A,(C)
			c.r.A = c.bus.Read(0xFF00 + uint16(c.r.C))
		}
	case 3:
		switch y {
		case 6: // DI
			c.ime = false
			c.eiPending = false
		case 7: // EI
			c.eiPending = true
		}
	case 5:
		if q == 0 { // PUSH rp2[p]
			c.push16(c.getRP2(y >> 1))
		}
	case 7: // RST y*8
		c.push16(c.r.PC)
		c.r.PC = uint16(y) * 8
	}
}
