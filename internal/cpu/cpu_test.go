package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tuankiet65/knocknock/internal/interrupts"
)

type flatMemory struct {
	data [0x10000]byte
}

func (m *flatMemory) Read(addr uint16) uint8        { return m.data[addr] }
func (m *flatMemory) Write(addr uint16, value uint8) { m.data[addr] = value }

func newTestCPU(program ...uint8) (*CPU, *flatMemory) {
	mem := &flatMemory{}
	copy(mem.data[0x0100:], program)
	irq := interrupts.NewController()
	c := New(mem, irq, nil)
	c.r.PC = 0x0100
	return c, mem
}

func runInstruction(c *CPU) {
	for c.decodeState != stateOpcode {
		c.Tick()
	}
	c.Tick()
	for c.decodeState != stateOpcode {
		c.Tick()
	}
}

func TestCPU_FlagRoundTrip(t *testing.T) {
	c, _ := newTestCPU()
	c.r.F = 0b1010_0000
	assert.True(t, c.r.Zero())
	assert.False(t, c.r.Subtract())
	assert.True(t, c.r.HalfCarry())
	assert.False(t, c.r.Carry())
	assert.Equal(t, uint8(0b1010_0000), c.r.F)
}

func TestCPU_LDRR(t *testing.T) {
	// LD B, A (0x47)
	c, _ := newTestCPU(0x47)
	c.r.A = 0x42
	runInstruction(c)
	assert.Equal(t, uint8(0x42), c.r.B)
}

func TestCPU_LDrn(t *testing.T) {
	// LD A, 0x99 (0x3E 0x99)
	c, _ := newTestCPU(0x3E, 0x99)
	runInstruction(c)
	assert.Equal(t, uint8(0x99), c.r.A)
	assert.Equal(t, uint16(0x0102), c.r.PC)
}

func TestCPU_ADD(t *testing.T) {
	// ADD A, B (0x80)
	c, _ := newTestCPU(0x80)
	c.r.A = 0x0F
	c.r.B = 0x01
	runInstruction(c)
	assert.Equal(t, uint8(0x10), c.r.A)
	assert.True(t, c.r.HalfCarry())
	assert.False(t, c.r.Carry())
	assert.False(t, c.r.Zero())
}

func TestCPU_JPnn(t *testing.T) {
	// JP 0x1234 (0xC3 0x34 0x12)
	c, _ := newTestCPU(0xC3, 0x34, 0x12)
	runInstruction(c)
	assert.Equal(t, uint16(0x1234), c.r.PC)
}

func TestCPU_CALLAndRET(t *testing.T) {
	// CALL 0x0200 ; at 0x0200: RET
	c, mem := newTestCPU(0xCD, 0x00, 0x02)
	mem.data[0x0200] = 0xC9 // RET
	runInstruction(c)
	assert.Equal(t, uint16(0x0200), c.r.PC)
	assert.Equal(t, uint16(0xFFFC), c.r.SP)

	runInstruction(c)
	assert.Equal(t, uint16(0x0103), c.r.PC)
	assert.Equal(t, uint16(0xFFFE), c.r.SP)
}

func TestCPU_PushPopRoundTrip(t *testing.T) {
	// PUSH BC ; POP DE
	c, _ := newTestCPU(0xC5, 0xD1)
	c.r.B, c.r.C = 0xBE, 0xEF
	runInstruction(c)
	runInstruction(c)
	assert.Equal(t, uint8(0xBE), c.r.D)
	assert.Equal(t, uint8(0xEF), c.r.E)
}

func TestCPU_InterruptServicing(t *testing.T) {
	mem := &flatMemory{}
	irq := interrupts.NewController()
	c := New(mem, irq, nil)
	c.ime = true
	irq.Write(interrupts.EnableAddr, 1<<uint(interrupts.VBlank))
	c.r.PC = 0x1000

	irq.Request(interrupts.VBlank)
	irq.Tick()

	assert.Equal(t, uint16(0x0040), c.r.PC)
	assert.False(t, c.ime)
	poppedLow := c.bus.Read(c.r.SP)
	poppedHigh := c.bus.Read(c.r.SP + 1)
	assert.Equal(t, uint16(0x1000), uint16(poppedHigh)<<8|uint16(poppedLow))
}

func TestCPU_EIDelaysOneInstruction(t *testing.T) {
	// EI ; NOP
	c, _ := newTestCPU(0xFB, 0x00)
	runInstruction(c)
	assert.False(t, c.ime, "IME not yet set immediately after EI")
	runInstruction(c)
	assert.True(t, c.ime, "IME set after the instruction following EI retires")
}

func TestCPU_DAAAfterBCDAdd(t *testing.T) {
	c, _ := newTestCPU()
	c.r.A = 0x45
	c.add(0x38) // 0x45 + 0x38 = 0x7D, binary
	require.Equal(t, uint8(0x7D), c.r.A)
	c.daa()
	assert.Equal(t, uint8(0x83), c.r.A, "BCD-adjusted 45+38=83")
}

func TestCPU_CBBit(t *testing.T) {
	// BIT 7,A (0xCB 0x7F)
	c, _ := newTestCPU(0xCB, 0x7F)
	c.r.A = 0x00
	runInstruction(c)
	assert.True(t, c.r.Zero(), "bit 7 of 0x00 is clear")
}
