package timer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tuankiet65/knocknock/internal/interrupts"
)

func TestTimer_DIVIncrementsEveryByte(t *testing.T) {
	c := NewController(interrupts.NewController())
	c.divider = 0
	for i := 0; i < 256; i++ {
		c.Tick()
	}
	assert.Equal(t, uint8(1), c.Read(DIVAddr))
}

func TestTimer_WriteDIVResets(t *testing.T) {
	c := NewController(interrupts.NewController())
	c.divider = 0x1234
	c.Write(DIVAddr, 0xFF)
	assert.Equal(t, uint8(0), c.Read(DIVAddr))
}

func TestTimer_TIMAOverflowReloadsAndRequestsInterrupt(t *testing.T) {
	irq := interrupts.NewController()
	irq.Write(interrupts.EnableAddr, 0xFF)
	c := NewController(irq)
	c.divider = 0
	c.Write(TACAddr, 0b101) // enabled, selected bit 3
	c.Write(TMAAddr, 0x42)
	c.tima = 0xFF

	// bit 3 of the divider falls on every 16th tick; starting from 0,
	// one full low-to-high-to-low cycle (16 ticks) gives exactly one
	// edge, which overflows TIMA.
	for i := 0; i < 16; i++ {
		c.Tick()
	}
	// allow the 4-tick reload delay to elapse
	for i := 0; i < 4; i++ {
		c.Tick()
	}

	assert.Equal(t, uint8(0x42), c.Read(TIMAAddr))
	assert.True(t, irq.Pending())
}

func TestTimer_TACUnusedBitsReadAsOne(t *testing.T) {
	c := NewController(interrupts.NewController())
	c.Write(TACAddr, 0b101)
	assert.Equal(t, uint8(0xFD), c.Read(TACAddr))
}
