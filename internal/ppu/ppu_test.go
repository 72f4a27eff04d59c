package ppu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tuankiet65/knocknock/internal/interrupts"
)

func TestPPU_LYWrapsModulo154(t *testing.T) {
	irq := interrupts.NewController()
	p := New(irq)

	for line := 0; line < 154; line++ {
		for i := 0; i < lineDots; i++ {
			p.Tick()
		}
	}
	assert.Equal(t, uint8(0), p.ReadRegister(lyAddr))
}

func TestPPU_LYCCoincidenceFiresOnce(t *testing.T) {
	irq := interrupts.NewController()
	irq.Write(interrupts.EnableAddr, 0xFF)
	p := New(irq)
	p.WriteRegister(lycAddr, 1)
	p.WriteRegister(statAddr, 1<<6) // enable LYC interrupt

	for i := 0; i < lineDots; i++ {
		p.Tick()
	}
	require.Equal(t, uint8(1), p.ReadRegister(lyAddr))
	assert.True(t, irq.Pending())

	irq.Write(interrupts.FlagAddr, 0) // acknowledge and clear the request
	require.False(t, irq.Pending())

	// staying on the same line shouldn't refire the coincidence
	p.Tick()
	assert.False(t, irq.Pending())
}

func TestPPU_VRAMBlockedDuringLCDDraw(t *testing.T) {
	irq := interrupts.NewController()
	p := New(irq)
	for i := 0; i < oamScanDots; i++ {
		p.Tick()
	}
	require.Equal(t, LCDDraw, p.Mode())
	assert.Equal(t, uint8(0xFF), p.ReadVRAM(0x8000))
}

func TestPPU_OAMAccessibleInHBlank(t *testing.T) {
	irq := interrupts.NewController()
	p := New(irq)
	for i := 0; i < oamScanDots+lcdDrawDots; i++ {
		p.Tick()
	}
	require.Equal(t, HBlank, p.Mode())
	p.WriteOAM(oamBase, 0x42)
	assert.Equal(t, uint8(0x42), p.ReadOAM(oamBase))
}

func TestPPU_EntersVBlankAndRequestsInterrupt(t *testing.T) {
	irq := interrupts.NewController()
	irq.Write(interrupts.EnableAddr, 0xFF)
	p := New(irq)

	for line := 0; line < 144; line++ {
		for i := 0; i < lineDots; i++ {
			p.Tick()
		}
	}
	assert.Equal(t, VBlank, p.Mode())
	assert.True(t, irq.Pending())
}
