package serial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tuankiet65/knocknock/internal/interrupts"
)

func TestSerial_EightTickTransferCompletes(t *testing.T) {
	irq := interrupts.NewController()
	irq.Write(interrupts.EnableAddr, 0xFF)
	c := NewController(irq)

	c.Write(SBAddr, 0b1010_1010)
	c.Write(SCAddr, 0x81)

	for i := 0; i < 8; i++ {
		c.Tick()
	}

	assert.Equal(t, uint8(0), c.Read(SCAddr)&transferStartBit, "bit 7 cleared on completion")
	assert.True(t, irq.Pending())

	out, ok := c.Dequeue()
	assert.True(t, ok)
	assert.Equal(t, uint8(0b1010_1010), out, "shifted-out bits equal the original SB content")
}

// TestSerial_SCRoundTripsExceptStartBit pins down the exact scenario:
// writing 0x81 to SC and ticking through the transfer must read back as
// 0x01 — only the start bit clears, no other bits are forced.
func TestSerial_SCRoundTripsExceptStartBit(t *testing.T) {
	irq := interrupts.NewController()
	irq.Write(interrupts.EnableAddr, 0xFF)
	c := NewController(irq)

	c.Write(SCAddr, 0x81)
	for i := 0; i < 8; i++ {
		c.Tick()
	}

	assert.Equal(t, uint8(0x01), c.Read(SCAddr))
}

func TestSerial_IncomingQueueFeedsCurrentIn(t *testing.T) {
	irq := interrupts.NewController()
	c := NewController(irq)
	c.Enqueue(0xFF)

	c.Write(SCAddr, 0x81)
	for i := 0; i < 8; i++ {
		c.Tick()
	}

	assert.Equal(t, uint8(0xFF), c.Read(SBAddr))
}

func TestSerial_NoSessionWithoutStartBit(t *testing.T) {
	irq := interrupts.NewController()
	c := NewController(irq)
	c.Write(SBAddr, 0x55)
	c.Tick()
	assert.Equal(t, uint8(0x55), c.Read(SBAddr), "no session active, SB unchanged")
}
