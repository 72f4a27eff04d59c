// Package timer implements the DIV/TIMA/TMA/TAC timer peripheral. The
// spec's component table does not name it directly, but the interrupt
// source layout reserves a Timer entry (§4.4) and §5 speaks of
// "timer-like peripherals" ticked alongside DMA and serial — this
// package supplies that subscriber.
package timer

import (
	"github.com/tuankiet65/knocknock/internal/interrupts"
	"github.com/tuankiet65/knocknock/internal/state"
)

const (
	DIVAddr uint16 = 0xFF04
	TIMAAddr uint16 = 0xFF05
	TMAAddr  uint16 = 0xFF06
	TACAddr  uint16 = 0xFF07
)

// selectBit maps the two TAC frequency-select bits to the bit of the
// free-running 16-bit divider whose falling edge increments TIMA.
var selectBit = [4]uint8{9, 3, 5, 7}

// Controller owns the free-running internal divider and the TIMA/TMA/TAC
// registers, incrementing TIMA on the falling edge of the divider bit
// selected by TAC and requesting Timer on overflow.
type Controller struct {
	divider uint16
	tima    uint8
	tma     uint8
	tac     uint8

	irq *interrupts.Controller

	reloading     bool
	reloadCounter uint8
}

func NewController(irq *interrupts.Controller) *Controller {
	return &Controller{irq: irq, divider: 0xABCC, tac: 0xF8}
}

func (c *Controller) enabled() bool { return c.tac&0b100 != 0 }

func (c *Controller) selectedBitSet() bool {
	return c.divider&(1<<selectBit[c.tac&0b11]) != 0
}

// Tick implements clock.Subscriber. It is registered at the CPU's base
// tick frequency: the divider advances once per tick, and TIMA tracks
// its selected bit's falling edges.
func (c *Controller) Tick() {
	if c.reloading {
		c.reloadCounter++
		if c.reloadCounter == 4 {
			c.reloading = false
			c.tima = c.tma
			c.irq.Request(interrupts.Timer)
		}
	}

	before := c.enabled() && c.selectedBitSet()
	c.divider++
	after := c.enabled() && c.selectedBitSet()

	if before && !after {
		c.incrementTIMA()
	}
}

func (c *Controller) incrementTIMA() {
	c.tima++
	if c.tima == 0 {
		c.reloading = true
		c.reloadCounter = 0
	}
}

// Read implements bus.Region.
func (c *Controller) Read(addr uint16) uint8 {
	switch addr {
	case DIVAddr:
		return uint8(c.divider >> 8)
	case TIMAAddr:
		return c.tima
	case TMAAddr:
		return c.tma
	case TACAddr:
		return c.tac | 0xF8
	default:
		panic("timer: read from unmapped address")
	}
}

// Write implements bus.Region. Any write to DIV resets the internal
// divider to zero; this can itself trigger a TIMA increment if the
// selected bit was set beforehand (matches real hardware's edge
// detector firing on the reset).
func (c *Controller) Write(addr uint16, value uint8) {
	switch addr {
	case DIVAddr:
		before := c.enabled() && c.selectedBitSet()
		c.divider = 0
		if before {
			c.incrementTIMA()
		}
	case TIMAAddr:
		if c.reloading {
			return
		}
		c.tima = value
	case TMAAddr:
		c.tma = value
		if c.reloading {
			c.tima = value
		}
	case TACAddr:
		before := c.enabled() && c.selectedBitSet()
		c.tac = value & 0b111
		after := c.enabled() && c.selectedBitSet()
		if before && !after {
			c.incrementTIMA()
		}
	default:
		panic("timer: write to unmapped address")
	}
}

var _ state.Stater = (*Controller)(nil)

func (c *Controller) Save(s *state.State) {
	s.Write16(c.divider)
	s.Write8(c.tima)
	s.Write8(c.tma)
	s.Write8(c.tac)
	s.WriteBool(c.reloading)
	s.Write8(c.reloadCounter)
}

func (c *Controller) Load(s *state.State) {
	c.divider = s.Read16()
	c.tima = s.Read8()
	c.tma = s.Read8()
	c.tac = s.Read8()
	c.reloading = s.ReadBool()
	c.reloadCounter = s.Read8()
}
