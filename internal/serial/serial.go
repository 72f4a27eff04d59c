// Package serial implements the shift-register serial port (§4.10): SB
// (0xFF01), SC (0xFF02), and the two byte queues connecting it to
// whatever sits on the other end of the link cable.
package serial

import (
	"sync"

	"github.com/tuankiet65/knocknock/internal/interrupts"
	"github.com/tuankiet65/knocknock/internal/state"
)

const (
	SBAddr uint16 = 0xFF01
	SCAddr uint16 = 0xFF02

	transferStartBit uint8 = 0x80
)

// Controller owns the shift register and the two queues that decouple
// it from its transport. Queue access is mutex-guarded so an external
// link (see the netlink subpackage) can feed and drain bytes from its
// own goroutine without synchronizing with the emulation loop's tick.
type Controller struct {
	mu sync.Mutex

	sb uint8
	sc uint8

	incoming []byte
	outgoing []byte

	currentIn  uint8
	currentOut uint8
	remaining  uint8
	active     bool

	irq *interrupts.Controller
}

func NewController(irq *interrupts.Controller) *Controller {
	return &Controller{irq: irq, sc: 0x7E}
}

// Enqueue makes b available to the next session as the incoming byte.
// Safe to call from outside the emulation loop.
func (c *Controller) Enqueue(b byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.incoming = append(c.incoming, b)
}

// Dequeue pops the oldest byte pushed to the outgoing queue by a
// completed session, if any. Safe to call from outside the emulation
// loop.
func (c *Controller) Dequeue() (byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.outgoing) == 0 {
		return 0, false
	}
	b := c.outgoing[0]
	c.outgoing = c.outgoing[1:]
	return b, true
}

// Tick implements clock.Subscriber. Registered at the same base
// frequency as the CPU; a session advances one bit per tick, so a
// transfer of all 8 bits in §8's example takes eight ticks as
// specified.
func (c *Controller) Tick() {
	if !c.active {
		return
	}

	outBit := c.sb & transferStartBit
	c.sb = c.sb<<1 | (c.currentIn >> 7)
	c.currentIn <<= 1
	c.currentOut = c.currentOut<<1 | boolToBit(outBit != 0)
	c.remaining--

	if c.remaining == 0 {
		c.active = false
		c.mu.Lock()
		c.outgoing = append(c.outgoing, c.currentOut)
		c.mu.Unlock()
		c.sc &^= transferStartBit
		c.irq.Request(interrupts.Serial)
	}
}

func boolToBit(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// Read implements bus.Region.
func (c *Controller) Read(addr uint16) uint8 {
	switch addr {
	case SBAddr:
		return c.sb
	case SCAddr:
		return c.sc
	default:
		panic("serial: read from unmapped address")
	}
}

// Write implements bus.Region.
func (c *Controller) Write(addr uint16, value uint8) {
	switch addr {
	case SBAddr:
		c.sb = value
	case SCAddr:
		c.sc = value
		if value&transferStartBit != 0 {
			c.mu.Lock()
			if len(c.incoming) > 0 {
				c.currentIn = c.incoming[0]
				c.incoming = c.incoming[1:]
			} else {
				c.currentIn = 0
			}
			c.mu.Unlock()
			c.currentOut = 0
			c.remaining = 8
			c.active = true
		}
	default:
		panic("serial: write to unmapped address")
	}
}

var _ state.Stater = (*Controller)(nil)

func (c *Controller) Save(s *state.State) {
	s.Write8(c.sb)
	s.Write8(c.sc)
	s.Write8(c.currentIn)
	s.Write8(c.currentOut)
	s.Write8(c.remaining)
	s.WriteBool(c.active)
}

func (c *Controller) Load(s *state.State) {
	c.sb = s.Read8()
	c.sc = s.Read8()
	c.currentIn = s.Read8()
	c.currentOut = s.Read8()
	c.remaining = s.Read8()
	c.active = s.ReadBool()
}
