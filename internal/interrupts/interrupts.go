// Package interrupts implements the edge-triggered request/enable latches
// that couple every peripheral to the CPU. The cyclic CPU<->controller
// dependency the design notes call out (the controller needs to push
// interrupts into the CPU; the CPU needs to read IE/IF off the bus) is
// broken the way §9 suggests: the controller only ever talks to the CPU
// through the small Sink interface below, and owns no CPU state itself.
package interrupts

import (
	"fmt"

	"github.com/tuankiet65/knocknock/internal/state"
)

// Source identifies one of the five interrupt lines. Its numeric value is
// also its bit position in IF/IE and its priority (lower wins ties).
type Source uint8

const (
	VBlank Source = iota
	LCDStatus
	Timer
	Serial
	Joypad
)

func (s Source) String() string {
	switch s {
	case VBlank:
		return "VBlank"
	case LCDStatus:
		return "LCDStatus"
	case Timer:
		return "Timer"
	case Serial:
		return "Serial"
	case Joypad:
		return "Joypad"
	default:
		return fmt.Sprintf("Source(%d)", uint8(s))
	}
}

// Vector returns the fixed dispatch address for s.
func (s Source) Vector() uint16 {
	return 0x0040 + uint16(s)*0x0008
}

// bySeverity lists every source in dispatch priority: lowest bit first.
var bySeverity = [5]Source{VBlank, LCDStatus, Timer, Serial, Joypad}

// Register addresses on the bus.
const (
	FlagAddr   uint16 = 0xFF0F // IF
	EnableAddr uint16 = 0xFFFF // IE
)

// Sink is how the controller hands a pending interrupt to the CPU. Accept
// is called once per requested-and-enabled source per tick, in priority
// order; it must return true only if the CPU actually serviced the
// request (IME was set and the decoder was at an instruction boundary),
// in which case the controller clears the request bit. Returning false
// leaves the bit set for a later tick.
type Sink interface {
	Accept(source Source) bool
}

// Controller holds the IF/IE latches and drives dispatch on each tick.
type Controller struct {
	requested uint8
	enabled   uint8
	sink      Sink
}

// NewController returns a controller with both latches clear and no sink
// attached; AttachSink must be called before the first Tick that should
// actually dispatch (a nil sink tick is a no-op, useful while wiring up a
// system incrementally).
func NewController() *Controller {
	return &Controller{}
}

// AttachSink wires the CPU (or any Sink) to receive dispatched interrupts.
func (c *Controller) AttachSink(sink Sink) {
	c.sink = sink
}

// Request sets the request latch for source. It never blocks and never
// fails — peripherals call this from their own Tick with no feedback.
func (c *Controller) Request(source Source) {
	c.requested |= 1 << uint8(source)
}

// Pending reports whether any enabled source currently has a pending
// request, without side effects. The CPU does not call it: it wakes from
// HALT inside Sink.Accept.
func (c *Controller) Pending() bool {
	return c.requested&c.enabled&0x1F != 0
}

// Tick offers every requested-and-enabled source to the sink in priority
// order, clearing the request bit for any the sink accepts.
func (c *Controller) Tick() {
	if c.sink == nil {
		return
	}
	for _, s := range bySeverity {
		bit := uint8(1) << uint8(s)
		if c.requested&c.enabled&bit == 0 {
			continue
		}
		if c.sink.Accept(s) {
			c.requested &^= bit
		}
	}
}

// Read implements bus.Region. Both registers' upper three bits read as 1
// per §4.4.
func (c *Controller) Read(addr uint16) uint8 {
	switch addr {
	case FlagAddr:
		return c.requested&0x1F | 0xE0
	case EnableAddr:
		return c.enabled&0x1F | 0xE0
	}
	panic(fmt.Sprintf("interrupts: illegal read from %#04x", addr))
}

// Write implements bus.Region. Software writes rewrite the latch exactly.
func (c *Controller) Write(addr uint16, value uint8) {
	switch addr {
	case FlagAddr:
		c.requested = value
	case EnableAddr:
		c.enabled = value
	default:
		panic(fmt.Sprintf("interrupts: illegal write to %#04x", addr))
	}
}

var _ state.Stater = (*Controller)(nil)

func (c *Controller) Save(s *state.State) {
	s.Write8(c.requested)
	s.Write8(c.enabled)
}

func (c *Controller) Load(s *state.State) {
	c.requested = s.Read8()
	c.enabled = s.Read8()
}
