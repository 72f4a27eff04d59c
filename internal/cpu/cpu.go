// Package cpu implements the Sharp LR35902 decoder and executor
// (§4.5, §4.6): a multi-byte fetch state machine feeding a
// register-file-generic instruction executor, interrupt service between
// instructions, and HALT/STOP/EI-delay/DI semantics.
package cpu

import (
	"github.com/tuankiet65/knocknock/internal/interrupts"
	"github.com/tuankiet65/knocknock/internal/operand"
	"github.com/tuankiet65/knocknock/internal/state"
	"github.com/tuankiet65/knocknock/pkg/log"
)

// decodeState is the CPU decoder's between-byte state (§4.5).
type decodeState uint8

const (
	stateOpcode decodeState = iota
	stateCBPrefix
	stateImmediate8
	stateImmediate8Sign
	stateImmediate16Low
	stateImmediate16High
)

// CPU drives the LR35902 fetch/decode/execute/interrupt-service cycle.
type CPU struct {
	r   Registers
	bus operand.Memory
	irq *interrupts.Controller
	log log.Logger

	ime          bool
	eiPending    bool
	halted       bool
	decodeState  decodeState
	opcode       uint8
	imm8         uint8
	imm16Low     uint8
	pendingSlots pendingImmediate
}

// pendingImmediate carries the opcode waiting on an immediate byte
// between decode ticks.
type pendingImmediate struct {
	opcode uint8
}

// New constructs a CPU wired to bus for fetch/execute memory access and
// irq as both its interrupt source and its sink attachment point.
func New(bus operand.Memory, irq *interrupts.Controller, logger log.Logger) *CPU {
	if logger == nil {
		logger = log.NewNullLogger()
	}
	c := &CPU{bus: bus, irq: irq, log: logger}
	c.r.Reset()
	irq.AttachSink(c)
	return c
}

// Accept implements interrupts.Sink: the CPU only services interrupts
// between instructions (decoder parked at stateOpcode) and while not
// halted mid-fetch of a partial instruction.
func (c *CPU) Accept(source interrupts.Source) bool {
	if c.halted {
		c.halted = false
		if !c.ime {
			return false
		}
	}
	if !c.ime || c.decodeState != stateOpcode {
		return false
	}
	c.ime = false
	c.push16(c.r.PC)
	c.r.PC = source.Vector()
	return true
}

func (c *CPU) fetch8() uint8 {
	v := c.bus.Read(c.r.PC)
	c.r.PC++
	return v
}

// Tick implements clock.Subscriber: one decode-state transition per
// call, executing the instruction synchronously once assembled and
// handling the EI-delay and interrupt-service transitions that follow.
func (c *CPU) Tick() {
	if c.halted {
		return
	}

	switch c.decodeState {
	case stateOpcode:
		c.opcode = c.fetch8()
		if c.opcode == 0xCB {
			c.decodeState = stateCBPrefix
			return
		}
		if c.decodeOpcode(c.opcode) {
			// instruction needs an immediate; decodeOpcode already
			// transitioned c.decodeState and stashed pendingSlots.
			return
		}
		c.afterInstruction()
	case stateCBPrefix:
		c.executeCB(c.fetch8())
		c.decodeState = stateOpcode
		c.afterInstruction()
	case stateImmediate8:
		c.imm8 = c.fetch8()
		c.executeWithImm8(c.pendingSlots.opcode, c.imm8)
		c.decodeState = stateOpcode
		c.afterInstruction()
	case stateImmediate8Sign:
		c.imm8 = c.fetch8()
		c.executeWithImmSigned(c.pendingSlots.opcode, int8(c.imm8))
		c.decodeState = stateOpcode
		c.afterInstruction()
	case stateImmediate16Low:
		c.imm16Low = c.fetch8()
		c.decodeState = stateImmediate16High
	case stateImmediate16High:
		high := c.fetch8()
		imm16 := uint16(high)<<8 | uint16(c.imm16Low)
		c.executeWithImm16(c.pendingSlots.opcode, imm16)
		c.decodeState = stateOpcode
		c.afterInstruction()
	}
}

// afterInstruction applies the one-step EI-enable delay once an
// instruction has retired (§4.6: "IME becomes true only after one
// further instruction retires").
func (c *CPU) afterInstruction() {
	// EI itself (0xFB) is not the further instruction the delay waits for.
	if c.eiPending && c.opcode != 0xFB {
		c.eiPending = false
		c.ime = true
	}
}

var _ state.Stater = (*CPU)(nil)

func (c *CPU) Save(s *state.State) {
	s.Write8(c.r.A)
	s.Write8(c.r.F)
	s.Write8(c.r.B)
	s.Write8(c.r.C)
	s.Write8(c.r.D)
	s.Write8(c.r.E)
	s.Write8(c.r.H)
	s.Write8(c.r.L)
	s.Write16(c.r.SP)
	s.Write16(c.r.PC)
	s.WriteBool(c.ime)
	s.WriteBool(c.eiPending)
	s.WriteBool(c.halted)
	s.Write8(uint8(c.decodeState))
}

func (c *CPU) Load(s *state.State) {
	c.r.A = s.Read8()
	c.r.F = s.Read8()
	c.r.B = s.Read8()
	c.r.C = s.Read8()
	c.r.D = s.Read8()
	c.r.E = s.Read8()
	c.r.H = s.Read8()
	c.r.L = s.Read8()
	c.r.SP = s.Read16()
	c.r.PC = s.Read16()
	c.ime = s.ReadBool()
	c.eiPending = s.ReadBool()
	c.halted = s.ReadBool()
	c.decodeState = decodeState(s.Read8())
}
