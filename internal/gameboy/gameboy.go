// Package gameboy wires the independently-developed components — bus,
// cartridge, CPU, PPU, interrupts, joypad, timer, serial — into one
// runnable DMG system and drives the master clock that ticks them all.
package gameboy

import (
	"fmt"

	"github.com/tuankiet65/knocknock/internal/bus"
	"github.com/tuankiet65/knocknock/internal/cartridge"
	"github.com/tuankiet65/knocknock/internal/clock"
	"github.com/tuankiet65/knocknock/internal/cpu"
	"github.com/tuankiet65/knocknock/internal/interrupts"
	"github.com/tuankiet65/knocknock/internal/joypad"
	"github.com/tuankiet65/knocknock/internal/ppu"
	"github.com/tuankiet65/knocknock/internal/ram"
	"github.com/tuankiet65/knocknock/internal/serial"
	"github.com/tuankiet65/knocknock/internal/state"
	"github.com/tuankiet65/knocknock/internal/timer"
	"github.com/tuankiet65/knocknock/pkg/log"
)

// masterFrequency is the DMG's T-cycle rate: one GameBoy.Tick call
// advances the system by exactly one of these cycles (§4.11).
const masterFrequency uint = 4194304

// GameBoy owns every core component and the bus/clock wiring between
// them. It exposes no GUI, audio, or save-file policy of its own — those
// are external collaborators per §6.
type GameBoy struct {
	bus    *bus.Bus
	clock  *clock.Clock
	CPU    *cpu.CPU
	PPU    *ppu.PPU
	DMA    *ppu.DMA
	Cart   cartridge.Cartridge
	Joypad *joypad.State
	Timer  *timer.Controller
	Serial *serial.Controller
	IRQ    *interrupts.Controller

	workRAM *ram.WorkRAM
	highRAM *ram.HighRAM
}

// New parses rom's header, constructs the right cartridge controller, and
// wires the full bus/clock graph. logger may be nil, in which case every
// component falls back to a no-op logger.
func New(rom []byte, logger log.Logger) (*GameBoy, error) {
	if logger == nil {
		logger = log.NewNullLogger()
	}

	header, err := cartridge.ParseHeader(rom)
	if err != nil {
		return nil, fmt.Errorf("gameboy: parsing header: %w", err)
	}
	cart, err := cartridge.New(rom, header)
	if err != nil {
		return nil, fmt.Errorf("gameboy: constructing cartridge: %w", err)
	}

	b := bus.New(logger)
	irq := interrupts.NewController()
	pad := joypad.New()
	timerCtl := timer.NewController(irq)
	serialCtl := serial.NewController(irq)
	video := ppu.New(irq)
	dma := ppu.NewDMA(b, video)
	workRAM := ram.NewWorkRAM()
	highRAM := ram.NewHighRAM()
	c := cpu.New(b, irq, logger)

	g := &GameBoy{
		bus:     b,
		CPU:     c,
		PPU:     video,
		DMA:     dma,
		Cart:    cart,
		Joypad:  pad,
		Timer:   timerCtl,
		Serial:  serialCtl,
		IRQ:     irq,
		workRAM: workRAM,
		highRAM: highRAM,
	}

	if err := g.mapRegions(); err != nil {
		return nil, err
	}

	g.clock = clock.New(masterFrequency)
	// registration order is dispatch order within one master tick
	// (§4.11: interrupt controller -> CPU -> PPU -> DMA -> serial ->
	// timer-like peripherals).
	for _, sub := range []clock.Subscriber{irq, c, video, dma, serialCtl, timerCtl} {
		if err := g.clock.Register(masterFrequency, sub); err != nil {
			return nil, fmt.Errorf("gameboy: registering clock subscriber: %w", err)
		}
	}

	return g, nil
}

func (g *GameBoy) mapRegions() error {
	type region struct {
		start, end uint16
		r          bus.Region
	}
	regions := []region{
		{0x0000, 0x7FFF, g.Cart},
		{0xA000, 0xBFFF, g.Cart},
		{0x8000, 0x9FFF, g.PPU.VRAMRegion()},
		{0xC000, 0xDFFF, g.workRAM},
		{0xE000, 0xFDFF, g.workRAM},
		{0xFE00, 0xFE9F, g.PPU.OAMRegion()},
		{0xFF00, 0xFF00, g.Joypad},
		{0xFF01, 0xFF02, g.Serial},
		{0xFF04, 0xFF07, g.Timer},
		{0xFF0F, 0xFF0F, g.IRQ},
		{0xFF40, 0xFF45, g.PPU.RegisterRegion()},
		{0xFF46, 0xFF46, g.DMA},
		{0xFF47, 0xFF4B, g.PPU.RegisterRegion()},
		{0xFF80, 0xFFFE, g.highRAM},
		{0xFFFF, 0xFFFF, g.IRQ},
	}
	for _, reg := range regions {
		if err := g.bus.RegisterRegion(reg.start, reg.end, reg.r); err != nil {
			return fmt.Errorf("gameboy: mapping %#04x-%#04x: %w", reg.start, reg.end, err)
		}
	}
	return nil
}

// Tick advances the whole system by one master cycle.
func (g *GameBoy) Tick() {
	g.clock.Tick()
}

// Frame ticks the system until the PPU completes the current frame,
// returning its finished 160x144 index-color buffer.
func (g *GameBoy) Frame() [144][160]uint8 {
	startLine := g.PPU.Mode()
	for {
		g.Tick()
		if g.PPU.Mode() == ppu.VBlank && startLine != ppu.VBlank {
			break
		}
		startLine = g.PPU.Mode()
	}
	return g.PPU.Frame()
}

// PressButton marks b held, raising a joypad interrupt on the
// released-to-pressed edge (§4.9).
func (g *GameBoy) PressButton(b joypad.Button) {
	if g.Joypad.Press(b) {
		g.IRQ.Request(interrupts.Joypad)
	}
}

// ReleaseButton marks b released.
func (g *GameBoy) ReleaseButton(b joypad.Button) {
	g.Joypad.Release(b)
}

// Bus exposes the shared address space for external collaborators that
// need raw memory access, such as debuggers.
func (g *GameBoy) Bus() *bus.Bus { return g.bus }

var _ state.Stater = (*GameBoy)(nil)

// Save captures every stateful component in the same fixed order Load
// expects them back in.
func (g *GameBoy) Save(s *state.State) {
	g.CPU.Save(s)
	g.PPU.Save(s)
	g.DMA.Save(s)
	g.Cart.(state.Stater).Save(s)
	g.Joypad.Save(s)
	g.Timer.Save(s)
	g.Serial.Save(s)
	g.IRQ.Save(s)
	g.workRAM.Save(s)
	g.highRAM.Save(s)
}

func (g *GameBoy) Load(s *state.State) {
	g.CPU.Load(s)
	g.PPU.Load(s)
	g.DMA.Load(s)
	g.Cart.(state.Stater).Load(s)
	g.Joypad.Load(s)
	g.Timer.Load(s)
	g.Serial.Load(s)
	g.IRQ.Load(s)
	g.workRAM.Load(s)
	g.highRAM.Load(s)
}
