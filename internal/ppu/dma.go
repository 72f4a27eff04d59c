package ppu

import "github.com/tuankiet65/knocknock/internal/state"

const dmaAddr uint16 = 0xFF46

// Bus is the subset of bus.Bus the DMA engine needs to read an arbitrary
// source region (ROM, RAM, whatever the program points it at).
type Bus interface {
	Read(addr uint16) uint8
}

// OAMWriter is the DMA engine's private path into OAM. Real hardware's
// DMA unit writes OAM over its own internal bus, bypassing the
// CPU-access-window restriction WriteOAM enforces for the main bus — so
// this is deliberately a different method than the one bus.Region wiring
// uses, not a second route to the same gated Write.
type OAMWriter interface {
	WriteOAMDirect(addr uint16, value uint8)
}

// DMA implements the OAM DMA engine (§4.8): one byte copied per tick,
// 160 bytes total, source latched from a write to 0xFF46.
type DMA struct {
	bus Bus
	oam OAMWriter

	source       uint16
	sourceHigh   uint8
	counter      uint8
	transferring bool
}

func NewDMA(bus Bus, oam OAMWriter) *DMA {
	return &DMA{bus: bus, oam: oam}
}

func (d *DMA) Write(addr uint16, value uint8) {
	if addr != dmaAddr {
		panic("ppu: dma write to unmapped address")
	}
	d.sourceHigh = value
	d.source = uint16(value) << 8
	d.counter = 0
	d.transferring = true
}

func (d *DMA) Read(addr uint16) uint8 {
	if addr != dmaAddr {
		panic("ppu: dma read from unmapped address")
	}
	if d.transferring {
		return 0xFF
	}
	return d.sourceHigh
}

// Tick implements clock.Subscriber.
func (d *DMA) Tick() {
	if !d.transferring {
		return
	}
	d.oam.WriteOAMDirect(0xFE00+uint16(d.counter), d.bus.Read(d.source+uint16(d.counter)))
	d.counter++
	if d.counter == 160 {
		d.transferring = false
	}
}

var _ state.Stater = (*DMA)(nil)

func (d *DMA) Save(s *state.State) {
	s.Write16(d.source)
	s.Write8(d.sourceHigh)
	s.Write8(d.counter)
	s.WriteBool(d.transferring)
}

func (d *DMA) Load(s *state.State) {
	d.source = s.Read16()
	d.sourceHigh = s.Read8()
	d.counter = s.Read8()
	d.transferring = s.ReadBool()
}
