// Package ppu implements the picture processing unit (§4.7): the
// LCDC/STAT/LY mode-sequencing state machine, OAM/VRAM access windows,
// tile decoding, and background/window/sprite compositing into a
// 160x144 shade framebuffer.
package ppu

import (
	"github.com/tuankiet65/knocknock/internal/interrupts"
	"github.com/tuankiet65/knocknock/internal/state"
)

// Mode is one of the four PPU states, numerically equal to the value
// reported in STAT bits 1-0.
type Mode uint8

const (
	HBlank Mode = iota
	VBlank
	OAMScan
	LCDDraw
)

const (
	lcdcAddr uint16 = 0xFF40
	statAddr uint16 = 0xFF41
	scyAddr  uint16 = 0xFF42
	scxAddr  uint16 = 0xFF43
	lyAddr   uint16 = 0xFF44
	lycAddr  uint16 = 0xFF45
	bgpAddr  uint16 = 0xFF47
	obp0Addr uint16 = 0xFF48
	obp1Addr uint16 = 0xFF49
	wyAddr   uint16 = 0xFF4A
	wxAddr   uint16 = 0xFF4B

	oamScanDots = 80
	lcdDrawDots = 172 // fixed; real hardware varies 172-289 with sprite/scroll fetch penalties
	lineDots    = 456
	visibleLines = 144
	totalLines   = 154

	vramBase uint16 = 0x8000
	vramSize        = 0x2000
	oamBase  uint16 = 0xFE00
	oamSize         = 0xA0
)

// PPU owns display memory, the LCDC/STAT register file, and the mode
// state machine. Its VRAM/OAM windows and its register range reach the
// bus through the bus.Region views returned by VRAMRegion, OAMRegion and
// RegisterRegion.
type PPU struct {
	lcdc, stat          uint8
	scy, scx, ly, lyc    uint8
	bgp, obp0, obp1      uint8
	wy, wx               uint8

	vram [vramSize]byte
	oam  [oamSize]byte

	mode       Mode
	dot        uint16
	lycMatched bool
	windowLine uint8

	frame [visibleLines][160]uint8

	irq *interrupts.Controller
}

func New(irq *interrupts.Controller) *PPU {
	return &PPU{irq: irq, lcdc: 0x91, stat: 0x85, mode: OAMScan}
}

func (p *PPU) enabled() bool { return p.lcdc&(1<<7) != 0 }

// Frame returns the most recently completed frame's shade buffer
// (row-major, 160 columns, one 2-bit shade index per pixel).
func (p *PPU) Frame() [visibleLines][160]uint8 { return p.frame }

func (p *PPU) Mode() Mode { return p.mode }

// Tick implements clock.Subscriber, advancing one dot.
func (p *PPU) Tick() {
	if !p.enabled() {
		return
	}
	p.dot++

	switch p.mode {
	case OAMScan:
		if p.dot == oamScanDots {
			p.dot = 0
			p.mode = LCDDraw
		}
	case LCDDraw:
		if p.dot == lcdDrawDots {
			p.dot = 0
			p.mode = HBlank
			if int(p.ly) < visibleLines {
				p.renderLine()
			}
		}
	case HBlank:
		if p.dot == lineDots-oamScanDots-lcdDrawDots {
			p.dot = 0
			p.advanceLine()
		}
	case VBlank:
		if p.dot == lineDots {
			p.dot = 0
			p.advanceLine()
		}
	}
}

func (p *PPU) advanceLine() {
	p.ly++
	p.checkLYC()
	switch {
	case p.ly == visibleLines:
		p.mode = VBlank
		p.irq.Request(interrupts.VBlank)
	case p.ly == totalLines:
		p.ly = 0
		p.windowLine = 0
		p.checkLYC()
		p.mode = OAMScan
	case p.mode == VBlank:
		// stay in VBlank until ly wraps
	default:
		p.mode = OAMScan
	}
}

func (p *PPU) checkLYC() {
	match := p.ly == p.lyc
	if match && !p.lycMatched && p.stat&(1<<6) != 0 {
		p.irq.Request(interrupts.LCDStatus)
	}
	p.lycMatched = match
}

func (p *PPU) resetToDisabled() {
	p.ly = 0
	p.dot = 0
	p.mode = HBlank
	p.lycMatched = false
	p.windowLine = 0
}

// --- register bus.Region ---

func (p *PPU) ReadRegister(addr uint16) uint8 {
	switch addr {
	case lcdcAddr:
		return p.lcdc
	case statAddr:
		coincidence := uint8(0)
		if p.ly == p.lyc {
			coincidence = 1 << 2
		}
		return p.stat&0b0111_1000 | coincidence | uint8(p.mode) | 0x80
	case scyAddr:
		return p.scy
	case scxAddr:
		return p.scx
	case lyAddr:
		return p.ly
	case lycAddr:
		return p.lyc
	case bgpAddr:
		return p.bgp
	case obp0Addr:
		return p.obp0
	case obp1Addr:
		return p.obp1
	case wyAddr:
		return p.wy
	case wxAddr:
		return p.wx
	default:
		panic("ppu: read from unmapped register")
	}
}

func (p *PPU) WriteRegister(addr uint16, value uint8) {
	switch addr {
	case lcdcAddr:
		wasEnabled := p.enabled()
		p.lcdc = value
		if wasEnabled && !p.enabled() {
			p.resetToDisabled()
		}
	case statAddr:
		p.stat = value & 0b0111_1000
	case scyAddr:
		p.scy = value
	case scxAddr:
		p.scx = value
	case lyAddr:
		// read-only; writes dropped (§7).
	case lycAddr:
		p.lyc = value
		p.checkLYC()
	case bgpAddr:
		p.bgp = value
	case obp0Addr:
		p.obp0 = value
	case obp1Addr:
		p.obp1 = value
	case wyAddr:
		p.wy = value
	case wxAddr:
		p.wx = value
	default:
		panic("ppu: write to unmapped register")
	}
}

// --- VRAM/OAM bus.Region: access windows per §4.7 ---

func (p *PPU) ReadVRAM(addr uint16) uint8 {
	if p.enabled() && p.mode == LCDDraw {
		return 0xFF
	}
	return p.vram[addr-vramBase]
}

func (p *PPU) WriteVRAM(addr uint16, value uint8) {
	if p.enabled() && p.mode == LCDDraw {
		return
	}
	p.vram[addr-vramBase] = value
}

func (p *PPU) ReadOAM(addr uint16) uint8 {
	if p.enabled() && p.mode != HBlank && p.mode != VBlank {
		return 0xFF
	}
	return p.oam[addr-oamBase]
}

func (p *PPU) WriteOAM(addr uint16, value uint8) {
	if p.enabled() && p.mode != HBlank && p.mode != VBlank {
		return
	}
	p.oam[addr-oamBase] = value
}

// WriteOAMDirect writes OAM over the DMA engine's internal bus, which on
// real hardware isn't subject to the CPU access-window restriction
// WriteOAM enforces — it's what makes OAM DMA useful for updating sprite
// data while the PPU is mid-scan.
func (p *PPU) WriteOAMDirect(addr uint16, value uint8) {
	p.oam[addr-oamBase] = value
}

// Registers, VRAM, and OAM are three disjoint bus.Region windows backed
// by the same PPU, each with its own access rules — these thin views
// let the bus register all three independently.

type registerRegion struct{ ppu *PPU }

func (r registerRegion) Read(addr uint16) uint8       { return r.ppu.ReadRegister(addr) }
func (r registerRegion) Write(addr uint16, v uint8)   { r.ppu.WriteRegister(addr, v) }

type vramRegion struct{ ppu *PPU }

func (r vramRegion) Read(addr uint16)     uint8 { return r.ppu.ReadVRAM(addr) }
func (r vramRegion) Write(addr uint16, v uint8) { r.ppu.WriteVRAM(addr, v) }

type oamRegion struct{ ppu *PPU }

func (r oamRegion) Read(addr uint16)     uint8 { return r.ppu.ReadOAM(addr) }
func (r oamRegion) Write(addr uint16, v uint8) { r.ppu.WriteOAM(addr, v) }

// RegisterRegion returns the bus.Region for 0xFF40-0xFF4B (minus 0xFF46,
// which belongs to the DMA engine).
func (p *PPU) RegisterRegion() interface {
	Read(uint16) uint8
	Write(uint16, uint8)
} {
	return registerRegion{p}
}

// VRAMRegion returns the bus.Region for 0x8000-0x9FFF.
func (p *PPU) VRAMRegion() interface {
	Read(uint16) uint8
	Write(uint16, uint8)
} {
	return vramRegion{p}
}

// OAMRegion returns the bus.Region for 0xFE00-0xFE9F.
func (p *PPU) OAMRegion() interface {
	Read(uint16) uint8
	Write(uint16, uint8)
} {
	return oamRegion{p}
}

var _ state.Stater = (*PPU)(nil)

func (p *PPU) Save(s *state.State) {
	s.Write8(p.lcdc)
	s.Write8(p.stat)
	s.Write8(p.scy)
	s.Write8(p.scx)
	s.Write8(p.ly)
	s.Write8(p.lyc)
	s.Write8(p.bgp)
	s.Write8(p.obp0)
	s.Write8(p.obp1)
	s.Write8(p.wy)
	s.Write8(p.wx)
	s.WriteData(p.vram[:])
	s.WriteData(p.oam[:])
	s.Write8(uint8(p.mode))
	s.Write16(p.dot)
	s.WriteBool(p.lycMatched)
	s.Write8(p.windowLine)
}

func (p *PPU) Load(s *state.State) {
	p.lcdc = s.Read8()
	p.stat = s.Read8()
	p.scy = s.Read8()
	p.scx = s.Read8()
	p.ly = s.Read8()
	p.lyc = s.Read8()
	p.bgp = s.Read8()
	p.obp0 = s.Read8()
	p.obp1 = s.Read8()
	p.wy = s.Read8()
	p.wx = s.Read8()
	s.ReadData(p.vram[:])
	s.ReadData(p.oam[:])
	p.mode = Mode(s.Read8())
	p.dot = s.Read16()
	p.lycMatched = s.ReadBool()
	p.windowLine = s.Read8()
}
