// Package ram provides the passive byte-array storage backing work RAM
// (with its echo mirror) and high RAM; OAM and VRAM live in the PPU
// package. These are the simplest
// components in the system: range-checked arrays with no side effects
// beyond the echo address translation.
package ram

import (
	"fmt"

	"github.com/tuankiet65/knocknock/internal/state"
)

// WorkRAM backs 0xC000-0xDFFF plus its echo mirror at 0xE000-0xFDFF. The
// echo range aliases the low 7,680 bytes of work RAM (§4.3): it is an
// address-translation policy here, not separate storage.
type WorkRAM struct {
	data [0x2000]byte
}

// NewWorkRAM returns a zeroed 8KiB work RAM block.
func NewWorkRAM() *WorkRAM {
	return &WorkRAM{}
}

func (w *WorkRAM) translate(addr uint16) uint16 {
	switch {
	case addr >= 0xC000 && addr <= 0xDFFF:
		return addr - 0xC000
	case addr >= 0xE000 && addr <= 0xFDFF:
		return addr - 0xE000
	default:
		panic(fmt.Sprintf("ram: address %#04x out of work RAM range", addr))
	}
}

func (w *WorkRAM) Read(addr uint16) uint8 {
	return w.data[w.translate(addr)]
}

func (w *WorkRAM) Write(addr uint16, value uint8) {
	w.data[w.translate(addr)] = value
}

var _ state.Stater = (*WorkRAM)(nil)

func (w *WorkRAM) Save(s *state.State) { s.WriteData(w.data[:]) }
func (w *WorkRAM) Load(s *state.State) { s.ReadData(w.data[:]) }

// HighRAM backs the 127-byte 0xFF80-0xFFFE window, usable while OAM DMA is
// in flight (§GLOSSARY: HRAM).
type HighRAM struct {
	data [0x7F]byte
}

// NewHighRAM returns a zeroed 127-byte high RAM block.
func NewHighRAM() *HighRAM {
	return &HighRAM{}
}

func (h *HighRAM) Read(addr uint16) uint8 {
	return h.data[addr-0xFF80]
}

func (h *HighRAM) Write(addr uint16, value uint8) {
	h.data[addr-0xFF80] = value
}

var _ state.Stater = (*HighRAM)(nil)

func (h *HighRAM) Save(s *state.State) { s.WriteData(h.data[:]) }
func (h *HighRAM) Load(s *state.State) { s.ReadData(h.data[:]) }
