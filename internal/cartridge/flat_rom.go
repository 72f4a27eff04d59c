package cartridge

import (
	"github.com/tuankiet65/knocknock/internal/state"
)

// flatROM implements cartridge types 0x00, 0x08, 0x09: no bank switching,
// an optional fixed external RAM window (§4.2).
type flatROM struct {
	rom    []byte
	ram    [0x2000]byte
	header *Header
}

func newFlatROM(rom []byte, header *Header) *flatROM {
	return &flatROM{rom: rom, header: header}
}

func (f *flatROM) Header() *Header { return f.header }

func (f *flatROM) Read(addr uint16) uint8 {
	switch {
	case addr <= 0x7FFF:
		if int(addr) < len(f.rom) {
			return f.rom[addr]
		}
		return 0xFF
	case addr >= 0xA000 && addr <= 0xBFFF:
		offset := int(addr - 0xA000)
		if offset < f.header.RAMSize && offset < len(f.ram) {
			return f.ram[offset]
		}
		return 0xFF
	default:
		return 0xFF
	}
}

func (f *flatROM) Write(addr uint16, value uint8) {
	switch {
	case addr <= 0x7FFF:
		// ROM is immutable; writes are absorbed (§4.2, §7).
	case addr >= 0xA000 && addr <= 0xBFFF:
		offset := int(addr - 0xA000)
		if offset < f.header.RAMSize && offset < len(f.ram) {
			f.ram[offset] = value
		}
	}
}

var _ state.Stater = (*flatROM)(nil)

func (f *flatROM) Save(s *state.State) { s.WriteData(f.ram[:]) }
func (f *flatROM) Load(s *state.State) { s.ReadData(f.ram[:]) }
