package cartridge

import "fmt"

// Cartridge is the bus.Region every memory bank controller implements. It
// additionally owns the immutable ROM bytes and the Header derived from
// them for the cartridge's lifetime (§3: "The cartridge byte vector is
// owned by the MBC for its lifetime").
type Cartridge interface {
	Read(addr uint16) uint8
	Write(addr uint16, value uint8)
	Header() *Header
}

// New constructs the right controller for header.Type. Cartridge types
// outside flat ROM / MBC1 / MBC2 are surfaced as an error to the loader
// (§7: "cartridge type not implemented ... surfaced to the loader"),
// never as a panic — the core itself never fails after construction.
func New(rom []byte, header *Header) (Cartridge, error) {
	switch {
	case header.Type.isFlat():
		return newFlatROM(rom, header), nil
	case header.Type.isMBC1():
		return newMBC1(rom, header), nil
	case header.Type.isMBC2():
		return newMBC2(rom, header), nil
	default:
		return nil, fmt.Errorf("cartridge: unimplemented cartridge type %s", header.Type)
	}
}
