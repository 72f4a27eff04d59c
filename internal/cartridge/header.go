// Package cartridge implements the three memory bank controllers the core
// supports — flat ROM, MBC1, MBC2 — plus the header parsing that derives
// their construction parameters. Cartridge *file* parsing (archives,
// headers on disk) is an external collaborator's job per §6; this package
// only ever consumes a byte vector the loader already produced.
package cartridge

import (
	"fmt"

	"github.com/cespare/xxhash"
)

// Type is the cartridge-type byte at 0x0147.
type Type uint8

const (
	TypeROM        Type = 0x00
	TypeMBC1       Type = 0x01
	TypeMBC1RAM    Type = 0x02
	TypeMBC1RAMBat Type = 0x03
	TypeMBC2       Type = 0x05
	TypeMBC2Bat    Type = 0x06
	TypeROMRAM     Type = 0x08
	TypeROMRAMBat  Type = 0x09
)

func (t Type) String() string {
	switch t {
	case TypeROM:
		return "ROM"
	case TypeMBC1:
		return "MBC1"
	case TypeMBC1RAM:
		return "MBC1+RAM"
	case TypeMBC1RAMBat:
		return "MBC1+RAM+BATTERY"
	case TypeMBC2:
		return "MBC2"
	case TypeMBC2Bat:
		return "MBC2+BATTERY"
	case TypeROMRAM:
		return "ROM+RAM"
	case TypeROMRAMBat:
		return "ROM+RAM+BATTERY"
	default:
		return fmt.Sprintf("Type(%#02x)", uint8(t))
	}
}

// isFlat reports whether t is handled by the flatROM controller, which
// does no bank switching.
func (t Type) isFlat() bool {
	return t == TypeROM || t == TypeROMRAM || t == TypeROMRAMBat
}

func (t Type) isMBC1() bool {
	return t == TypeMBC1 || t == TypeMBC1RAM || t == TypeMBC1RAMBat
}

func (t Type) isMBC2() bool {
	return t == TypeMBC2 || t == TypeMBC2Bat
}

// romSizeTable maps the 0x0148 header byte to a ROM size in bytes (§6).
var romSizeTable = map[uint8]int{
	0x00: 32 * 1024,
	0x01: 64 * 1024,
	0x02: 128 * 1024,
	0x03: 256 * 1024,
	0x04: 512 * 1024,
	0x05: 1024 * 1024,
	0x06: 2 * 1024 * 1024,
	0x52: 1152 * 1024, // 1.1 MiB
	0x53: 1228800,     // 1.2 MiB
	0x54: 1536 * 1024, // 1.5 MiB
}

// ramSizeTable maps the 0x0149 header byte to a RAM size in bytes (§6).
var ramSizeTable = map[uint8]int{
	0x00: 0,
	0x01: 2 * 1024,
	0x02: 8 * 1024,
	0x03: 32 * 1024,
	0x04: 128 * 1024,
}

// Header is the subset of cartridge-header fields the core needs to
// construct the right memory bank controller (§6). Parsing more of the
// header (new/old licensee code, SGB flag, …) is the loader's business.
type Header struct {
	Title       string
	IsColor     bool // 0x80 at 0x0143
	Type        Type
	ROMSize     int
	RAMSize     int
	Checksum    uint8
	checksumOK  bool
	romHash     uint64
	warnings    []string
}

// ParseHeader reads the header fields out of rom. rom must be at least
// 0x150 bytes; the loader is expected to have already validated that much.
func ParseHeader(rom []byte) (*Header, error) {
	if len(rom) < 0x150 {
		return nil, fmt.Errorf("cartridge: ROM too short to contain a header (%d bytes)", len(rom))
	}

	h := &Header{}

	title := rom[0x134 : 0x134+15]
	end := len(title)
	for i, b := range title {
		if b == 0 {
			end = i
			break
		}
	}
	h.Title = string(title[:end])

	h.IsColor = rom[0x143] == 0x80
	h.Type = Type(rom[0x147])

	romByte := rom[0x148]
	if size, ok := romSizeTable[romByte]; ok {
		h.ROMSize = size
	} else {
		h.warnings = append(h.warnings, fmt.Sprintf("unrecognized ROM size byte %#02x", romByte))
		h.ROMSize = len(rom)
	}

	ramByte := rom[0x149]
	if size, ok := ramSizeTable[ramByte]; ok {
		h.RAMSize = size
	} else {
		h.warnings = append(h.warnings, fmt.Sprintf("unrecognized RAM size byte %#02x", ramByte))
	}

	h.Checksum = rom[0x14D]
	sum := uint16(0)
	for _, b := range rom[0x134:0x14D] {
		sum += uint16(b)
	}
	sum += 0x19 + uint16(h.Checksum)
	h.checksumOK = sum&0xFF == 0
	if !h.checksumOK {
		h.warnings = append(h.warnings, "header checksum mismatch")
	}

	h.romHash = xxhash.Sum64(rom)

	return h, nil
}

// ChecksumValid reports whether the header checksum formula in §6 held.
// A failing checksum is a warning, never a fatal error (§7).
func (h *Header) ChecksumValid() bool {
	return h.checksumOK
}

// Warnings returns any non-fatal issues found while parsing the header,
// for the loader to surface to the user.
func (h *Header) Warnings() []string {
	return h.warnings
}

// ROMHash is an xxhash fingerprint of the whole ROM image, used to
// identify a cartridge for logging or as a save-state key.
func (h *Header) ROMHash() uint64 {
	return h.romHash
}
