package cartridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeHeader(t *testing.T, typ Type, romSize, ramSize int) *Header {
	t.Helper()
	return &Header{Type: typ, ROMSize: romSize, RAMSize: ramSize}
}

func TestMBC1_OutOfBoundROMRead(t *testing.T) {
	// four banks, filled with 0x01, 0x02, 0x03, 0x04 respectively.
	rom := make([]byte, 4*0x4000)
	for bank := 0; bank < 4; bank++ {
		for i := range rom[bank*0x4000 : (bank+1)*0x4000] {
			rom[bank*0x4000+i] = byte(bank + 1)
		}
	}
	h := makeHeader(t, TypeMBC1, len(rom), 0)
	m := newMBC1(rom, h)

	m.Write(0x2000, 5) // select bank 5 (mode 0)
	require.Equal(t, uint8(5), m.bank1)

	// bank 5 mod 4 banks = bank 1 -> filled with 0x02
	assert.Equal(t, uint8(0x02), m.Read(0x4000))
	assert.Equal(t, uint8(0x02), m.Read(0x7FFF))
}

func TestMBC1_Mode0AlwaysReadsBankZeroLow(t *testing.T) {
	rom := make([]byte, 4*0x4000)
	rom[0] = 0xAA   // bank 0
	rom[0x4000] = 0xBB // bank 1
	h := makeHeader(t, TypeMBC1, len(rom), 0)
	m := newMBC1(rom, h)

	m.Write(0x4000, 0b01) // bank2 = 1
	assert.Equal(t, uint8(0xAA), m.Read(0x0000), "mode 0 low region always reads bank 0")
}

func TestMBC1_BankZeroPromotedToOne(t *testing.T) {
	rom := make([]byte, 4*0x4000)
	h := makeHeader(t, TypeMBC1, len(rom), 0)
	m := newMBC1(rom, h)

	m.Write(0x2000, 0)
	assert.Equal(t, uint8(1), m.bank1)
}

func TestMBC2_BankGatingAndNibbleMasking(t *testing.T) {
	rom := make([]byte, 2*0x4000)
	h := makeHeader(t, TypeMBC2, len(rom), 0)
	m := newMBC2(rom, h)

	m.Write(0x0000, 0x0A) // RAM enable
	require.True(t, m.ramg)

	m.Write(0xA000, 0x55)
	assert.Equal(t, uint8(0xF5), m.Read(0xA000), "upper nibble forced to F")

	m.Write(0x0000, 0x00) // RAM disable
	require.False(t, m.ramg)
	assert.Equal(t, uint8(0xFF), m.Read(0xA000))
}

func TestFlatROM_RAMOutOfBoundsReturnsFF(t *testing.T) {
	rom := make([]byte, 0x8000)
	h := makeHeader(t, TypeROM, len(rom), 0)
	f := newFlatROM(rom, h)

	assert.Equal(t, uint8(0xFF), f.Read(0xA000))
	f.Write(0xA000, 0x42) // dropped, no RAM configured
	assert.Equal(t, uint8(0xFF), f.Read(0xA000))
}

func TestParseHeader_Checksum(t *testing.T) {
	rom := make([]byte, 0x150)
	copy(rom[0x134:], "KNOCKNOCK")
	rom[0x147] = byte(TypeMBC1)
	rom[0x148] = 0x00 // 32KiB
	rom[0x149] = 0x02 // 8KiB

	var sum uint16
	for _, b := range rom[0x134:0x14D] {
		sum += uint16(b)
	}
	rom[0x14D] = byte(-(int16(sum) + 0x19))

	h, err := ParseHeader(rom)
	require.NoError(t, err)
	assert.Equal(t, "KNOCKNOCK", h.Title)
	assert.True(t, h.ChecksumValid())
	assert.Equal(t, 32*1024, h.ROMSize)
	assert.Equal(t, 8*1024, h.RAMSize)
}
