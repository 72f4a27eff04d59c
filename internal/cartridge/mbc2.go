package cartridge

import "github.com/tuankiet65/knocknock/internal/state"

// mbc2 implements the MBC2 controller (§4.2): a 4-bit ROM bank register
// selected by bit 8 of the control address, a RAM-enable latch, and a
// fixed 512-nibble RAM array unique to this controller.
type mbc2 struct {
	rom    []byte
	ram    [512]byte // low nibble only; upper nibble always reads as 0xF
	header *Header

	ramg bool
	bank uint8
}

func newMBC2(rom []byte, header *Header) *mbc2 {
	return &mbc2{rom: rom, header: header, bank: 1}
}

func (m *mbc2) Header() *Header { return m.header }

func (m *mbc2) Read(addr uint16) uint8 {
	switch {
	case addr <= 0x3FFF:
		return m.rom[int(addr)%len(m.rom)]
	case addr <= 0x7FFF:
		offset := (int(m.bank)*0x4000 + int(addr-0x4000)) % len(m.rom)
		return m.rom[offset]
	case addr >= 0xA000 && addr <= 0xBFFF:
		if !m.ramg {
			return 0xFF
		}
		return m.ram[addr&0x01FF] | 0xF0
	default:
		return 0xFF
	}
}

func (m *mbc2) Write(addr uint16, value uint8) {
	switch {
	case addr <= 0x3FFF:
		if addr&0x0100 == 0x0100 {
			bank := value & 0x0F
			if bank == 0 {
				bank = 1
			}
			m.bank = bank
		} else {
			m.ramg = value&0x0F == 0x0A
		}
	case addr >= 0xA000 && addr <= 0xBFFF:
		if m.ramg {
			m.ram[addr&0x01FF] = value & 0x0F
		}
	}
}

var _ state.Stater = (*mbc2)(nil)

func (m *mbc2) Save(s *state.State) {
	s.WriteData(m.ram[:])
	s.WriteBool(m.ramg)
	s.Write8(m.bank)
}

func (m *mbc2) Load(s *state.State) {
	s.ReadData(m.ram[:])
	m.ramg = s.ReadBool()
	m.bank = s.Read8()
}
