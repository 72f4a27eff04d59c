package cartridge

import "github.com/tuankiet65/knocknock/internal/state"

// mbc1 implements the MBC1 address-translation algorithm from §4.2: a
// 5-bit primary bank register, a 2-bit secondary register shared between
// the ROM's upper bank bits and the RAM bank number depending on mode, and
// a RAM-enable latch.
type mbc1 struct {
	rom    []byte
	ram    []byte
	header *Header

	ramg  bool // RAM-enable latch, 0x0000-0x1FFF
	bank1 uint8 // 5-bit primary ROM bank, 0x2000-0x3FFF
	bank2 uint8 // 2-bit secondary bank, 0x4000-0x5FFF
	mode  bool  // false = MODE_0, true = MODE_1, 0x6000-0x7FFF
}

func newMBC1(rom []byte, header *Header) *mbc1 {
	return &mbc1{
		rom:    rom,
		ram:    make([]byte, header.RAMSize),
		header: header,
		bank1:  1,
	}
}

func (m *mbc1) Header() *Header { return m.header }

func (m *mbc1) Read(addr uint16) uint8 {
	switch {
	case addr <= 0x3FFF:
		bank := uint32(0)
		if m.mode {
			bank = uint32(m.bank2) << 5
		}
		offset := (bank*0x4000 + uint32(addr)) % uint32(len(m.rom))
		return m.rom[offset]
	case addr <= 0x7FFF:
		bank := uint32(m.bank2)<<5 | uint32(m.bank1)
		offset := (bank*0x4000 + uint32(addr-0x4000)) % uint32(len(m.rom))
		return m.rom[offset]
	case addr >= 0xA000 && addr <= 0xBFFF:
		if !m.ramg || len(m.ram) == 0 {
			return 0xFF
		}
		bank := uint32(0)
		if m.mode {
			bank = uint32(m.bank2)
		}
		offset := (bank*0x2000 + uint32(addr-0xA000)) % uint32(len(m.ram))
		return m.ram[offset]
	default:
		return 0xFF
	}
}

func (m *mbc1) Write(addr uint16, value uint8) {
	switch {
	case addr <= 0x1FFF:
		m.ramg = value&0x0F == 0x0A
	case addr <= 0x3FFF:
		value &= 0b11111
		if value == 0 {
			value = 1
		}
		m.bank1 = value
	case addr <= 0x5FFF:
		m.bank2 = value & 0b11
	case addr <= 0x7FFF:
		m.mode = value&1 == 1
	case addr >= 0xA000 && addr <= 0xBFFF:
		if !m.ramg || len(m.ram) == 0 {
			return
		}
		bank := uint32(0)
		if m.mode {
			bank = uint32(m.bank2)
		}
		offset := (bank*0x2000 + uint32(addr-0xA000)) % uint32(len(m.ram))
		m.ram[offset] = value
	}
}

var _ state.Stater = (*mbc1)(nil)

func (m *mbc1) Save(s *state.State) {
	s.WriteData(m.ram)
	s.WriteBool(m.ramg)
	s.Write8(m.bank1)
	s.Write8(m.bank2)
	s.WriteBool(m.mode)
}

func (m *mbc1) Load(s *state.State) {
	s.ReadData(m.ram)
	m.ramg = s.ReadBool()
	m.bank1 = s.Read8()
	m.bank2 = s.Read8()
	m.mode = s.ReadBool()
}
