// Package joypad implements the matrix-decoded joypad register (§4.9).
package joypad

import "github.com/tuankiet65/knocknock/internal/state"

// Button identifies one of the eight physical buttons, split across the
// two selector columns latched by writes to the register.
type Button uint8

const (
	Right Button = iota
	Left
	Up
	Down
	A
	B
	Select
	Start
)

const registerAddr uint16 = 0xFF00

// State tracks the eight button latches and the two selector pulls
// (P14/P15) written by the program. Reads compose the two columns on
// demand rather than maintaining a precomputed register value, since
// either the selector or a button can change independently.
type State struct {
	pressed   [8]bool
	p14Pulled bool
	p15Pulled bool
}

func New() *State {
	return &State{}
}

// Press marks a button as held. Returns true if this transitions the
// button from released to pressed, so callers can raise the joypad
// interrupt on a falling edge (§4.9, §4.4).
func (s *State) Press(b Button) bool {
	was := s.pressed[b]
	s.pressed[b] = true
	return !was
}

func (s *State) Release(b Button) {
	s.pressed[b] = false
}

// Read implements bus.Region. Bits 0-3 report the active column(s),
// active-low; bits 4-5 echo the selector pulls; bits 6-7 always read 1.
func (s *State) Read(addr uint16) uint8 {
	if addr != registerAddr {
		panic("joypad: read from unmapped address")
	}

	result := uint8(0x3F)
	if s.p14Pulled {
		result &^= 1 << 4
		if s.pressed[Right] {
			result &^= 1 << 0
		}
		if s.pressed[Left] {
			result &^= 1 << 1
		}
		if s.pressed[Up] {
			result &^= 1 << 2
		}
		if s.pressed[Down] {
			result &^= 1 << 3
		}
	}
	if s.p15Pulled {
		result &^= 1 << 5
		if s.pressed[A] {
			result &^= 1 << 0
		}
		if s.pressed[B] {
			result &^= 1 << 1
		}
		if s.pressed[Select] {
			result &^= 1 << 2
		}
		if s.pressed[Start] {
			result &^= 1 << 3
		}
	}
	return result | 0xC0
}

// Write implements bus.Region. Only bits 4-5 are writable; the program
// pulls a selector low to read its column.
func (s *State) Write(addr uint16, value uint8) {
	if addr != registerAddr {
		panic("joypad: write to unmapped address")
	}
	s.p14Pulled = value&(1<<4) == 0
	s.p15Pulled = value&(1<<5) == 0
}

var _ state.Stater = (*State)(nil)

func (s *State) Save(st *state.State) {
	for _, b := range s.pressed {
		st.WriteBool(b)
	}
	st.WriteBool(s.p14Pulled)
	st.WriteBool(s.p15Pulled)
}

func (s *State) Load(st *state.State) {
	for i := range s.pressed {
		s.pressed[i] = st.ReadBool()
	}
	s.p14Pulled = st.ReadBool()
	s.p15Pulled = st.ReadBool()
}
