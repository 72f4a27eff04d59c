package joypad

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoypad_NoSelectorPulledReadsAllOnes(t *testing.T) {
	s := New()
	s.Press(A)
	assert.Equal(t, uint8(0xFF), s.Read(registerAddr))
}

func TestJoypad_DirectionColumn(t *testing.T) {
	s := New()
	s.Write(registerAddr, 0xEF) // clear bit 4 -> pull P14
	s.Press(Up)

	got := s.Read(registerAddr)
	assert.Equal(t, uint8(0), got&(1<<2), "Up bit cleared")
	assert.NotEqual(t, uint8(0), got&(1<<0), "Right not pressed")
}

func TestJoypad_ButtonColumnIndependentOfDirection(t *testing.T) {
	s := New()
	s.Write(registerAddr, 0xDF) // clear bit 5 -> pull P15
	s.Press(Start)

	got := s.Read(registerAddr)
	assert.Equal(t, uint8(0), got&(1<<3), "Start bit cleared")
	assert.NotEqual(t, uint8(0), got&(1<<4), "P14 column untouched")
}

func TestJoypad_PressReturnsEdgeOnce(t *testing.T) {
	s := New()
	assert.True(t, s.Press(B))
	assert.False(t, s.Press(B), "already pressed, not a new edge")
	s.Release(B)
	assert.True(t, s.Press(B), "edge again after release")
}
