package serial

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tuankiet65/knocknock/internal/interrupts"
)

func TestLoopback_BytesDequeuedFromOneSideReachTheOther(t *testing.T) {
	a := NewController(interrupts.NewController())
	b := NewController(interrupts.NewController())
	link := NewLoopback(a, b)
	defer link.Close()

	a.mu.Lock()
	a.outgoing = append(a.outgoing, 0x42)
	a.mu.Unlock()

	require.Eventually(t, func() bool {
		v, ok := b.Dequeue()
		return ok && v == 0x42
	}, time.Second, time.Millisecond)

	assert.NotNil(t, link)
}
