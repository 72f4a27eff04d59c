package serial

import "time"

// pumpInterval matches netlink's writePump poll rate: fast enough that a
// completed 8-bit session's outgoing byte reaches the other side well
// within a frame.
const pumpInterval = time.Millisecond

// Link is satisfied by anything that can pump bytes between a
// Controller's queues and whatever sits on the other end of the link
// cable — the in-process Loopback below, or internal/serial/netlink's
// websocket-backed transport.
type Link interface {
	Close() error
}

// Loopback connects two Controllers directly, for a local two-player
// session or for tests, without any network transport in between.
type Loopback struct {
	a, b *Controller
	stop chan struct{}
}

// NewLoopback starts pumping every byte one side's Dequeue yields into
// the other side's Enqueue, and vice versa, until Close is called.
func NewLoopback(a, b *Controller) *Loopback {
	l := &Loopback{a: a, b: b, stop: make(chan struct{})}
	go l.pump(a, b)
	go l.pump(b, a)
	return l
}

func (l *Loopback) pump(from, to *Controller) {
	ticker := time.NewTicker(pumpInterval)
	defer ticker.Stop()
	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
			if b, ok := from.Dequeue(); ok {
				to.Enqueue(b)
			}
		}
	}
}

// Close stops both pump goroutines.
func (l *Loopback) Close() error {
	close(l.stop)
	return nil
}

var _ Link = (*Loopback)(nil)
