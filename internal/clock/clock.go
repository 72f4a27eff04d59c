// Package clock implements the master clock (§4.11): a fixed
// two-frequency divider distributing ticks to its subscribers in
// registration order.
package clock

import "fmt"

// Subscriber is any tickable component driven by the master clock.
type Subscriber interface {
	Tick()
}

type subscription struct {
	ratio uint
	sub   Subscriber
}

// Clock ticks each registered Subscriber out_frequency/in_frequency
// times per call to Tick, in the order subscribers were registered.
type Clock struct {
	inFrequency uint
	subs        []subscription
	lastRatio   uint
}

// New returns a Clock driven at inFrequency ticks per Tick call (i.e.
// Tick itself always represents one master cycle; inFrequency scales
// the ratios computed for subscribers registered at a higher
// out_frequency).
func New(inFrequency uint) *Clock {
	return &Clock{inFrequency: inFrequency}
}

// Register attaches sub, fired outFrequency/inFrequency times per
// master Tick. Per §4.11, each subsequent registration's out_frequency
// must be at least the preceding one's.
func (c *Clock) Register(outFrequency uint, sub Subscriber) error {
	ratio := outFrequency / c.inFrequency
	if ratio < c.lastRatio {
		return fmt.Errorf("clock: subscriber frequency %d is lower than a previously registered subscriber", outFrequency)
	}
	c.lastRatio = ratio
	c.subs = append(c.subs, subscription{ratio: ratio, sub: sub})
	return nil
}

// Tick advances the master clock by one cycle, firing each subscriber
// its registered ratio of times, in registration order.
func (c *Clock) Tick() {
	for _, s := range c.subs {
		for i := uint(0); i < s.ratio; i++ {
			s.sub.Tick()
		}
	}
}
