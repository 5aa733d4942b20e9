package filter

import (
	"sync"
)

// Bank holds one Butterworth filter per named channel, all built with the same parameters.
// Filters are created on first use. Each channel must be fed in time order by a single owner.
type Bank struct {
	mu         sync.Mutex
	order      int
	cutOffFreq float64
	smpFreq    float64
	filters    map[string]*Butterworth
}

// NewBank validates the parameters once and returns an empty bank.
func NewBank(order int, cutOffFreq, smpFreq float64) (*Bank, error) {
	if _, err := NewButterworth(order, cutOffFreq, smpFreq); err != nil {
		return nil, err
	}
	return &Bank{
		order:      order,
		cutOffFreq: cutOffFreq,
		smpFreq:    smpFreq,
		filters:    map[string]*Butterworth{},
	}, nil
}

// Channel returns the filter of the named channel, creating it if needed.
func (b *Bank) Channel(name string) *Butterworth {
	b.mu.Lock()
	defer b.mu.Unlock()
	f, ok := b.filters[name]
	if !ok {
		// parameters were validated in NewBank
		f, _ = NewButterworth(b.order, b.cutOffFreq, b.smpFreq)
		b.filters[name] = f
	}
	return f
}

// Filter feeds x to the named channel and returns its output.
func (b *Bank) Filter(name string, x float64) float64 {
	return b.Channel(name).Filter(x)
}

// Reset clears the history of every channel.
func (b *Bank) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, f := range b.filters {
		f.Reset()
	}
}

// Len returns the number of channels created so far.
func (b *Bank) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.filters)
}
