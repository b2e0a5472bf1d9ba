package prayer

import (
	"context"
	"sync"
	"time"
)

// Ticker recomputes the next prayer once per interval until its context ends.
type Ticker struct {
	interval time.Duration
	clock    func() time.Time
	onTick   func(Result, bool)

	mu       sync.Mutex
	schedule Schedule
	reset    chan struct{}
}

// NewTicker builds a one-second ticker for s. onTick may be nil.
func NewTicker(s Schedule, onTick func(Result, bool)) *Ticker {
	return &Ticker{
		interval: time.Second,
		clock:    time.Now,
		onTick:   onTick,
		schedule: s,
		reset:    make(chan struct{}, 1),
	}
}

// Run blocks, evaluating immediately and then on every tick.
func (t *Ticker) Run(ctx context.Context) error {
	tick := time.NewTicker(t.interval)
	defer tick.Stop()
	t.evaluate()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.reset:
			tick.Reset(t.interval)
			t.evaluate()
		case <-tick.C:
			t.evaluate()
		}
	}
}

// Reset swaps the schedule and restarts the tick phase.
func (t *Ticker) Reset(s Schedule) {
	t.mu.Lock()
	t.schedule = s
	t.mu.Unlock()
	select {
	case t.reset <- struct{}{}:
	default:
	}
}

func (t *Ticker) evaluate() {
	t.mu.Lock()
	res, ok := ComputeNext(t.schedule, At(t.clock()))
	onTick := t.onTick
	t.mu.Unlock()
	if onTick != nil {
		onTick(res, ok)
	}
}
