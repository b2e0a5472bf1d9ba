package azkar

import (
	"context"

	"github.com/verte-zerg/salat/internal/kv"
)

// Progress remembers the reading position in each list.
type Progress struct {
	st kv.Store
}

// NewProgress stores positions in st.
func NewProgress(st kv.Store) Progress {
	return Progress{st: st}
}

func indexKey(t Type) string {
	return "azkar_" + string(t) + "_index"
}

// Index returns the saved position clamped into [0, size).
func (p Progress) Index(ctx context.Context, t Type, size int) (int, error) {
	idx, err := kv.Int(ctx, p.st, indexKey(t), 0)
	if err != nil {
		return 0, err
	}
	return clamp(idx, size), nil
}

// SetIndex saves a position.
func (p Progress) SetIndex(ctx context.Context, t Type, idx int) error {
	return kv.SetInt(ctx, p.st, indexKey(t), idx)
}

// Next moves forward one item, stopping at the last.
func (p Progress) Next(ctx context.Context, t Type, size int) (int, error) {
	return p.step(ctx, t, size, 1)
}

// Prev moves back one item, stopping at the first.
func (p Progress) Prev(ctx context.Context, t Type, size int) (int, error) {
	return p.step(ctx, t, size, -1)
}

func (p Progress) step(ctx context.Context, t Type, size, delta int) (int, error) {
	idx, err := p.Index(ctx, t, size)
	if err != nil {
		return 0, err
	}
	next := clamp(idx+delta, size)
	if next == idx {
		return idx, nil
	}
	if err := p.SetIndex(ctx, t, next); err != nil {
		return idx, err
	}
	return next, nil
}

func clamp(idx, size int) int {
	if size <= 0 || idx < 0 {
		return 0
	}
	if idx >= size {
		return size - 1
	}
	return idx
}
