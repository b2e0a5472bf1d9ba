// Package kv defines the key-value capability used for settings and counters.
package kv

import (
	"context"
	"errors"
	"strconv"
)

// ErrNotFound is returned by Get when the key is absent.
var ErrNotFound = errors.New("kv: key not found")

// Store is a string key-value store. Writes are last-write-wins.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// String returns the stored value or def when absent.
func String(ctx context.Context, st Store, key, def string) (string, error) {
	v, err := st.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return def, nil
	}
	if err != nil {
		return def, err
	}
	return v, nil
}

// Int returns the stored integer or def when absent or malformed.
func Int(ctx context.Context, st Store, key string, def int) (int, error) {
	v, err := st.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return def, nil
	}
	if err != nil {
		return def, err
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def, nil
	}
	return n, nil
}

// Bool returns the stored boolean or def when absent or malformed.
func Bool(ctx context.Context, st Store, key string, def bool) (bool, error) {
	v, err := st.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return def, nil
	}
	if err != nil {
		return def, err
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def, nil
	}
	return b, nil
}

// SetInt stores an integer.
func SetInt(ctx context.Context, st Store, key string, value int) error {
	return st.Set(ctx, key, strconv.Itoa(value))
}

// SetBool stores a boolean.
func SetBool(ctx context.Context, st Store, key string, value bool) error {
	return st.Set(ctx, key, strconv.FormatBool(value))
}
