// Package notify delivers prayer and azkar reminders to the user.
package notify

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
)

// Message kinds.
const (
	KindAdhan    = "adhan"
	KindAzkar    = "azkar"
	KindPreAdhan = "pre_adhan"
	KindTest     = "test"
)

// Message is one reminder.
type Message struct {
	Kind   string    `json:"kind"`
	Title  string    `json:"title"`
	Body   string    `json:"body"`
	Prayer string    `json:"prayer,omitempty"`
	Time   string    `json:"time,omitempty"`
	At     time.Time `json:"at"`
	// Vibrate is the buzz length; sinks without a buzzer may ignore it.
	Vibrate time.Duration `json:"-"`
}

// Notifier delivers messages.
//
//go:generate mockgen -destination=../alarm/mock_notifier_test.go -package=alarm github.com/verte-zerg/salat/internal/notify Notifier
type Notifier interface {
	Notify(ctx context.Context, msg Message) error
}

// Func adapts a function to Notifier.
type Func func(ctx context.Context, msg Message) error

// Notify implements Notifier.
func (f Func) Notify(ctx context.Context, msg Message) error {
	return f(ctx, msg)
}

// Multi fans a message out to every sink. A failing sink never stops the
// others; errors are joined.
type Multi []Notifier

// Notify implements Notifier.
func (m Multi) Notify(ctx context.Context, msg Message) error {
	var errs []error
	for _, n := range m {
		if n == nil {
			continue
		}
		if err := n.Notify(ctx, msg); err != nil {
			log.Warn().Err(err).Str("kind", msg.Kind).Msg("notification sink failed")
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
