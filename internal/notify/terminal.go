package notify

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"
)

const bellStep = 500 * time.Millisecond

// Terminal prints reminders as "[HH:MM] Title: Body".
type Terminal struct {
	Out io.Writer
}

// Notify implements Notifier.
func (t Terminal) Notify(_ context.Context, msg Message) error {
	var b strings.Builder
	at := msg.At
	if at.IsZero() {
		at = time.Now()
	}
	fmt.Fprintf(&b, "[%s] %s", at.Format("15:04"), msg.Title)
	if msg.Body != "" {
		fmt.Fprintf(&b, ": %s", msg.Body)
	}
	b.WriteByte('\n')
	if _, err := io.WriteString(t.Out, b.String()); err != nil {
		return fmt.Errorf("failed to write notification: %w", err)
	}
	return nil
}

// Bell rings the terminal bell once per started half second of Vibrate.
type Bell struct {
	Out io.Writer
}

// Notify implements Notifier.
func (b Bell) Notify(_ context.Context, msg Message) error {
	if msg.Vibrate <= 0 {
		return nil
	}
	rings := int((msg.Vibrate + bellStep - 1) / bellStep)
	if _, err := io.WriteString(b.Out, strings.Repeat("\a", rings)); err != nil {
		return fmt.Errorf("failed to ring bell: %w", err)
	}
	return nil
}
