package notify

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Command runs an external program per reminder, e.g. notify-send or an
// audio player for the adhan.
type Command struct {
	Line string
	// WithMessage appends title and body as the last two arguments.
	WithMessage bool
	// Kinds limits the sink to these message kinds; empty means all.
	Kinds   []string
	Timeout time.Duration
}

// Notify implements Notifier.
func (c Command) Notify(ctx context.Context, msg Message) error {
	if !c.accepts(msg.Kind) {
		return nil
	}
	parts := strings.Fields(c.Line)
	if len(parts) == 0 {
		return errors.New("notification command is empty")
	}
	args := parts[1:]
	if c.WithMessage {
		args = append(args, msg.Title, msg.Body)
	}
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}
	out, err := exec.CommandContext(ctx, parts[0], args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("failed to run %s: %w: %s", parts[0], err, strings.TrimSpace(string(out)))
	}
	return nil
}

func (c Command) accepts(kind string) bool {
	if len(c.Kinds) == 0 {
		return true
	}
	for _, k := range c.Kinds {
		if k == kind {
			return true
		}
	}
	return false
}
