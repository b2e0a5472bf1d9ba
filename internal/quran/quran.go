// Package quran builds recitation URLs and plays them with an external player.
package quran

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

// Count is the number of surahs.
const Count = 114

// Surah is one chapter.
type Surah struct {
	Number  int    `json:"number"`
	Arabic  string `json:"arabic"`
	English string `json:"english"`
}

// All returns every surah in order.
func All() []Surah {
	return append([]Surah(nil), surahs...)
}

// Get returns a surah by number; unknown numbers get a generic name.
func Get(number int) Surah {
	if number >= 1 && number <= len(surahs) {
		return surahs[number-1]
	}
	return Surah{Number: number, Arabic: fmt.Sprintf("سورة %d", number), English: fmt.Sprintf("Surah %d", number)}
}

// Next wraps from the last surah to the first.
func Next(number int) int {
	if number >= Count || number < 1 {
		return 1
	}
	return number + 1
}

// Prev wraps from the first surah to the last.
func Prev(number int) int {
	if number <= 1 || number > Count {
		return Count
	}
	return number - 1
}

// TrackURL returns server/NNN.mp3 for a surah.
func TrackURL(server string, number int) (string, error) {
	server = strings.TrimRight(strings.TrimSpace(server), "/")
	if server == "" {
		return "", errors.New("reciter server is not set")
	}
	if number < 1 || number > Count {
		return "", fmt.Errorf("surah %d out of range 1-%d", number, Count)
	}
	return fmt.Sprintf("%s/%03d.mp3", server, number), nil
}

// Player runs an external command with the track URL appended.
type Player struct {
	Command string

	mu      sync.Mutex
	cmd     *exec.Cmd
	current int
	done    chan struct{}
	lastErr error
}

// Play stops any running track and starts url.
func (p *Player) Play(ctx context.Context, number int, url string) error {
	parts := strings.Fields(p.Command)
	if len(parts) == 0 {
		return errors.New("player command is empty")
	}
	p.Stop()

	cmd := exec.CommandContext(ctx, parts[0], append(parts[1:], url)...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start player: %w", err)
	}
	done := make(chan struct{})
	p.mu.Lock()
	p.cmd = cmd
	p.current = number
	p.done = done
	p.mu.Unlock()

	go func() {
		err := cmd.Wait()
		p.mu.Lock()
		if p.cmd == cmd {
			p.cmd = nil
			p.current = 0
		}
		p.lastErr = err
		p.mu.Unlock()
		if err != nil {
			log.Debug().Err(err).Int("surah", number).Msg("player exited")
		}
		close(done)
	}()
	return nil
}

// Stop kills the running player, if any.
func (p *Player) Stop() {
	p.mu.Lock()
	cmd := p.cmd
	done := p.done
	p.cmd = nil
	p.current = 0
	p.mu.Unlock()
	if cmd == nil || cmd.Process == nil {
		return
	}
	if err := cmd.Process.Kill(); err != nil {
		// Best-effort kill; the process may have exited.
		_ = err
	}
	if done != nil {
		<-done
	}
}

// Playing returns the surah number being played, or 0.
func (p *Player) Playing() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// Wait blocks until the current track ends.
func (p *Player) Wait() error {
	p.mu.Lock()
	done := p.done
	p.mu.Unlock()
	if done == nil {
		return nil
	}
	<-done
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}
