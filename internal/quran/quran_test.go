package quran

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSurahList(t *testing.T) {
	all := All()
	if len(all) != Count {
		t.Fatalf("expected %d surahs, got %d", Count, len(all))
	}
	if all[0].English != "Al-Fatihah" || all[113].Arabic != "الناس" {
		t.Fatalf("unexpected ends: %+v %+v", all[0], all[113])
	}
	if got := Get(200); got.English != "Surah 200" {
		t.Fatalf("unexpected fallback %+v", got)
	}
}

func TestNextPrevWrap(t *testing.T) {
	if Next(114) != 1 || Next(1) != 2 {
		t.Fatalf("next must wrap")
	}
	if Prev(1) != 114 || Prev(114) != 113 {
		t.Fatalf("prev must wrap")
	}
}

func TestTrackURL(t *testing.T) {
	url, err := TrackURL("https://server7.mp3quran.net/basit/", 2)
	if err != nil || url != "https://server7.mp3quran.net/basit/002.mp3" {
		t.Fatalf("unexpected url %q %v", url, err)
	}
	if _, err := TrackURL("", 1); err == nil {
		t.Fatalf("expected error for empty server")
	}
	if _, err := TrackURL("https://x", 115); err == nil {
		t.Fatalf("expected error for out of range surah")
	}
}

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "player.sh")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

func TestPlayerRunsAndStops(t *testing.T) {
	p := &Player{Command: writeScript(t, "sleep 5")}
	if err := p.Play(context.Background(), 36, "https://x/036.mp3"); err != nil {
		t.Fatalf("play: %v", err)
	}
	if p.Playing() != 36 {
		t.Fatalf("expected surah 36 playing, got %d", p.Playing())
	}
	start := time.Now()
	p.Stop()
	if time.Since(start) > 3*time.Second {
		t.Fatalf("stop took too long")
	}
	if p.Playing() != 0 {
		t.Fatalf("expected nothing playing after stop")
	}
}

func TestPlayerWait(t *testing.T) {
	p := &Player{Command: writeScript(t, "exit 0")}
	if err := p.Play(context.Background(), 1, "https://x/001.mp3"); err != nil {
		t.Fatalf("play: %v", err)
	}
	if err := p.Wait(); err != nil {
		t.Fatalf("wait: %v", err)
	}
	if p.Playing() != 0 {
		t.Fatalf("finished track must clear playing state")
	}
	if err := (&Player{}).Play(context.Background(), 1, "u"); err == nil {
		t.Fatalf("expected error for empty command")
	}
}
