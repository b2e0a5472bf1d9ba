package tui

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
)

func TestWrapTextBreaksAtSpaces(t *testing.T) {
	lines := wrapText("one two three four", 9)
	want := []string{"one two", "three", "four"}
	if strings.Join(lines, "|") != strings.Join(want, "|") {
		t.Fatalf("unexpected wrap %q", lines)
	}
}

func TestWrapTextSplitsLongWords(t *testing.T) {
	lines := wrapText("abcdefghij", 4)
	if strings.Join(lines, "|") != "abcd|efgh|ij" {
		t.Fatalf("unexpected wrap %q", lines)
	}
}

func TestWrapTextArabicFitsWidth(t *testing.T) {
	text := "اللهم بك أصبحنا، وبك أمسينا، وبك نحيا، وبك نموت، وإليك النشور"
	for _, line := range wrapText(text, 20) {
		if runewidth.StringWidth(line) > 20 {
			t.Fatalf("line too wide: %q", line)
		}
	}
}

func TestWrapTextEmpty(t *testing.T) {
	lines := wrapText("   ", 10)
	if len(lines) != 1 || lines[0] != "" {
		t.Fatalf("expected a single empty line, got %q", lines)
	}
}
