package azkar

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// LoadCustom reads "text|count" lines. A missing count means 1; lines
// starting with # are comments.
func LoadCustom(path string) ([]Dhikr, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only list.
			_ = cerr
		}
	}()

	var items []Dhikr
	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		text, countText, hasCount := strings.Cut(line, "|")
		text = strings.TrimSpace(text)
		if text == "" {
			return nil, fmt.Errorf("%s:%d: empty text", path, lineNo)
		}
		count := 1
		if hasCount {
			count, err = strconv.Atoi(strings.TrimSpace(countText))
			if err != nil || count <= 0 {
				return nil, fmt.Errorf("%s:%d: invalid count %q", path, lineNo, countText)
			}
		}
		items = append(items, Dhikr{Text: text, Count: count})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("azkar list is empty")
	}
	return items, nil
}

// List returns the built-in list extended with <dir>/<type>.txt when present.
func List(t Type, dir string) ([]Dhikr, error) {
	items := Builtin(t)
	if dir == "" {
		return items, nil
	}
	extra, err := LoadCustom(filepath.Join(dir, string(t)+".txt"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return items, nil
		}
		return items, fmt.Errorf("failed to load custom %s azkar: %w", t, err)
	}
	return append(items, extra...), nil
}
