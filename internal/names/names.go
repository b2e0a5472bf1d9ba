// Package names lists the ninety-nine names with short meanings.
package names

import (
	"strconv"
	"strings"
)

// Name is one entry of the list.
type Name struct {
	Number  int    `json:"number"`
	Arabic  string `json:"arabic"`
	Meaning string `json:"meaning"`
}

// All returns every name in order.
func All() []Name {
	return append([]Name(nil), list...)
}

// Get returns the name with the given number.
func Get(number int) (Name, bool) {
	if number < 1 || number > len(list) {
		return Name{}, false
	}
	return list[number-1], true
}

// Search returns names whose number equals q or whose text contains it.
// Arabic matching ignores diacritics and alef variants.
func Search(q string) []Name {
	q = strings.TrimSpace(q)
	if q == "" {
		return All()
	}
	if n, err := strconv.Atoi(q); err == nil {
		if name, ok := Get(n); ok {
			return []Name{name}
		}
		return nil
	}
	needle := Fold(q)
	var out []Name
	for _, name := range list {
		if strings.Contains(Fold(name.Arabic), needle) || strings.Contains(Fold(name.Meaning), needle) {
			out = append(out, name)
		}
	}
	return out
}

// Fold strips Arabic diacritics and tatweel and unifies alef, yaa and
// taa marbuta forms.
func Fold(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 0x064B && r <= 0x065F, r == 0x0670, r == 0x0640:
			continue
		case r == 'أ', r == 'إ', r == 'آ', r == 'ٱ':
			b.WriteRune('ا')
		case r == 'ى':
			b.WriteRune('ي')
		case r == 'ة':
			b.WriteRune('ه')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
