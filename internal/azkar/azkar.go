// Package azkar holds the remembrance lists and the reading position in each.
package azkar

import (
	"fmt"
	"strings"
	"time"
)

// Type names a list.
type Type string

// List types.
const (
	Morning Type = "morning"
	Evening Type = "evening"
	Sleep   Type = "sleep"
)

// Types lists every list type in display order.
var Types = []Type{Morning, Evening, Sleep}

// Dhikr is one remembrance and how many times to repeat it.
type Dhikr struct {
	Text  string `json:"text"`
	Count int    `json:"count"`
}

// ParseType accepts a type name or its first letter.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "morning", "m":
		return Morning, nil
	case "evening", "e":
		return Evening, nil
	case "sleep", "s":
		return Sleep, nil
	}
	return "", fmt.Errorf("unknown azkar list %q (morning, evening, sleep)", s)
}

// TypeAt picks the list that fits the hour of now.
func TypeAt(now time.Time) Type {
	switch h := now.Hour(); {
	case h >= 3 && h < 12:
		return Morning
	case h >= 12 && h < 21:
		return Evening
	default:
		return Sleep
	}
}

// Title is the English heading.
func (t Type) Title() string {
	switch t {
	case Morning:
		return "Morning"
	case Evening:
		return "Evening"
	case Sleep:
		return "Sleep"
	}
	return string(t)
}

// Arabic is the Arabic heading.
func (t Type) Arabic() string {
	switch t {
	case Morning:
		return "أذكار الصباح"
	case Evening:
		return "أذكار المساء"
	case Sleep:
		return "أذكار النوم"
	}
	return string(t)
}

var builtin = map[Type][]Dhikr{
	Morning: {
		{"أصبحنا وأصبح الملك لله، والحمد لله، لا إله إلا الله وحده لا شريك له، له الملك وله الحمد وهو على كل شيء قدير", 1},
		{"اللهم بك أصبحنا، وبك أمسينا، وبك نحيا، وبك نموت، وإليك النشور", 1},
		{"اللهم أنت ربي لا إله إلا أنت، خلقتني وأنا عبدك، وأنا على عهدك ووعدك ما استطعت، أعوذ بك من شر ما صنعت، أبوء لك بنعمتك علي، وأبوء بذنبي فاغفر لي فإنه لا يغفر الذنوب إلا أنت", 1},
		{"بسم الله الذي لا يضر مع اسمه شيء في الأرض ولا في السماء وهو السميع العليم", 3},
		{"سبحان الله وبحمده", 100},
		{"لا إله إلا الله وحده لا شريك له، له الملك وله الحمد، وهو على كل شيء قدير", 100},
	},
	Evening: {
		{"أمسينا وأمسى الملك لله، والحمد لله، لا إله إلا الله وحده لا شريك له، له الملك وله الحمد وهو على كل شيء قدير", 1},
		{"اللهم بك أمسينا، وبك أصبحنا، وبك نحيا، وبك نموت، وإليك المصير", 1},
		{"أعوذ بكلمات الله التامات من شر ما خلق", 3},
		{"بسم الله الذي لا يضر مع اسمه شيء في الأرض ولا في السماء وهو السميع العليم", 3},
		{"سبحان الله وبحمده", 100},
	},
	Sleep: {
		{"باسمك اللهم أموت وأحيا", 1},
		{"اللهم قني عذابك يوم تبعث عبادك", 3},
		{"سبحان الله (33) الحمد لله (33) الله أكبر (34)", 1},
		{"آية الكرسي: الله لا إله إلا هو الحي القيوم، لا تأخذه سنة ولا نوم", 1},
		{"باسمك ربي وضعت جنبي، وبك أرفعه، إن أمسكت نفسي فارحمها، وإن أرسلتها فاحفظها بما تحفظ به عبادك الصالحين", 1},
	},
}

// Builtin returns a copy of the built-in list.
func Builtin(t Type) []Dhikr {
	return append([]Dhikr(nil), builtin[t]...)
}
