package language

import (
	"fmt"
	"strings"

	textlang "golang.org/x/text/language"
)

// Lang identifies one of the UI languages.
type Lang int

const (
	Russian Lang = iota
	English
)

// Default is the language the app starts in.
const Default = Russian

// Language describes a supported UI language.
type Language struct {
	Lang Lang
	Code string // short CLI/env code
	Name string // native name, shown on the toggle button
	Tag  textlang.Tag
}

// order is the fixed toggle order. Next wraps around it.
var order = []Language{
	{Lang: Russian, Code: "ru", Name: "Русский", Tag: textlang.Russian},
	{Lang: English, Code: "en", Name: "English", Tag: textlang.English},
}

var matcher = textlang.NewMatcher(tags())

func tags() []textlang.Tag {
	out := make([]textlang.Tag, len(order))
	for i, l := range order {
		out[i] = l.Tag
	}
	return out
}

// Supported returns the supported languages in toggle order.
func Supported() []Language {
	out := make([]Language, len(order))
	copy(out, order)
	return out
}

func (l Lang) Valid() bool {
	return l >= 0 && int(l) < len(order)
}

// Info returns the descriptor of l. ok is false for values outside the enumeration.
func (l Lang) Info() (Language, bool) {
	if !l.Valid() {
		return Language{}, false
	}
	return order[l], true
}

func (l Lang) String() string {
	if info, ok := l.Info(); ok {
		return info.Code
	}
	return fmt.Sprintf("Lang(%d)", int(l))
}

// Next returns the language after l in toggle order, wrapping to the first.
// Invalid values restart the cycle at Default.
func Next(l Lang) Lang {
	if !l.Valid() {
		return Default
	}
	return order[(int(l)+1)%len(order)].Lang
}

// GetLanguage returns the language for an exact short code ("ru", "en").
func GetLanguage(code string) (Language, bool) {
	needle := strings.ToLower(strings.TrimSpace(code))
	for _, l := range order {
		if l.Code == needle {
			return l, true
		}
	}
	return Language{}, false
}

// Match resolves a locale string such as "ru_RU.UTF-8", "en-GB" or "English"
// to the closest supported language.
func Match(locale string) (Lang, bool) {
	s := strings.TrimSpace(locale)
	if s == "" || s == "C" || s == "POSIX" {
		return Default, false
	}
	if l, ok := GetLanguage(s); ok {
		return l.Lang, true
	}
	for _, l := range order {
		if strings.EqualFold(l.Name, s) || strings.EqualFold(l.Tag.String(), s) {
			return l.Lang, true
		}
	}
	if i := strings.IndexAny(s, ".@"); i >= 0 {
		s = s[:i]
	}
	s = strings.ReplaceAll(s, "_", "-")
	tag, err := textlang.Parse(s)
	if err != nil {
		return Default, false
	}
	_, idx, conf := matcher.Match(tag)
	if conf == textlang.No {
		return Default, false
	}
	return order[idx].Lang, true
}

// Parse is Match with an error for unknown input.
func Parse(input string) (Lang, error) {
	if strings.TrimSpace(input) == "" {
		return Default, fmt.Errorf("language is empty")
	}
	l, ok := Match(input)
	if !ok {
		return Default, fmt.Errorf("unsupported language: %s (supported: %s)", input, CodesLabel())
	}
	return l, nil
}

// CodesLabel lists the short codes for help and error text.
func CodesLabel() string {
	codes := make([]string, len(order))
	for i, l := range order {
		codes[i] = l.Code
	}
	return strings.Join(codes, ", ")
}
