package i18n

import (
	"fmt"
	"strings"
	"sync"

	"github.com/oukeidos/qrscan/internal/apperrors"
	"github.com/oukeidos/qrscan/internal/language"
)

// Table maps (language, key) to display text. It is read-only after NewTable.
type Table struct {
	sets map[language.Lang]Strings
}

// NewTable validates sets and returns an immutable table. Every supported
// language must be present, every key non-empty, and every template must
// carry exactly one %s verb.
func NewTable(sets map[language.Lang]Strings) (*Table, error) {
	copied := make(map[language.Lang]Strings, len(sets))
	for _, l := range language.Supported() {
		s, ok := sets[l.Lang]
		if !ok {
			return nil, apperrors.Config(fmt.Errorf("no strings for language %s", l.Code))
		}
		for _, k := range Keys() {
			text, _ := s.field(k)
			if strings.TrimSpace(text) == "" {
				return nil, apperrors.Config(fmt.Errorf("missing %s for language %s", k, l.Code))
			}
			if k.IsTemplate() && strings.Count(text, "%s") != 1 {
				return nil, apperrors.Config(fmt.Errorf("%s for language %s must contain exactly one %%s", k, l.Code))
			}
		}
		copied[l.Lang] = s
	}
	return &Table{sets: copied}, nil
}

var defaultTable = sync.OnceValue(func() *Table {
	t, err := NewTable(builtinSets())
	if err != nil {
		panic(err)
	}
	return t
})

// Default returns the built-in ru/en table.
func Default() *Table {
	return defaultTable()
}

// Lookup returns the text for key in language l.
func (t *Table) Lookup(l language.Lang, k Key) (string, error) {
	s, ok := t.sets[l]
	if !ok {
		return "", apperrors.Config(fmt.Errorf("unknown language %s", l))
	}
	text, ok := s.field(k)
	if !ok {
		return "", apperrors.Config(fmt.Errorf("unknown key %s", k))
	}
	return text, nil
}

// Format looks up a template key and interpolates detail into it.
func (t *Table) Format(l language.Lang, k Key, detail string) (string, error) {
	if !k.IsTemplate() {
		return "", apperrors.Config(fmt.Errorf("%s is not a template", k))
	}
	tmpl, err := t.Lookup(l, k)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(tmpl, detail), nil
}

// Strings returns a copy of the whole set for l.
func (t *Table) Strings(l language.Lang) (Strings, bool) {
	s, ok := t.sets[l]
	return s, ok
}
