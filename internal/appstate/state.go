// Package appstate is the scanner's UI-independent state machine: the active
// language, the displayed text and the status line, plus the three user
// actions that change them.
package appstate

import (
	"context"
	"errors"
	"io/fs"

	"github.com/rivo/uniseg"

	"github.com/oukeidos/qrscan/internal/apperrors"
	"github.com/oukeidos/qrscan/internal/files"
	"github.com/oukeidos/qrscan/internal/i18n"
	"github.com/oukeidos/qrscan/internal/language"
	"github.com/oukeidos/qrscan/internal/logger"
	"github.com/oukeidos/qrscan/internal/scanner"
)

// Scanner is the image decode collaborator.
type Scanner interface {
	ScanFile(ctx context.Context, path string) (scanner.Result, error)
}

// WriteFunc persists text at path.
type WriteFunc func(path, text string) error

// Outcome classifies the result of the last action.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeDecoded
	OutcomeNotFound
	OutcomeLoadFailed
	OutcomeSaved
	OutcomeSaveFailed
)

// message is a localized string remembered by key so it can be re-rendered
// after a language switch. A zero message with literal == "" is empty.
type message struct {
	key     i18n.Key
	detail  string
	literal string
	keyed   bool
}

func keyed(k i18n.Key) message { return message{key: k, keyed: true} }

func templated(k i18n.Key, detail string) message {
	return message{key: k, detail: detail, keyed: true}
}

func literal(s string) message { return message{literal: s} }

// View is every string the shell needs to paint the form.
type View struct {
	Title         string
	LoadLabel     string
	SaveLabel     string
	LanguageLabel string
	DisplayedText string
	StatusMessage string
}

// State holds the form state. It is not safe for concurrent use; the shell
// serializes actions on its event goroutine.
type State struct {
	table   *i18n.Table
	scanner Scanner
	write   WriteFunc

	lang    language.Lang
	display message
	status  message
	outcome Outcome
}

type Option func(*State)

// WithTable replaces the built-in localization table.
func WithTable(t *i18n.Table) Option {
	return func(s *State) {
		if t != nil {
			s.table = t
		}
	}
}

// WithWriter replaces the file writer used by Save.
func WithWriter(w WriteFunc) Option {
	return func(s *State) {
		if w != nil {
			s.write = w
		}
	}
}

// New returns a Ready state in lang, showing the default text.
func New(lang language.Lang, sc Scanner, opts ...Option) *State {
	if !lang.Valid() {
		lang = language.Default
	}
	s := &State{
		table:   i18n.Default(),
		scanner: sc,
		write:   files.WriteText,
		lang:    lang,
		display: keyed(i18n.KeyDefaultText),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *State) Language() language.Lang { return s.lang }

func (s *State) Outcome() Outcome { return s.outcome }

// DisplayedText is the text area content in the current language.
func (s *State) DisplayedText() string { return s.render(s.display) }

// StatusMessage is the status line in the current language.
func (s *State) StatusMessage() string { return s.render(s.status) }

// View renders the whole form for the current language.
func (s *State) View() View {
	return View{
		Title:         s.lookup(i18n.KeyTitle),
		LoadLabel:     s.lookup(i18n.KeyLoadLabel),
		SaveLabel:     s.lookup(i18n.KeySaveLabel),
		LanguageLabel: s.lookup(i18n.KeyLanguageToggleLabel),
		DisplayedText: s.DisplayedText(),
		StatusMessage: s.StatusMessage(),
	}
}

// Decode reads the image at path and updates the text and status.
// It never returns an error; failures land in the status line.
func (s *State) Decode(ctx context.Context, path string) Outcome {
	if s.scanner == nil {
		s.status = templated(i18n.KeySaveErrorTemplate, "no decoder configured")
		s.outcome = OutcomeLoadFailed
		return s.outcome
	}
	res, err := s.scanner.ScanFile(ctx, path)
	switch {
	case err == nil:
		s.display = literal(res.Text)
		s.status = keyed(i18n.KeySuccessMessage)
		s.outcome = OutcomeDecoded
		logger.Info("Symbol decoded", "path", path, "format", res.Format, "graphemes", uniseg.GraphemeClusterCount(res.Text))
	case errors.Is(err, scanner.ErrNotFound):
		s.display = keyed(i18n.KeyNotFoundMessage)
		s.status = message{}
		s.outcome = OutcomeNotFound
		logger.Info("No symbol in image", "path", path)
	default:
		// Load failures share the save-error template.
		s.status = templated(i18n.KeySaveErrorTemplate, reason(err))
		s.outcome = OutcomeLoadFailed
		logger.Warn("Image decode failed", "path", path, "error", err)
	}
	return s.outcome
}

// Save writes the displayed text verbatim to path.
func (s *State) Save(path string) Outcome {
	text := s.DisplayedText()
	if err := s.write(path, text); err != nil {
		if _, ok := apperrors.KindOf(err); !ok {
			err = apperrors.IO(err)
		}
		s.status = templated(i18n.KeySaveErrorTemplate, reason(err))
		s.outcome = OutcomeSaveFailed
		logger.Warn("Save failed", "path", path, "error", err)
		return s.outcome
	}
	s.status = keyed(i18n.KeySaveSuccessMessage)
	s.outcome = OutcomeSaved
	logger.Info("Result saved", "path", path, "graphemes", uniseg.GraphemeClusterCount(text))
	return s.outcome
}

// ToggleLanguage advances to the next language and returns the new view.
// Placeholders and the status line are re-rendered. A decoded payload stays
// on screen and is not reset to DefaultText.
func (s *State) ToggleLanguage() View {
	prev := s.lang
	s.lang = language.Next(s.lang)
	logger.Debug("Language switched", "from", prev.String(), "to", s.lang.String())
	return s.View()
}

// SetLanguage switches directly to lang. Invalid values are ignored.
func (s *State) SetLanguage(lang language.Lang) View {
	if lang.Valid() {
		s.lang = lang
	}
	return s.View()
}

func (s *State) render(m message) string {
	if !m.keyed {
		return m.literal
	}
	if m.key.IsTemplate() {
		text, err := s.table.Format(s.lang, m.key, m.detail)
		if err != nil {
			logger.Error("Localization lookup failed", "key", m.key.String(), "lang", s.lang.String(), "error", err)
			return m.detail
		}
		return text
	}
	return s.lookup(m.key)
}

func (s *State) lookup(k i18n.Key) string {
	text, err := s.table.Lookup(s.lang, k)
	if err != nil {
		logger.Error("Localization lookup failed", "key", k.String(), "lang", s.lang.String(), "error", err)
		return k.String()
	}
	return text
}

// reason is the detail interpolated into error templates. File system
// errors are reduced to the OS reason ("permission denied") so temp file
// names do not leak into the status line.
func reason(err error) string {
	if apperrors.Is(err, apperrors.KindIO) {
		var pe *fs.PathError
		if errors.As(err, &pe) && pe.Err != nil {
			return pe.Err.Error()
		}
	}
	return apperrors.PublicMessage(err)
}
