package apperrors

import (
	"errors"
	"strings"
)

type Kind string

const (
	KindIO     Kind = "io"
	KindImage  Kind = "image"
	KindConfig Kind = "config"
)

type Error struct {
	Kind Kind
	// SafeMessage is what the user sees in the status line.
	SafeMessage string
	// Cause keeps the original error for errors.Is/As and logs.
	Cause error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if msg := strings.TrimSpace(e.SafeMessage); msg != "" {
		return msg
	}
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return defaultSafeMessage(e.Kind)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func defaultSafeMessage(kind Kind) string {
	switch kind {
	case KindIO:
		return "File operation failed."
	case KindImage:
		return "The file is not a readable image."
	case KindConfig:
		return "Localization table is incomplete."
	default:
		return "Operation failed."
	}
}

// New builds an *Error. An empty safeMessage falls back to the cause's
// message, then to a per-kind default.
func New(kind Kind, safeMessage string, cause error) error {
	msg := strings.TrimSpace(safeMessage)
	if msg == "" && cause != nil {
		msg = strings.TrimSpace(cause.Error())
	}
	if msg == "" {
		msg = defaultSafeMessage(kind)
	}
	return &Error{
		Kind:        kind,
		SafeMessage: msg,
		Cause:       cause,
	}
}

func IO(err error) error {
	return New(KindIO, "", err)
}

func Image(err error) error {
	return New(KindImage, "", err)
}

func Config(err error) error {
	return New(KindConfig, "", err)
}

func KindOf(err error) (Kind, bool) {
	var e *Error
	if !errors.As(err, &e) {
		return "", false
	}
	return e.Kind, true
}

// Is reports whether err is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

func PublicMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Error()
	}
	return err.Error()
}
