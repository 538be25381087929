// Package i18n holds the localized UI strings.
package i18n

import "fmt"

// Key names one display string.
type Key int

const (
	KeyTitle Key = iota
	KeyLoadLabel
	KeySaveLabel
	KeyLanguageToggleLabel
	KeyDefaultText
	KeySuccessMessage
	KeyNotFoundMessage
	KeySaveSuccessMessage
	KeySaveErrorTemplate

	keyCount
)

var keyNames = [keyCount]string{
	KeyTitle:               "Title",
	KeyLoadLabel:           "LoadButton",
	KeySaveLabel:           "SaveButton",
	KeyLanguageToggleLabel: "LanguageButton",
	KeyDefaultText:         "DefaultText",
	KeySuccessMessage:      "SuccessMessage",
	KeyNotFoundMessage:     "NotFoundMessage",
	KeySaveSuccessMessage:  "SaveSuccessMessage",
	KeySaveErrorTemplate:   "SaveErrorMessage",
}

// Keys returns every key in declaration order.
func Keys() []Key {
	out := make([]Key, 0, keyCount)
	for k := Key(0); k < keyCount; k++ {
		out = append(out, k)
	}
	return out
}

func (k Key) Valid() bool {
	return k >= 0 && k < keyCount
}

// IsTemplate reports whether the string takes one %s detail argument.
func (k Key) IsTemplate() bool {
	return k == KeySaveErrorTemplate
}

func (k Key) String() string {
	if k.Valid() {
		return keyNames[k]
	}
	return fmt.Sprintf("Key(%d)", int(k))
}
