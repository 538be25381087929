package i18n

import "github.com/oukeidos/qrscan/internal/language"

// Strings is the full set of display strings for one language.
// Adding a Key means adding a field here, so a missing translation
// shows up as an empty field that NewTable rejects.
type Strings struct {
	Title               string
	LoadLabel           string
	SaveLabel           string
	LanguageToggleLabel string
	DefaultText         string
	SuccessMessage      string
	NotFoundMessage     string
	SaveSuccessMessage  string
	SaveErrorTemplate   string
}

func (s *Strings) field(k Key) (string, bool) {
	switch k {
	case KeyTitle:
		return s.Title, true
	case KeyLoadLabel:
		return s.LoadLabel, true
	case KeySaveLabel:
		return s.SaveLabel, true
	case KeyLanguageToggleLabel:
		return s.LanguageToggleLabel, true
	case KeyDefaultText:
		return s.DefaultText, true
	case KeySuccessMessage:
		return s.SuccessMessage, true
	case KeyNotFoundMessage:
		return s.NotFoundMessage, true
	case KeySaveSuccessMessage:
		return s.SaveSuccessMessage, true
	case KeySaveErrorTemplate:
		return s.SaveErrorTemplate, true
	default:
		return "", false
	}
}

func russianSet() Strings {
	return Strings{
		Title:               "QR Сканер",
		LoadLabel:           "Загрузить изображение",
		SaveLabel:           "Сохранить результат",
		LanguageToggleLabel: "English",
		DefaultText:         "Тут будет выведен результат",
		SuccessMessage:      "QR-код успешно распознан!",
		NotFoundMessage:     "QR-код не найден на изображении.",
		SaveSuccessMessage:  "Результат успешно сохранен!",
		SaveErrorTemplate:   "Ошибка при сохранении: %s",
	}
}

func englishSet() Strings {
	return Strings{
		Title:               "QR Scanner",
		LoadLabel:           "Load Image",
		SaveLabel:           "Save Result",
		LanguageToggleLabel: "Русский",
		DefaultText:         "Result will be displayed here",
		SuccessMessage:      "QR code successfully recognized!",
		NotFoundMessage:     "QR code not found in the image.",
		SaveSuccessMessage:  "Result successfully saved!",
		SaveErrorTemplate:   "Error while saving: %s",
	}
}

func builtinSets() map[language.Lang]Strings {
	return map[language.Lang]Strings{
		language.Russian: russianSet(),
		language.English: englishSet(),
	}
}
