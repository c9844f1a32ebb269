package model

import "strings"

// Localized carries parallel values for the two platform languages.
// Both keys are always present on the wire, possibly as empty strings.
type Localized struct {
	Uz string `json:"uz"`
	Ru string `json:"ru"`
}

// Empty reports whether both translations are blank.
func (l Localized) Empty() bool {
	return strings.TrimSpace(l.Uz) == "" && strings.TrimSpace(l.Ru) == ""
}

// Complete reports whether both translations are filled in.
func (l Localized) Complete() bool {
	return strings.TrimSpace(l.Uz) != "" && strings.TrimSpace(l.Ru) != ""
}

// Get returns the value for a language code, defaulting to uz.
func (l Localized) Get(lang string) string {
	if lang == "ru" {
		return l.Ru
	}
	return l.Uz
}

// Set assigns the value for a language code. Unknown codes are ignored.
func (l *Localized) Set(lang, value string) {
	switch lang {
	case "uz":
		l.Uz = value
	case "ru":
		l.Ru = value
	}
}
