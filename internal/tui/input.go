package tui

import "unicode/utf8"

// editField applies one key press to a text field. Returns the new value and
// whether the key was consumed.
func editField(value, key string) (string, bool) {
	switch key {
	case "backspace":
		if value == "" {
			return value, true
		}
		_, size := utf8.DecodeLastRuneInString(value)
		return value[:len(value)-size], true
	case "space", " ":
		return value + " ", true
	}
	if utf8.RuneCountInString(key) == 1 {
		return value + key, true
	}
	return value, false
}

// maskField hides a secret while keeping its length visible.
func maskField(value string) string {
	masked := make([]rune, utf8.RuneCountInString(value))
	for i := range masked {
		masked[i] = '•'
	}
	return string(masked)
}
