package screening

import "strings"

// Language selects the phrasing of prompts and canned texts. It never changes
// how user input is parsed.
type Language int

const (
	English Language = iota
	Hindi
)

func ParseLanguage(s string) Language {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hi", "hin", "hindi":
		return Hindi
	default:
		return English
	}
}

func (l Language) String() string {
	if l == Hindi {
		return "hindi"
	}
	return "english"
}
