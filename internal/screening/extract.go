package screening

import (
	"regexp"
	"strconv"
	"strings"
)

// ExtractStatus is the tagged outcome of extracting one field from a user turn.
type ExtractStatus int

const (
	Extracted ExtractStatus = iota
	// InvalidFormat means the text attempted the field but failed validation.
	InvalidFormat
	// Unparseable means no recognizable content for the requested field.
	Unparseable
	// OutOfRange means the value parsed but violates a policy bound.
	OutOfRange
)

// Extraction carries the normalized value when Status is Extracted.
type Extraction struct {
	Status ExtractStatus
	Value  string
}

const maxExperienceYears = 60

var (
	emailRe      = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	nonDigitRe   = regexp.MustCompile(`\D`)
	digitRe      = regexp.MustCompile(`\d`)
	experienceRe = regexp.MustCompile(`(\d+(?:\.\d+)?)`)
	stackSplitRe = regexp.MustCompile(`(?i)\s*(?:,|;|\band\b)\s*`)
)

// ExtractField parses a free-text turn into the requested field. It is a pure
// function: applying the value to the record is the state machine's job.
func ExtractField(field Field, text string) Extraction {
	text = strings.TrimSpace(text)

	switch field {
	case FieldEmail:
		return extractEmail(text)
	case FieldPhone:
		return extractPhone(text)
	case FieldExperience:
		return extractExperience(text)
	case FieldTechStack:
		return extractStack(text)
	default:
		// Name, position and location have no strict grammar: any non-empty
		// answer to the asked question is accepted as-is.
		if text == "" {
			return Extraction{Status: Unparseable}
		}
		return Extraction{Status: Extracted, Value: text}
	}
}

func extractEmail(text string) Extraction {
	if match := emailRe.FindString(text); match != "" {
		return Extraction{Status: Extracted, Value: match}
	}
	if strings.Contains(text, "@") {
		return Extraction{Status: InvalidFormat}
	}
	return Extraction{Status: Unparseable}
}

func extractPhone(text string) Extraction {
	if !digitRe.MatchString(text) {
		return Extraction{Status: Unparseable}
	}
	digits := nonDigitRe.ReplaceAllString(text, "")
	if len(digits) < 7 || len(digits) > 15 {
		return Extraction{Status: InvalidFormat}
	}
	return Extraction{Status: Extracted, Value: digits}
}

func extractExperience(text string) Extraction {
	match := experienceRe.FindString(text)
	if match == "" {
		return Extraction{Status: Unparseable}
	}
	years, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return Extraction{Status: Unparseable}
	}
	whole := int(years)
	if whole > maxExperienceYears {
		return Extraction{Status: OutOfRange}
	}
	return Extraction{Status: Extracted, Value: strconv.Itoa(whole)}
}

func extractStack(text string) Extraction {
	stack := ParseTechStack(text)
	if len(stack) == 0 {
		return Extraction{Status: Unparseable}
	}
	return Extraction{Status: Extracted, Value: strings.Join(stack, ", ")}
}

// ParseTechStack splits a free-text technology list on commas, semicolons and
// the word "and", dropping duplicates while preserving order.
func ParseTechStack(text string) []string {
	parts := stackSplitRe.Split(strings.TrimSpace(text), -1)

	stack := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, part := range parts {
		part = strings.Trim(part, " .")
		if part == "" {
			continue
		}
		key := strings.ToLower(part)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		stack = append(stack, part)
	}
	return stack
}
