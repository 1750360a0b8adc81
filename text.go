package staffdir

import (
	"regexp"
	"strings"
)

// emailPattern matches an email-shaped substring.
var emailPattern = regexp.MustCompile(`(?i)\b[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}\b`)

// labelPattern matches field labels that directory markup repeats inside names.
var labelPattern = regexp.MustCompile(`(?i)\b(Email|Name|Title|Main|Phone)\b`)

// invalidTitleFragments mark a job title as a placeholder or a misaligned column.
var invalidTitleFragments = []string{"@", "TBD", "N/A", "None", "/", "?"}

// CleanName removes repeated field labels (Email, Name, Title, Main, Phone)
// from raw as whole words, then collapses whitespace.
func CleanName(raw string) string {
	return strings.Join(strings.Fields(labelPattern.ReplaceAllString(raw, "")), " ")
}

// IsValidJobTitle reports whether text can be surfaced as a job title.
func IsValidJobTitle(text string) bool {
	if text == "" {
		return false
	}
	if emailPattern.MatchString(text) {
		return false
	}
	for _, fragment := range invalidTitleFragments {
		if strings.Contains(text, fragment) {
			return false
		}
	}
	return true
}

// FindEmailToken returns the first whitespace-delimited token of text that
// contains an email address. The whole token is returned, so it may carry
// surrounding punctuation; pass it through FindEmailAnywhere to isolate the
// address. Returns "" if no token matches.
func FindEmailToken(text string) string {
	for _, token := range strings.Fields(text) {
		if emailPattern.MatchString(token) {
			return strings.TrimSpace(token)
		}
	}
	return ""
}

// FindEmailAnywhere returns the first email address found anywhere in text,
// or "" if there is none.
func FindEmailAnywhere(text string) string {
	return strings.TrimSpace(emailPattern.FindString(text))
}

// NormalizeEmail isolates an email address from a cell or mailto target.
func NormalizeEmail(text string) string {
	return FindEmailAnywhere(FindEmailToken(text))
}
