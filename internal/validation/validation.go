// Package validation contains small input validation helpers shared by handlers.
package validation

import (
	"regexp"
	"strings"
	"time"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail reports whether s looks like an email address.
func ValidateEmail(s string) bool {
	return emailRegex.MatchString(s)
}

// ValidatePassword enforces the minimum password length.
func ValidatePassword(s string) bool {
	return len(s) >= 6
}

// DateLayout is the wire format for experience and education dates.
const DateLayout = "02-01-2006"

// ParseDate parses a required DD-MM-YYYY date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(s))
}

// ParseOptionalDate parses a DD-MM-YYYY date, returning nil for an empty
// string. A malformed non-empty value also yields nil rather than an error
// so an open-ended "to" date never rejects the entry.
func ParseOptionalDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil
	}
	return &t
}

// SplitSkills turns a comma separated skills string into a trimmed list.
// Empty segments are dropped.
func SplitSkills(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
