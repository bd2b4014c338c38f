package validators

import (
	"regexp"
	"strings"
)

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// IsValidEmail checks the usual local@domain.tld shape. No network lookups:
// bookings must validate offline.
func IsValidEmail(email string) bool {
	return emailRe.MatchString(strings.TrimSpace(email))
}

// IsValidName requires at least two characters after trimming.
func IsValidName(name string) bool {
	return len([]rune(strings.TrimSpace(name))) >= 2
}

// IsValidPhone accepts digits plus common formatting (hyphens, spaces,
// parentheses, leading +) and requires at least 10 such characters.
func IsValidPhone(phone string) bool {
	trimmed := strings.TrimSpace(phone)
	count := 0
	for _, r := range trimmed {
		switch {
		case r >= '0' && r <= '9':
			count++
		case r == '-' || r == ' ' || r == '(' || r == ')' || r == '+':
			count++
		default:
			return false
		}
	}
	return count >= 10
}
