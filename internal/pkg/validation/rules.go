// Package validation holds the input patterns shared by the services.
package validation

import (
	"regexp"
	"strings"
)

var (
	// EmailPattern matches a plain lowercase email address.
	EmailPattern = `^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`

	// StudentCodePattern matches the school's student identifiers:
	// letters, digits and dashes, 2 to 32 characters.
	StudentCodePattern = `^[A-Za-z0-9\-]{2,32}$`
)

// CompiledPatterns caches compiled regex patterns.
var CompiledPatterns = struct {
	Email       *regexp.Regexp
	StudentCode *regexp.Regexp
}{
	Email:       regexp.MustCompile(EmailPattern),
	StudentCode: regexp.MustCompile(StudentCodePattern),
}

// IsValidEmail reports whether s is a well-formed email address.
func IsValidEmail(s string) bool {
	return CompiledPatterns.Email.MatchString(strings.ToLower(strings.TrimSpace(s)))
}

// IsValidStudentCode reports whether s is an acceptable student identifier.
func IsValidStudentCode(s string) bool {
	return CompiledPatterns.StudentCode.MatchString(strings.TrimSpace(s))
}
