package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	valid := []string{
		"jane@school.test",
		"jane.doe+admin@school.example.com",
		"  Jane@School.Test  ", // trimmed and lowercased before matching
	}
	for _, s := range valid {
		assert.True(t, IsValidEmail(s), "expected %q to be valid", s)
	}

	invalid := []string{"", "jane", "jane@", "@school.test", "jane@school", "jane school@x.com"}
	for _, s := range invalid {
		assert.False(t, IsValidEmail(s), "expected %q to be invalid", s)
	}
}

func TestIsValidStudentCode(t *testing.T) {
	valid := []string{"STU-1041", "ab", "2025-0001", "X9"}
	for _, s := range valid {
		assert.True(t, IsValidStudentCode(s), "expected %q to be valid", s)
	}

	invalid := []string{"", "a", "has space", "stu_01", "code!", "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"}
	for _, s := range invalid {
		assert.False(t, IsValidStudentCode(s), "expected %q to be invalid", s)
	}
}
