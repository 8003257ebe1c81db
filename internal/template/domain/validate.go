package domain

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	MaxNameLength   = 512
	MaxBodyLength   = 1024
	MaxFooterLength = 60
)

var (
	namePattern     = regexp.MustCompile(`^[a-z0-9_]+$`)
	languagePattern = regexp.MustCompile(`^[a-z]{2,3}(_[A-Za-z]{2,4})?$`)
)

// Validate checks t against WhatsApp template rules and returns a
// *ValidationError listing every failing field, or nil.
func Validate(t *Template) error {
	var fields []FieldError
	add := func(field, format string, args ...any) {
		fields = append(fields, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	switch {
	case t.name == "":
		add("name", "is required")
	case len(t.name) > MaxNameLength:
		add("name", "must be at most %d characters", MaxNameLength)
	case !namePattern.MatchString(t.name):
		add("name", "may only contain lowercase letters, digits and underscores")
	}

	if !t.category.IsValid() {
		add("category", "must be one of %v", Categories())
	}

	switch {
	case t.language == "":
		add("language", "is required")
	case !languagePattern.MatchString(t.language):
		add("language", "must look like en or en_US")
	}

	bodyLen := utf8.RuneCountInString(t.body)
	switch {
	case strings.TrimSpace(t.body) == "":
		add("body", "is required")
	case bodyLen > MaxBodyLength:
		add("body", "must be at most %d characters, got %d", MaxBodyLength, bodyLen)
	}

	if missing := missingVariables(Variables(t.body)); len(missing) > 0 {
		add("body", "variables must be numbered from {{1}} without gaps; missing %v", missing)
	}

	if n := utf8.RuneCountInString(t.footer); n > MaxFooterLength {
		add("footer", "must be at most %d characters, got %d", MaxFooterLength, n)
	}
	if len(Variables(t.footer)) > 0 {
		add("footer", "cannot contain variables")
	}

	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}
