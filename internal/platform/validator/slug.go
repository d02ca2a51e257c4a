package validator

import (
	"errors"
	"regexp"
)

// Identifier validation errors
var (
	ErrInvalidSlugFormat = errors.New("slug must contain only lowercase letters, numbers, hyphens and underscores")
	ErrSlugEmpty         = errors.New("slug cannot be empty")
	ErrSlugTooLong       = errors.New("slug is too long")
	ErrInvalidDocumentID = errors.New("document id must contain only letters, numbers, hyphens and underscores")
)

// MaxSlugLength bounds the uid segment accepted from URLs.
const MaxSlugLength = 200

var (
	slugValidationRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)
	documentIDRegex     = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
)

// ValidateSlugFormat checks that a post uid taken from a URL has the shape the
// CMS generates.
func ValidateSlugFormat(slug string, maxLength int) error {
	if slug == "" {
		return ErrSlugEmpty
	}

	if len(slug) > maxLength {
		return ErrSlugTooLong
	}

	if !slugValidationRegex.MatchString(slug) {
		return ErrInvalidSlugFormat
	}

	return nil
}

// ValidateDocumentID checks a CMS document id (used by preview links).
func ValidateDocumentID(id string) error {
	if !documentIDRegex.MatchString(id) {
		return ErrInvalidDocumentID
	}
	return nil
}
