package errors

import (
	"strings"
	"unicode"
)

// maxPersonIDLength bounds identifiers accepted from the CLI and API.
const maxPersonIDLength = 128

// ValidatePersonID validates a person identifier received from outside the process.
// Identifiers from the repository are trusted; only user input goes through here.
//
// Rules:
//   - No empty ids
//   - No control characters or null bytes
//   - No path separators (ids end up in URLs and cache keys)
//   - Maximum length of 128 bytes
func ValidatePersonID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidPersonID, "person id cannot be empty")
	}

	if len(id) > maxPersonIDLength {
		return New(ErrCodeInvalidPersonID, "person id too long (max %d characters)", maxPersonIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPersonID, "person id contains invalid control characters")
		}
	}

	if strings.ContainsAny(id, "/\\") {
		return New(ErrCodeInvalidPersonID, "person id cannot contain path separators")
	}

	return nil
}

// ValidateQuery validates a free-text search query.
// Empty queries are valid and mean "no search".
func ValidateQuery(q string) error {
	const maxQueryLength = 256
	if len(q) > maxQueryLength {
		return New(ErrCodeInvalidInput, "search query too long (max %d characters)", maxQueryLength)
	}
	for _, r := range q {
		if r == '\x00' {
			return New(ErrCodeInvalidInput, "search query contains null bytes")
		}
	}
	return nil
}
