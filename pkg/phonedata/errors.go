package phonedata

import "errors"

// Errors returned by Load and Find. They are usually wrapped with detail and
// should be checked with errors.Is.
var (
	// ErrInvalidDatabase is returned when the data file is missing, unreadable
	// or malformed, or when a record it references cannot be decoded.
	ErrInvalidDatabase = errors.New("phonedata: invalid phone database")

	// ErrInvalidQuery is returned when the first 7 characters of a number are
	// not all decimal digits.
	ErrInvalidQuery = errors.New("phonedata: invalid phone number")

	// ErrInvalidLength is returned when a number is shorter than 7 or longer
	// than 11 characters.
	ErrInvalidLength = errors.New("phonedata: length of phone number is invalid")

	// ErrNotFound is returned when no index entry matches the number prefix.
	ErrNotFound = errors.New("phonedata: phone number not found in database")

	// ErrInvalidOperatorCode is returned when an index entry carries a card
	// type outside 1-8.
	ErrInvalidOperatorCode = errors.New("phonedata: invalid operator code")
)
