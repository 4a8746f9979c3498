// Package input validates the visitor-supplied fields that reach the engine
// through any transport.
package input

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// DefaultMaxUtterance is 4KB, far above any spoken utterance.
	DefaultMaxUtterance = 4096
	// MaxSessionID bounds session ids, which kiosks generate as UUIDs.
	MaxSessionID = 128
	// EnvMaxUtterance overrides DefaultMaxUtterance.
	EnvMaxUtterance = "DOCENT_MAX_INPUT_SIZE"
)

var (
	ErrBlank        = errors.New("is required")
	ErrTooLarge     = errors.New("exceeds maximum allowed size")
	ErrInvalidUTF8  = errors.New("contains invalid UTF-8 sequences")
	ErrControlChars = errors.New("contains control characters")
)

// ValidateUtterance checks free text said or typed by a visitor. Control
// characters other than newline, tab and carriage return are dropped, and the
// result is trimmed. Text left blank is rejected.
func ValidateUtterance(text string) (string, error) {
	limit := maxUtterance()
	if len(text) > limit {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrTooLarge, len(text), limit)
	}
	if !utf8.ValidString(text) {
		return "", ErrInvalidUTF8
	}

	text = strings.TrimSpace(strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && !isLineControl(r) {
			return -1
		}
		return r
	}, text))
	if text == "" {
		return "", ErrBlank
	}
	return text, nil
}

// ValidateSessionID checks a session id. Ids are keys in stores and logs, so
// control characters are rejected instead of stripped.
func ValidateSessionID(id string) (string, error) {
	id = strings.TrimSpace(id)
	switch {
	case id == "":
		return "", ErrBlank
	case len(id) > MaxSessionID:
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrTooLarge, len(id), MaxSessionID)
	case !utf8.ValidString(id):
		return "", ErrInvalidUTF8
	case strings.IndexFunc(id, unicode.IsControl) >= 0:
		return "", ErrControlChars
	}
	return id, nil
}

func isLineControl(r rune) bool {
	return r == '\n' || r == '\t' || r == '\r'
}

func maxUtterance() int {
	if val := os.Getenv(EnvMaxUtterance); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return DefaultMaxUtterance
}
