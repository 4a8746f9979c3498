package input

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateUtterance(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{"Normal Text", "I loved the sandbox", "I loved the sandbox", nil},
		{"Trimmed", "  the mirror \n", "the mirror", nil},
		{"Safe Controls", "Line1\nLine2\tTabbed", "Line1\nLine2\tTabbed", nil},
		{"ANSI Code", "\x1b[31mRed\x1b[0m", "[31mRed[0m", nil},
		{"Null Byte", "Null\x00Byte", "NullByte", nil},
		{"Empty", "", "", ErrBlank},
		{"Blank", " \t\n ", "", ErrBlank},
		{"Only Controls", "\x00\x1b\x07", "", ErrBlank},
		{"Exact Limit", strings.Repeat("a", DefaultMaxUtterance), strings.Repeat("a", DefaultMaxUtterance), nil},
		{"Over Limit", strings.Repeat("a", DefaultMaxUtterance+1), "", ErrTooLarge},
		{"Invalid UTF-8", "bad \xff bytes", "", ErrInvalidUTF8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateUtterance(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateUtterance_EnvOverride(t *testing.T) {
	t.Setenv(EnvMaxUtterance, "8")
	_, err := ValidateUtterance("123456789")
	assert.ErrorIs(t, err, ErrTooLarge)

	t.Setenv(EnvMaxUtterance, "garbage")
	_, err = ValidateUtterance("123456789")
	assert.NoError(t, err)
}

func TestValidateSessionID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{"UUID", "0b9e3f5c-1d2a-4c11-9a0e-5f3c2b1a0d9e", "0b9e3f5c-1d2a-4c11-9a0e-5f3c2b1a0d9e", nil},
		{"Trimmed", " kiosk-1 ", "kiosk-1", nil},
		{"Blank", "   ", "", ErrBlank},
		{"Too Long", strings.Repeat("x", MaxSessionID+1), "", ErrTooLarge},
		{"Invalid UTF-8", "k\xff", "", ErrInvalidUTF8},
		{"Control Char", "kiosk\x00-1", "", ErrControlChars},
		{"Newline", "kiosk\n1", "", ErrControlChars},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateSessionID(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
