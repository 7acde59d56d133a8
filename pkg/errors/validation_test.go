package errors

import (
	"strings"
	"testing"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "align", false},
		{"with dash", "page-break", false},
		{"with underscore", "_private", false},
		{"empty", "", true},
		{"leading digit", "1align", true},
		{"space", "al ign", true},
		{"too long", strings.Repeat("a", 65), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidName) {
				t.Errorf("ValidateName(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidName)
			}
		})
	}
}

func TestValidateDocumentPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "docs/intro.toml", false},
		{"absolute", "/tmp/doc.toml", false},
		{"upper-case extension", "DOC.TOML", false},
		{"empty", "", true},
		{"wrong extension", "doc.typ", true},
		{"null byte", "doc\x00.toml", true},
		{"newline", "doc\n.toml", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocumentPath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDocumentPath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
