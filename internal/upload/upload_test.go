package upload

import (
	"errors"
	"strings"
	"testing"

	"github.com/mfenderov/docscan/pkg/models"
)

func TestIsPlainTextContentType(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		want        bool
	}{
		{"text/plain", "text/plain", true},
		{"with charset", "text/plain; charset=utf-8", true},
		{"upper case", "Text/Plain", true},
		{"markdown", "text/markdown", false},
		{"html", "text/html", false},
		{"octet stream", "application/octet-stream", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsPlainTextContentType(tt.contentType); got != tt.want {
				t.Errorf("IsPlainTextContentType(%q) = %v, want %v", tt.contentType, got, tt.want)
			}
		})
	}
}

func TestIsPlainTextName(t *testing.T) {
	tests := []struct {
		name string
		file string
		want bool
	}{
		{"txt", "essay.txt", true},
		{"upper case", "ESSAY.TXT", true},
		{"pdf", "essay.pdf", false},
		{"txt in stem only", "txt.essay", false},
		{"no extension", "essay", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsPlainTextName(tt.file); got != tt.want {
				t.Errorf("IsPlainTextName(%q) = %v, want %v", tt.file, got, tt.want)
			}
		})
	}
}

func TestIsPlainTextContent(t *testing.T) {
	tests := []struct {
		name    string
		content []byte
		want    bool
	}{
		{"ascii", []byte("hello world"), true},
		{"utf-8", []byte("naïve café"), true},
		{"nul byte", []byte("abc\x00def"), false},
		{"invalid utf-8", []byte{0xff, 0xfe, 0x41}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsPlainTextContent(tt.content); got != tt.want {
				t.Errorf("IsPlainTextContent(%q) = %v, want %v", tt.content, got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		file        string
		contentType string
		content     string
		max         int64
		wantErr     bool
	}{
		{"plain text header", "notes", "text/plain", "body", 0, false},
		{"txt name with generic header", "notes.txt", "application/octet-stream", "body", 0, false},
		{"rejected type", "notes.pdf", "application/pdf", "body", 0, true},
		{"empty", "notes.txt", "text/plain", "", 0, true},
		{"missing name", "", "text/plain", "body", 0, true},
		{"binary", "notes.txt", "text/plain", "a\x00b", 0, true},
		{"at limit", "notes.txt", "text/plain", "12345", 5, false},
		{"over limit", "notes.txt", "text/plain", "123456", 5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Validate(tt.file, tt.contentType, []byte(tt.content), tt.max)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, models.ErrInvalidInput) {
				t.Errorf("Validate() error = %v, want ErrInvalidInput", err)
			}
			if err == nil && got != tt.content {
				t.Errorf("Validate() = %q, want %q", got, tt.content)
			}
		})
	}
}

func TestRead_RejectsOversizedStream(t *testing.T) {
	_, err := Read("big.txt", "text/plain", strings.NewReader(strings.Repeat("a", 11)), 10)
	if !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("Read() error = %v, want ErrInvalidInput", err)
	}

	got, err := Read("ok.txt", "text/plain", strings.NewReader(strings.Repeat("a", 10)), 10)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if len(got) != 10 {
		t.Errorf("Read() length = %d, want 10", len(got))
	}
}
