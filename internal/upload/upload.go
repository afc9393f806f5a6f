// Package upload decides whether an uploaded file is a plain-text document the
// engine can compare.
package upload

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/mfenderov/docscan/pkg/models"
)

// DefaultMaxBytes is the largest accepted upload.
const DefaultMaxBytes int64 = 5 << 20

// IsPlainTextContentType checks if the Content-Type header indicates plain text.
func IsPlainTextContentType(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(contentType))
	}
	return mediaType == "text/plain"
}

// IsPlainTextName checks if the file name carries a .txt extension.
func IsPlainTextName(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".txt")
}

// IsPlainTextContent reports whether content is valid UTF-8 with no NUL bytes.
func IsPlainTextContent(content []byte) bool {
	return utf8.Valid(content) && bytes.IndexByte(content, 0) < 0
}

// Detect accepts a file when either the header or the name says plain text.
func Detect(name, contentType string) bool {
	return IsPlainTextContentType(contentType) || IsPlainTextName(name)
}

// Validate checks an upload that has already been read into memory and returns its text.
func Validate(name, contentType string, content []byte, maxBytes int64) (string, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("%w: file name is required", models.ErrInvalidInput)
	}
	if !Detect(name, contentType) {
		return "", fmt.Errorf("%w: only text files are allowed", models.ErrInvalidInput)
	}
	if len(content) == 0 {
		return "", fmt.Errorf("%w: file is empty", models.ErrInvalidInput)
	}
	if int64(len(content)) > maxBytes {
		return "", fmt.Errorf("%w: file exceeds %d bytes", models.ErrInvalidInput, maxBytes)
	}
	if !IsPlainTextContent(content) {
		return "", fmt.Errorf("%w: file is not valid UTF-8 text", models.ErrInvalidInput)
	}
	return string(content), nil
}

// Read reads at most maxBytes from r and validates the result.
func Read(name, contentType string, r io.Reader, maxBytes int64) (string, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	// one extra byte tells an exact-limit file apart from an oversized one
	content, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	return Validate(name, contentType, content, maxBytes)
}
