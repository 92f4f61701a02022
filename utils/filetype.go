package utils

import (
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// allowedOfficeTypes maps the permitted extensions to the Office Open XML
// MIME type the file content must sniff as.
var allowedOfficeTypes = map[string]string{
	".pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// AllowedExtensions returns the permitted file extensions for error messages.
func AllowedExtensions() []string {
	return []string{".pptx", ".docx", ".xlsx"}
}

// ValidFileExtension reports whether the filename carries one of the allowed
// office document extensions.
func ValidFileExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	_, ok := allowedOfficeTypes[ext]
	return ok
}

// ValidFileContent sniffs the actual bytes and reports whether they match
// one of the allowed Office Open XML MIME types. The declared Content-Type
// header is never trusted. The detected MIME type is returned for logging.
func ValidFileContent(data []byte) (string, bool) {
	detected := mimetype.Detect(data)
	for _, want := range allowedOfficeTypes {
		if detected.Is(want) {
			return detected.String(), true
		}
	}
	return detected.String(), false
}
