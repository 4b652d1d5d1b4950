package util

import (
	"mime"
	"path/filepath"
	"strings"
	"unicode"
)

// Replace anything that is not a letter, digit, dot, dash or underscore with "_"
// Example output for "my sig/../a.png": "my_sig_.._a.png"
func SanitizeFileName(fileName string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, strings.TrimSpace(fileName))

	if strings.Trim(name, "._") == "" {
		return "download"
	}
	return name
}

// Value for the Content-Disposition header of a download
func AttachmentDisposition(fileName string) string {
	return mime.FormatMediaType("attachment", map[string]string{"filename": SanitizeFileName(fileName)})
}

// Replace the extension of fileName, ext includes the dot
// Example output for ("form.json", ".png"): "form.png"
func ReplaceExt(fileName, ext string) string {
	return strings.TrimSuffix(fileName, filepath.Ext(fileName)) + ext
}
