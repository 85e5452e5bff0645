package utils

import (
	"path"
	"strings"
)

const maxUploadNameLen = 100

// SanitizeUploadName reduces a client-supplied file name to a safe object
// name fragment: directories are discarded, the rest is lower-cased and
// stripped to [a-z0-9._-], capped at 100 characters.
func SanitizeUploadName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(name)
	if name == "." || name == "/" {
		return "image"
	}

	var sb strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '.', r == '_':
			sb.WriteRune(r)
		}
		if sb.Len() >= maxUploadNameLen {
			break
		}
	}

	out := strings.Trim(sb.String(), ".")
	if out == "" {
		return "image"
	}
	return out
}
