package utils

import "strings"

// Slugify lower-cases s and collapses every run of characters outside
// [a-z0-9] into a single hyphen. Leading and trailing hyphens are dropped,
// so the result may be empty.
func Slugify(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))

	pendingHyphen := false
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && sb.Len() > 0 {
				sb.WriteByte('-')
			}
			pendingHyphen = false
			sb.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}

	return sb.String()
}
