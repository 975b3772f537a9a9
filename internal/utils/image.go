package utils

import "strings"

// BuildImageURL returns a full CDN URL for a thumbnail path coming from the
// dataset. Empty input returns empty output (no placeholder).
func BuildImageURL(cdnBase, thumbnail string) string {
	if thumbnail == "" {
		return ""
	}
	if !strings.HasSuffix(cdnBase, "/") {
		cdnBase += "/"
	}
	// avoid leading slash duplication
	return cdnBase + strings.TrimLeft(thumbnail, "/")
}
