package domain

import "strings"

// The notes field is a single string in the store but the domain treats
// it as a (content, url) pair. The URL rides at the end of the field
// behind a fixed marker so existing free-text notes survive unchanged.
const (
	urlMarker    = "URL: "
	urlSeparator = "\n\n" + urlMarker
)

// EncodeNotes packs free-text content and an optional URL into the single
// notes field. Both empty yields the empty string.
func EncodeNotes(content, url string) string {
	switch {
	case content != "" && url != "":
		return content + urlSeparator + url
	case url != "":
		return urlMarker + url
	default:
		return content
	}
}

// DecodeNotes inverts EncodeNotes. It searches from the end of the field
// for the separator so content containing "URL: " on its own lines is not
// misread, then falls back to a bare-marker prefix match, then to
// treating the whole field as content.
func DecodeNotes(notes string) (content, url string) {
	if notes == "" {
		return "", ""
	}
	if i := strings.LastIndex(notes, urlSeparator); i >= 0 {
		return notes[:i], notes[i+len(urlSeparator):]
	}
	if strings.HasPrefix(notes, urlMarker) {
		return "", notes[len(urlMarker):]
	}
	return notes, ""
}
