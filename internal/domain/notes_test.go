package domain

import "testing"

func TestNotesRoundTrip(t *testing.T) {
	cases := []struct {
		name    string
		content string
		url     string
	}{
		{"both", "buy milk before friday", "https://example.com/list"},
		{"content only", "just a note", ""},
		{"url only", "", "https://example.com"},
		{"multiline content", "line one\nline two", "https://example.com"},
		{"content containing marker", "see URL: below\nmore text", "https://example.com"},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			encoded := EncodeNotes(tc.content, tc.url)
			content, url := DecodeNotes(encoded)
			if content != tc.content || url != tc.url {
				t.Fatalf("round trip (%q, %q) -> %q -> (%q, %q)",
					tc.content, tc.url, encoded, content, url)
			}
		})
	}
}

func TestEncodeNotesEmpty(t *testing.T) {
	if got := EncodeNotes("", ""); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}

func TestDecodeNotesLastSeparatorWins(t *testing.T) {
	// Two separators: the decoder must split at the last one.
	encoded := "a\n\nURL: https://first.example\n\nURL: https://second.example"
	content, url := DecodeNotes(encoded)
	if url != "https://second.example" {
		t.Fatalf("expected last URL, got %q", url)
	}
	if content != "a\n\nURL: https://first.example" {
		t.Fatalf("unexpected content %q", content)
	}
}

func TestDecodeNotesPlainText(t *testing.T) {
	content, url := DecodeNotes("nothing special here")
	if content != "nothing special here" || url != "" {
		t.Fatalf("got (%q, %q)", content, url)
	}
}
