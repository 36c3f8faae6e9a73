package validators

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSanitizeStringTrimsAndCaps(t *testing.T) {
	if got := SanitizeString("  hello  ", 0); got != "hello" {
		t.Fatalf("trim only: got %q", got)
	}
	if got := SanitizeString("abcdef", 4); got != "abcd" {
		t.Fatalf("ascii cap: got %q", got)
	}
	if got := SanitizeString("short", 100); got != "short" {
		t.Fatalf("under cap: got %q", got)
	}
}

func TestSanitizeStringKeepsRunesIntact(t *testing.T) {
	// Three-byte runes, cap landing mid-rune.
	brand := strings.Repeat("電", 5)
	got := SanitizeString(brand, 7)
	if !utf8.ValidString(got) {
		t.Fatalf("truncation produced invalid UTF-8: %q", got)
	}
	if got != strings.Repeat("電", 2) {
		t.Fatalf("expected two whole runes, got %q", got)
	}

	// Cap exactly on a rune boundary keeps the full rune.
	if got := SanitizeString(brand, 9); got != strings.Repeat("電", 3) {
		t.Fatalf("boundary cap: got %q", got)
	}
}
