package toolkit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple name", "Bridgewater Associates", "bridgewater-associates"},
		{"punctuation runs collapse", "D. E. Shaw & Co.", "d-e-shaw-co"},
		{"already a slug", "two-sigma", "two-sigma"},
		{"digits kept", "Point72", "point72"},
		{"leading and trailing junk stripped", "  --Citadel-- ", "citadel"},
		{"consecutive separators collapse", "Man   ///   Group", "man-group"},
		{"non-ascii treated as separator", "Société Générale", "soci-t-g-n-rale"},
		{"empty input", "", ""},
		{"only separators", "&&&", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Slugify(tt.input))
		})
	}
}

func TestSlugifyStable(t *testing.T) {
	variants := []string{"Two Sigma", "two sigma", "TWO_SIGMA", "Two--Sigma", " two sigma "}
	for _, variant := range variants {
		assert.Equal(t, "two-sigma", Slugify(variant))
	}
}

func TestSlugifyNeverEmitsEdgeSeparators(t *testing.T) {
	inputs := []string{"A", "&A&", "A & B", "...a...b...", "Elliott Management", "x&&y&&z"}
	for _, input := range inputs {
		slug := Slugify(input)
		assert.False(t, strings.HasPrefix(slug, "-"), "slug %q starts with separator", slug)
		assert.False(t, strings.HasSuffix(slug, "-"), "slug %q ends with separator", slug)
		assert.NotContains(t, slug, "--")
		assert.Equal(t, slug, Slugify(slug), "Slugify should be idempotent")
	}
}
