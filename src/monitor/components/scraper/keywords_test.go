package scraper

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractKeywords(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "lowercases and strips punctuation",
			text: "Solar-Farm: Phase ONE, complete!",
			want: []string{"solarfarm", "phase", "complete"},
		},
		{
			name: "drops short tokens",
			text: "the cat ran far away",
			want: []string{"away"},
		},
		{
			name: "deduplicates",
			text: "launch launch launch campaign",
			want: []string{"launch", "campaign"},
		},
		{
			name: "empty input",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractKeywords(tt.text))
		})
	}
}

func TestExtractKeywordsCap(t *testing.T) {
	text := "alpha bravo charlie delta echoes foxtrot golfing hotels india juliet kilos limas"
	got := ExtractKeywords(text)
	assert.Len(t, got, 10)
	assert.NotContains(t, got, "kilos")
}

func TestExtractKeywordsNoShortTokens(t *testing.T) {
	got := ExtractKeywords("a an the cat dog fish spans beyond")
	for _, kw := range got {
		assert.Greater(t, len(kw), 3, "keyword %q too short", kw)
	}
}

func TestExtractKeywordsIdempotent(t *testing.T) {
	first := ExtractKeywords("Launching the new solar campaign, phase one complete!")
	second := ExtractKeywords(strings.Join(first, " "))
	assert.Equal(t, first, second)
}
