package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnsureSentenceBoundary(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"complete sentence", "Acme builds robots.", "Acme builds robots."},
		{"exclamation", "Ship faster!", "Ship faster!"},
		{"question", "What if billing were free?", "What if billing were free?"},
		{"truncated tail", "Acme builds robots. The fleet learns each", "Acme builds robots."},
		{"short tagline gets a period", "Robots for busy warehouses", "Robots for busy warehouses."},
		{"long truncation is discarded", "this was cut off somewhere in the middle of a very long clause that never reaches any kind of terminal punctuation mark", ""},
		{"abbreviation is not a boundary", "Acme Inc. builds robots for Dr. Smith", "Acme Inc. builds robots for Dr. Smith."},
		{"trailing abbreviation keeps its single period", "We power billing for Acme Inc.", "We power billing for Acme Inc."},
		{"final sentence ending in abbreviation is kept", "Builds robots. We power billing for Acme Inc.", "Builds robots. We power billing for Acme Inc."},
		{"long text ending in abbreviation survives", "A compliance and revenue operations platform trusted by finance teams at more than two hundred customers including Acme Inc.", "A compliance and revenue operations platform trusted by finance teams at more than two hundred customers including Acme Inc."},
		{"empty", "", ""},
		{"whitespace", "   ", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, EnsureSentenceBoundary(tc.in))
		})
	}
}

func TestSplitSentences(t *testing.T) {
	got := SplitSentences("Acme builds robots. Dr. Smith advises the team. The fleet learns each")
	assert.Equal(t, []string{
		"Acme builds robots.",
		"Dr. Smith advises the team.",
	}, got)
}

func TestSplitSentencesKeepsTerminalRuns(t *testing.T) {
	got := SplitSentences("Really?! Yes... truly.")
	assert.Equal(t, []string{"Really?!", "Yes...", "truly."}, got)
}
