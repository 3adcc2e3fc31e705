package company

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsBlankNames(t *testing.T) {
	_, ok := New("", "desc", "", nil, "Summer 2025")
	assert.False(t, ok)

	_, ok = New("   \t ", "desc", "", nil, "Summer 2025")
	assert.False(t, ok)

	c, ok := New("  Acme  ", " builds robots. ", " https://acme.com ", nil, "Summer 2025")
	require.True(t, ok)
	assert.Equal(t, "Acme", c.Name)
	assert.Equal(t, "builds robots.", c.Description)
	assert.Equal(t, "https://acme.com", c.URL)
	assert.NotNil(t, c.Categories)
	assert.NotNil(t, c.Founders)
	assert.False(t, c.ScrapedAt.IsZero())
}

func TestWithFoundersDoesNotMutateOriginal(t *testing.T) {
	original, ok := New("Acme", "", "", nil, "Summer 2025")
	require.True(t, ok)

	updated := original.WithFounders([]Founder{{Name: "Jane Doe"}})
	assert.Empty(t, original.Founders)
	assert.Len(t, updated.Founders, 1)

	redescribed := original.WithDescription("Builds robots.")
	assert.Empty(t, original.Description)
	assert.Equal(t, "Builds robots.", redescribed.Description)
}

func TestDedupeFirstSeenWins(t *testing.T) {
	a, _ := New("Acme", "first", "", nil, "Summer 2025")
	b, _ := New("acme", "second", "", nil, "Summer 2025")
	c, _ := New("Beta", "", "", nil, "Summer 2025")
	d, _ := New("ACME", "third", "", nil, "Summer 2025")

	out := Dedupe([]Company{a, b, c, d})
	require.Len(t, out, 2)
	assert.Equal(t, "Acme", out[0].Name)
	assert.Equal(t, "first", out[0].Description)
	assert.Equal(t, "Beta", out[1].Name)
}

func TestDedupeEmpty(t *testing.T) {
	assert.Empty(t, Dedupe(nil))
}

func TestClassifyProfileURL(t *testing.T) {
	cases := []struct {
		url  string
		want ProfileType
	}{
		{"https://linkedin.com/in/janedoe", ProfileLinkedIn},
		{"https://www.linkedin.com/company/acme", ProfileLinkedIn},
		{"https://twitter.com/acme", ProfileTwitter},
		{"https://x.com/acme", ProfileTwitter},
		{"https://github.com/acme", ProfileGitHub},
		{"https://netflix.com/browse", ProfileUnknown},
		{"https://notlinkedin.com/in/janedoe", ProfileUnknown},
		{"https://acme.com", ProfileUnknown},
		{"/companies/acme", ProfileUnknown},
		{"", ProfileUnknown},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ClassifyProfileURL(tc.url), tc.url)
	}
}
