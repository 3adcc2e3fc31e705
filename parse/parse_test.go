package parse

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aviguptakonda/yc-demoday-batch/company"
)

func newParser() *Parser {
	return New(DefaultConfig())
}

func TestParseEntrySegmentsNameCategoriesDescription(t *testing.T) {
	text := "Acme Robotics\nB2B\nRobotics\nAcme Robotics builds autonomous warehouse robots."

	record, err := newParser().ParseEntry(text, nil)
	require.NoError(t, err)

	assert.Equal(t, "Acme Robotics", record.Name)
	assert.Equal(t, []string{"B2B", "Robotics"}, record.Categories)
	assert.Equal(t, "Acme Robotics builds autonomous warehouse robots.", record.Description)
	assert.Equal(t, "Summer 2025", record.Batch)
}

func TestParseEntryTrimsTruncatedDescription(t *testing.T) {
	text := "Acme Robotics\nRobotics\nAcme builds warehouse robots. Their long-tail platform also happens to reduce operational costs and was truncated right about"

	record, err := newParser().ParseEntry(text, nil)
	require.NoError(t, err)

	assert.Equal(t, "Acme builds warehouse robots.", record.Description)
}

func TestParseEntryClosesShortTagline(t *testing.T) {
	text := "Acme Robotics\nRobots for busy warehouses"

	record, err := newParser().ParseEntry(text, nil)
	require.NoError(t, err)

	assert.Equal(t, "Robots for busy warehouses.", record.Description)
}

func TestParseEntryDropsBreadcrumbsAndBoilerplate(t *testing.T) {
	text := strings.Join([]string{
		"Home > Companies > Acme Robotics",
		"Acme Robotics",
		"View profile",
		"Load more",
		"Acme builds robots.",
	}, "\n")

	record, err := newParser().ParseEntry(text, nil)
	require.NoError(t, err)

	assert.Equal(t, "Acme Robotics", record.Name)
	assert.Equal(t, "Acme builds robots.", record.Description)
	assert.Empty(t, record.Categories)
}

func TestParseEntryKeepsAbbreviationsIntact(t *testing.T) {
	text := "Acme Inc.\nFintech\nAcme Inc. automates billing for Dr. Smith and Co. across clinics."

	record, err := newParser().ParseEntry(text, nil)
	require.NoError(t, err)

	assert.Equal(t, "Acme Inc. automates billing for Dr. Smith and Co. across clinics.", record.Description)
}

func TestParseEntryDescriptionEmptyOrTerminal(t *testing.T) {
	cases := []string{
		"Acme\nB2B",
		"Acme\nB2B\nBuilds robots.",
		"Acme\nthis description was truncated somewhere in the middle of a much longer clause that keeps going and going without",
	}
	for _, text := range cases {
		record, err := newParser().ParseEntry(text, nil)
		require.NoError(t, err)
		if record.Description != "" {
			assert.Contains(t, ".!?", string(record.Description[len(record.Description)-1]),
				"description %q must end at a sentence boundary", record.Description)
		}
	}
}

func TestParseEntryNoName(t *testing.T) {
	_, err := newParser().ParseEntry("  \n  \n", nil)
	assert.ErrorIs(t, err, ErrNoName)

	_, err = newParser().ParseEntry("Home > Companies > X\nView profile", nil)
	assert.ErrorIs(t, err, ErrNoName)
}

func TestParseEntryDedupesCategories(t *testing.T) {
	text := "Acme\nFintech\nfintech\nB2B\nAcme does payments."

	record, err := newParser().ParseEntry(text, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"Fintech", "B2B"}, record.Categories)
}

func TestParseEntryAmbiguousSegmentGoesToDescription(t *testing.T) {
	// "Builds robots fast." has terminal punctuation so it cannot be a
	// category even though it is short.
	text := "Acme\nBuilds robots fast.\nB2B"

	record, err := newParser().ParseEntry(text, nil)
	require.NoError(t, err)

	assert.Empty(t, record.Categories)
	assert.Equal(t, "Builds robots fast.", record.Description)
}

func TestParseEntryEndToEnd(t *testing.T) {
	text := strings.Join([]string{
		"Home > Companies > Acme Robotics",
		"Acme Robotics",
		"B2B",
		"Robotics",
		"Acme Robotics builds autonomous warehouse robots. The fleet learns each",
	}, "\n")
	anchors := []Anchor{
		{Text: "Acme Robotics", Href: "https://www.ycombinator.com/companies/acme-robotics"},
		{Text: "Jane Doe, CEO", Href: "https://linkedin.com/in/janedoe"},
	}

	record, err := newParser().ParseEntry(text, anchors)
	require.NoError(t, err)

	assert.Equal(t, "Acme Robotics", record.Name)
	assert.Equal(t, []string{"B2B", "Robotics"}, record.Categories)
	assert.Equal(t, "Acme Robotics builds autonomous warehouse robots.", record.Description)
	assert.Equal(t, "https://www.ycombinator.com/companies/acme-robotics", record.URL)

	require.Len(t, record.Founders, 1)
	founder := record.Founders[0]
	assert.Equal(t, "Jane Doe", founder.Name)
	assert.Equal(t, "CEO", founder.Title)
	assert.Equal(t, company.ProfileLinkedIn, founder.ProfileType)
	assert.Equal(t, "https://linkedin.com/in/janedoe", founder.ProfileURL)
}

func TestParseFounders(t *testing.T) {
	anchors := []Anchor{
		{Text: "Jane Doe, CEO", Href: "https://linkedin.com/in/janedoe"},
		{Text: "John Roe - Co-Founder", Href: "https://www.linkedin.com/in/johnroe"},
		{Text: "Acme Robotics", Href: "https://linkedin.com/company/acme"},
		{Text: "Sam Poe CTO", Href: "https://github.com/sampoe"},
		{Text: "LinkedIn", Href: "https://linkedin.com/in/anonymous"},
		{Text: "Acme", Href: "https://acme.com"},
	}

	founders := newParser().ParseFounders(anchors)
	require.Len(t, founders, 3)

	assert.Equal(t, "Jane Doe", founders[0].Name)
	assert.Equal(t, "CEO", founders[0].Title)

	assert.Equal(t, "John Roe", founders[1].Name)
	assert.Equal(t, "Co-Founder", founders[1].Title)
	assert.Equal(t, company.ProfileLinkedIn, founders[1].ProfileType)

	assert.Equal(t, "Sam Poe", founders[2].Name)
	assert.Equal(t, "CTO", founders[2].Title)
	assert.Equal(t, company.ProfileGitHub, founders[2].ProfileType)
}

func TestParseFoundersSkipsDuplicates(t *testing.T) {
	anchors := []Anchor{
		{Text: "Jane Doe", Href: "https://linkedin.com/in/janedoe"},
		{Text: "Jane Doe", Href: "https://linkedin.com/in/janedoe"},
	}
	founders := newParser().ParseFounders(anchors)
	assert.Len(t, founders, 1)
}

func TestSplitNameTitleLeavesPlainNamesAlone(t *testing.T) {
	name, title := newParser().splitNameTitle("Jane Doe")
	assert.Equal(t, "Jane Doe", name)
	assert.Empty(t, title)

	// A comma followed by something that is not a role stays in the name.
	name, title = newParser().splitNameTitle("Doe, Jane")
	assert.Equal(t, "Doe, Jane", name)
	assert.Empty(t, title)
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "a b c", CleanText("  a \t b\n\nc  "))
	assert.Equal(t, "", CleanText("   "))
}
