package parse

import "strings"

// Abbreviations whose trailing period is not a sentence boundary.
var abbreviations = []string{
	"Inc.", "LLC.", "Corp.", "Ltd.", "Co.", "Dr.", "Mr.", "Ms.", "Mrs.",
	"Prof.", "Sr.", "Jr.", "St.", "vs.", "etc.", "e.g.", "i.e.",
}

const abbrevMarker = "\x00"

func protectAbbreviations(text string) string {
	for _, abbr := range abbreviations {
		masked := strings.ReplaceAll(abbr, ".", abbrevMarker)
		text = strings.ReplaceAll(text, abbr, masked)
	}
	return text
}

func restoreAbbreviations(text string) string {
	return strings.ReplaceAll(text, abbrevMarker, ".")
}

// EnsureSentenceBoundary trims a description back to its last complete
// sentence. The source sometimes truncates entry text mid-sentence; a
// description must end with '.', '!' or '?' or be empty, never mid-clause.
func EnsureSentenceBoundary(text string) string {
	text = CleanText(text)
	if text == "" {
		return ""
	}

	// A trailing protected abbreviation already carries its period; appending
	// or trimming here would mangle it.
	protected := protectAbbreviations(text)
	if isTerminal(protected[len(protected)-1]) || strings.HasSuffix(protected, abbrevMarker) {
		return text
	}

	last := -1
	for i := len(protected) - 1; i >= 0; i-- {
		if isTerminal(protected[i]) {
			last = i
			break
		}
	}
	if last < 0 {
		// No complete sentence at all. Short tagline-style text gets closed
		// with a period rather than discarded; anything longer was truncated.
		if len(strings.Fields(text)) <= 12 {
			return text + "."
		}
		return ""
	}
	return strings.TrimSpace(restoreAbbreviations(protected[:last+1]))
}

func isTerminal(b byte) bool {
	return b == '.' || b == '!' || b == '?'
}

// SplitSentences splits text into complete sentences, abbreviation-safe.
// Fragments that never reach a terminal mark are dropped.
func SplitSentences(text string) []string {
	protected := protectAbbreviations(CleanText(text))
	var sentences []string
	start := 0
	for i := 0; i < len(protected); i++ {
		if !isTerminal(protected[i]) {
			continue
		}
		// Consume a run of terminal marks ("?!", "...").
		end := i
		for end+1 < len(protected) && isTerminal(protected[end+1]) {
			end++
		}
		sentence := strings.TrimSpace(restoreAbbreviations(protected[start : end+1]))
		if sentence != "" {
			sentences = append(sentences, sentence)
		}
		start = end + 1
		i = end
	}
	return sentences
}
