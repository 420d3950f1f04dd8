package tokenize

import (
	"strings"
)

// attaches reports whether a token with the given POS binds to a preceding
// verb to form one phrase.
func attaches(pos string) bool {
	return strings.HasPrefix(pos, "助動詞") ||
		strings.HasPrefix(pos, "動詞,非自立") ||
		strings.HasPrefix(pos, "動詞,接尾")
}

// readingOf returns the katakana reading of tk, or its surface when kagome
// has no reading for it.
func readingOf(tk Token) string {
	if tk.Reading != "" {
		return tk.Reading
	}
	return tk.Text
}

// MergePhrases merges each verb with the auxiliaries that follow it into a
// single token, so one segment covers 食べました rather than 食べ/まし/た.
func MergePhrases(tokens []Token) []Token {
	var out []Token
	i := 0
	for i < len(tokens) {
		tk := tokens[i]
		if !strings.HasPrefix(tk.POS, "動詞") {
			out = append(out, tk)
			i++
			continue
		}
		j := i + 1
		for j < len(tokens) && attaches(tokens[j].POS) {
			j++
		}
		if j == i+1 {
			out = append(out, tk)
			i++
			continue
		}
		merged := tk
		var text, reading, pron strings.Builder
		for _, part := range tokens[i:j] {
			text.WriteString(part.Text)
			reading.WriteString(readingOf(part))
			pron.WriteString(part.Pronunciation)
		}
		merged.Text = text.String()
		merged.Reading = reading.String()
		merged.Pronunciation = pron.String()
		merged.End = tokens[j-1].End
		out = append(out, merged)
		i = j
	}
	return out
}
