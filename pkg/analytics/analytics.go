// Package analytics computes advisory text statistics: word frequencies, top
// keywords, and a Flesch-style reading-ease score. Nothing here influences
// structural decisions in the adapters.
package analytics

import (
	"sort"
	"strings"
	"unicode"
)

// commonWords is a map of frequently occurring words ignored in frequency
// analysis. This list can be extended as needed.
var commonWords = map[string]struct{}{
	"a": {}, "about": {}, "above": {}, "after": {}, "again": {}, "against": {},
	"all": {}, "also": {}, "am": {}, "an": {}, "and": {}, "any": {}, "are": {},
	"as": {}, "at": {}, "be": {}, "because": {}, "been": {}, "before": {},
	"being": {}, "below": {}, "between": {}, "both": {}, "but": {}, "by": {},
	"can": {}, "could": {}, "did": {}, "do": {}, "does": {}, "doing": {},
	"down": {}, "during": {}, "each": {}, "few": {}, "for": {}, "from": {},
	"further": {}, "had": {}, "has": {}, "have": {}, "having": {}, "he": {},
	"her": {}, "here": {}, "hers": {}, "him": {}, "his": {}, "how": {},
	"i": {}, "if": {}, "in": {}, "into": {}, "is": {}, "it": {}, "its": {},
	"just": {}, "may": {}, "me": {}, "more": {}, "most": {}, "my": {},
	"no": {}, "nor": {}, "not": {}, "now": {}, "of": {}, "off": {}, "on": {},
	"once": {}, "only": {}, "or": {}, "other": {}, "our": {}, "out": {},
	"over": {}, "own": {}, "same": {}, "she": {}, "should": {}, "so": {},
	"some": {}, "such": {}, "than": {}, "that": {}, "the": {}, "their": {},
	"them": {}, "then": {}, "there": {}, "these": {}, "they": {}, "this": {},
	"those": {}, "through": {}, "to": {}, "too": {}, "under": {}, "until": {},
	"up": {}, "very": {}, "was": {}, "we": {}, "were": {}, "what": {},
	"when": {}, "where": {}, "which": {}, "while": {}, "who": {}, "whom": {},
	"why": {}, "will": {}, "with": {}, "would": {}, "you": {}, "your": {},
}

// WordFrequencies tokenizes text into lowercased words, strips surrounding
// punctuation, filters stop words, and returns per-word counts.
func WordFrequencies(text string) map[string]int {
	counts := make(map[string]int)
	for _, token := range strings.Fields(text) {
		word := strings.ToLower(strings.TrimFunc(token, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		}))
		if word == "" {
			continue
		}
		if _, stop := commonWords[word]; stop {
			continue
		}
		counts[word]++
	}
	return counts
}

// TopKeywords returns the n most frequent keywords, highest count first, ties
// broken alphabetically for determinism.
func TopKeywords(counts map[string]int, n int) []string {
	type kv struct {
		word  string
		count int
	}
	pairs := make([]kv, 0, len(counts))
	for w, c := range counts {
		pairs = append(pairs, kv{w, c})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].count != pairs[j].count {
			return pairs[i].count > pairs[j].count
		}
		return pairs[i].word < pairs[j].word
	})

	if n > len(pairs) {
		n = len(pairs)
	}
	words := make([]string, 0, n)
	for _, p := range pairs[:n] {
		words = append(words, p.word)
	}
	return words
}

// CountSentences counts sentence-ending punctuation runs. Text with words but
// no terminal punctuation counts as one sentence.
func CountSentences(text string) int {
	sentences := 0
	inTerminator := false
	for _, r := range text {
		switch r {
		case '.', '!', '?':
			if !inTerminator {
				sentences++
				inTerminator = true
			}
		default:
			inTerminator = false
		}
	}
	if sentences == 0 && len(strings.Fields(text)) > 0 {
		sentences = 1
	}
	return sentences
}

// CountSyllables estimates syllables in a single word by counting vowel
// groups, discounting a trailing silent 'e'. Every word counts at least one.
func CountSyllables(word string) int {
	word = strings.ToLower(word)
	syllables := 0
	prevVowel := false
	for _, r := range word {
		vowel := strings.ContainsRune("aeiouy", r)
		if vowel && !prevVowel {
			syllables++
		}
		prevVowel = vowel
	}
	if syllables > 1 && strings.HasSuffix(word, "e") && !strings.HasSuffix(word, "le") {
		syllables--
	}
	if syllables < 1 {
		syllables = 1
	}
	return syllables
}

// EstimateSyllables sums the per-word syllable estimate over text.
func EstimateSyllables(text string) int {
	total := 0
	for _, word := range strings.Fields(text) {
		total += CountSyllables(word)
	}
	return total
}

// FleschReadingEase computes the classic reading-ease score. Returns 0 when
// there are no words or sentences to score.
func FleschReadingEase(words, sentences, syllables int) float64 {
	if words == 0 || sentences == 0 {
		return 0
	}
	return 206.835 -
		1.015*(float64(words)/float64(sentences)) -
		84.6*(float64(syllables)/float64(words))
}
