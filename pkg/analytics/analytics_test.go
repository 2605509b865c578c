package analytics

import (
	"reflect"
	"strings"
	"testing"
)

func TestWordFrequencies_FiltersStopWordsAndPunctuation(t *testing.T) {
	counts := WordFrequencies("The knee, the knee and the Knee surgery.")

	if counts["knee"] != 3 {
		t.Errorf("counts[knee] = %d, want 3 (case and punctuation folded)", counts["knee"])
	}
	if counts["surgery"] != 1 {
		t.Errorf("counts[surgery] = %d, want 1", counts["surgery"])
	}
	if _, ok := counts["the"]; ok {
		t.Error("stop word 'the' not filtered")
	}
	if _, ok := counts["and"]; ok {
		t.Error("stop word 'and' not filtered")
	}
}

func TestTopKeywords_OrderAndLimit(t *testing.T) {
	counts := map[string]int{"cartilage": 2, "knee": 5, "femur": 2, "graft": 1}

	got := TopKeywords(counts, 3)
	want := []string{"knee", "cartilage", "femur"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TopKeywords() = %v, want %v", got, want)
	}

	if got := TopKeywords(counts, 10); len(got) != 4 {
		t.Errorf("TopKeywords(n>len) returned %d entries, want 4", len(got))
	}
}

func TestCountSentences(t *testing.T) {
	cases := []struct {
		text string
		want int
	}{
		{"One. Two! Three?", 3},
		{"Trailing ellipsis... then more.", 2},
		{"no terminal punctuation here", 1},
		{"", 0},
	}
	for _, tc := range cases {
		if got := CountSentences(tc.text); got != tc.want {
			t.Errorf("CountSentences(%q) = %d, want %d", tc.text, got, tc.want)
		}
	}
}

func TestCountSyllables(t *testing.T) {
	cases := []struct {
		word string
		want int
	}{
		{"knee", 1},
		{"medical", 3},
		{"care", 1},  // silent e
		{"table", 2}, // -le keeps its syllable
		{"strength", 1},
		{"a", 1},
	}
	for _, tc := range cases {
		if got := CountSyllables(tc.word); got != tc.want {
			t.Errorf("CountSyllables(%q) = %d, want %d", tc.word, got, tc.want)
		}
	}
}

func TestFleschReadingEase(t *testing.T) {
	simple := "The cat sat. The dog ran. We all slept."
	complex := "Comprehensive physiological rehabilitation necessitates individualized interdisciplinary evaluation."

	simpleScore := FleschReadingEase(
		len(strings.Fields(simple)), CountSentences(simple), EstimateSyllables(simple))
	complexScore := FleschReadingEase(
		len(strings.Fields(complex)), CountSentences(complex), EstimateSyllables(complex))

	if simpleScore <= complexScore {
		t.Errorf("simple text scored %.1f, complex %.1f; want simple higher", simpleScore, complexScore)
	}
	if FleschReadingEase(0, 0, 0) != 0 {
		t.Error("empty input must score 0")
	}
}
