// Package analyzer provides query keyword extraction and expansion for
// lexical scoring.
package analyzer

import (
	"sort"
	"strings"
	"unicode"
)

// KeywordExpander extracts content words from a query and widens them
// with a synonym table. Roots are matched loosely on shared 4-character
// prefixes so inflected forms ("praying", "prayer") reach the same
// synonyms.
type KeywordExpander struct {
	stopwords map[string]struct{}
	synonyms  map[string][]string
}

func NewKeywordExpander() *KeywordExpander {
	return &KeywordExpander{
		stopwords: defaultStopwords(),
		synonyms:  defaultSynonyms(),
	}
}

// Expand returns the deduplicated keyword set for a query, sorted for
// deterministic output.
func (e *KeywordExpander) Expand(query string) []string {
	words := splitWords(strings.ToLower(query))

	seen := make(map[string]struct{})
	for _, w := range words {
		if len(w) <= 2 {
			continue
		}
		if _, stop := e.stopwords[w]; stop {
			continue
		}
		seen[w] = struct{}{}

		if syns, ok := e.synonyms[w]; ok {
			for _, s := range syns {
				seen[s] = struct{}{}
			}
		}
		for root, syns := range e.synonyms {
			if sharePrefix(w, root) {
				seen[root] = struct{}{}
				for _, s := range syns {
					seen[s] = struct{}{}
				}
			}
		}
	}

	keywords := make([]string, 0, len(seen))
	for w := range seen {
		keywords = append(keywords, w)
	}
	sort.Strings(keywords)
	return keywords
}

// Overlap scores how many of the keywords appear in the text, normalized
// to [0,1].
func (e *KeywordExpander) Overlap(text string, keywords []string) float64 {
	if len(keywords) == 0 {
		return 0
	}
	lower := strings.ToLower(text)
	matches := 0
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			matches++
		}
	}
	score := float64(matches) / float64(len(keywords))
	if score > 1 {
		score = 1
	}
	return score
}

func sharePrefix(a, b string) bool {
	if len(a) < 4 || len(b) < 4 {
		return false
	}
	return strings.HasPrefix(a, b[:4]) || strings.HasPrefix(b, a[:4])
}

func splitWords(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func defaultStopwords() map[string]struct{} {
	words := []string{
		"what", "does", "how", "can", "the", "and", "for", "with", "that",
		"this", "from", "have", "more", "when", "why", "who", "about",
		"pastor", "bob", "say", "says", "said", "tell", "teach", "bible",
		"according", "sermon", "talk", "think",
	}
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// defaultSynonyms is the hand-tuned concept table for the sermon corpus.
func defaultSynonyms() map[string][]string {
	return map[string][]string{
		"share":     {"witness", "evangelize", "tell others", "testimony", "gospel"},
		"forgive":   {"forgiveness", "pardon", "let go", "reconcile", "mercy"},
		"church":    {"fellowship", "congregation", "body of christ", "gathering"},
		"afraid":    {"fear", "scared", "anxious", "worry", "terrified"},
		"death":     {"dying", "die", "funeral", "heaven", "eternity", "afterlife"},
		"marriage":  {"husband", "wife", "spouse", "wedding", "divorce"},
		"pray":      {"prayer", "praying", "intercede", "petition"},
		"sin":       {"sinful", "transgression", "iniquity", "disobedience", "temptation"},
		"faith":     {"believe", "trust", "confidence", "assurance"},
		"hope":      {"hopeful", "hopeless", "despair", "encouragement"},
		"love":      {"loving", "compassion", "charity", "kindness"},
		"false":     {"deception", "deceive", "counterfeit", "heresy", "heretical"},
		"suffer":    {"suffering", "pain", "trial", "tribulation", "hardship"},
		"salvation": {"saved", "born again", "redemption", "redeemed"},
		"baptism":   {"baptize", "baptized", "water baptism"},
		"money":     {"finances", "tithe", "tithing", "giving", "stewardship"},
		"anxiety":   {"anxious", "worry", "worried", "stress", "fear"},
		"grief":     {"grieving", "loss", "mourning", "bereavement", "sorrow"},
		"children":  {"kids", "parenting", "raising", "family"},
	}
}
