package search

import (
	"regexp"
	"strings"

	"sermonsearch/internal/domain"
)

const minCandidateChars = 100

var worshipTitleIndicators = []string{
	"worship song",
	"hymn",
	"music video",
	"singing",
	"choir",
}

// Song lyrics that leak through caption parsing repeat short refrains;
// more than two matches marks the chunk as music, not teaching.
var refrainPattern = regexp.MustCompile(`\b(la la|glory glory|praise him praise him|hallelujah hallelujah)\b`)

// ContentFilter drops retrieved chunks that are not usable teaching
// content: untitled uploads, worship recordings, and fragments too short
// to stand alone. Filtering an already-filtered list is a no-op.
type ContentFilter struct{}

func NewContentFilter() *ContentFilter {
	return &ContentFilter{}
}

func (f *ContentFilter) Filter(candidates []domain.Candidate) []domain.Candidate {
	kept := make([]domain.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if f.keep(c) {
			kept = append(kept, c)
		}
	}
	return kept
}

func (f *ContentFilter) keep(c domain.Candidate) bool {
	title := strings.ToLower(strings.TrimSpace(c.Title))
	if title == "" || title == "unknown" || title == "unknown sermon" {
		return false
	}
	for _, indicator := range worshipTitleIndicators {
		if strings.Contains(title, indicator) {
			return false
		}
	}
	if len(c.Text) < minCandidateChars {
		return false
	}
	if len(refrainPattern.FindAllString(strings.ToLower(c.Text), -1)) > 2 {
		return false
	}
	return true
}
