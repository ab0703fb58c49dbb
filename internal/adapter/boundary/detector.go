// Package boundary locates the teaching span of a sermon transcript,
// trimming leading ceremony and trailing closing remarks.
package boundary

import (
	"fmt"
	"regexp"
	"strings"

	"sermonsearch/config"
	"sermonsearch/internal/domain"
)

// Detector trims a segment sequence down to its substantive span using
// configured phrase tables.
type Detector struct {
	teachingStarts []*regexp.Regexp
	worship        []*regexp.Regexp
	closing        []string

	startAfterSec      float64
	startMinWords      int
	fallbackAfterSec   float64
	fallbackMinWords   int
	closingLookback    int
	ceremonialMaxWords int
	midSpanDropWords   int
}

// NewDetector compiles the pattern tables. Patterns are matched
// case-insensitively; closing phrases are plain substrings.
func NewDetector(cfg config.BoundaryConfig) (*Detector, error) {
	starts, err := compileAll(cfg.TeachingStartPatterns)
	if err != nil {
		return nil, fmt.Errorf("teaching-start patterns: %w", err)
	}
	worship, err := compileAll(cfg.WorshipPatterns)
	if err != nil {
		return nil, fmt.Errorf("worship patterns: %w", err)
	}

	closing := make([]string, len(cfg.ClosingPhrases))
	for i, p := range cfg.ClosingPhrases {
		closing[i] = strings.ToLower(p)
	}

	return &Detector{
		teachingStarts:     starts,
		worship:            worship,
		closing:            closing,
		startAfterSec:      cfg.StartAfterSec,
		startMinWords:      cfg.StartMinWords,
		fallbackAfterSec:   cfg.FallbackAfterSec,
		fallbackMinWords:   cfg.FallbackMinWords,
		closingLookback:    cfg.ClosingLookback,
		ceremonialMaxWords: cfg.CeremonialMaxWords,
		midSpanDropWords:   cfg.MidSpanDropWords,
	}, nil
}

func compileAll(patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", p, err)
		}
		compiled = append(compiled, re)
	}
	return compiled, nil
}

// Trim returns the teaching span of the segments: leading ceremony and
// trailing closing remarks removed, short ceremonial asides dropped
// mid-span. The result may be empty. On input with no matching patterns
// at all the full span comes back unchanged.
func (d *Detector) Trim(segments []domain.Segment) []domain.Segment {
	if len(segments) == 0 {
		return nil
	}

	teaching := segments[d.FindStart(segments):]

	end := len(teaching)
	low := len(teaching) - d.closingLookback
	if low < 0 {
		low = 0
	}
	for i := len(teaching) - 1; i >= low; i-- {
		if d.isClosing(teaching[i].Text) {
			end = i
			break
		}
	}

	filtered := make([]domain.Segment, 0, end)
	for _, seg := range teaching[:end] {
		if isNonSpeechMarker(seg.Text) {
			continue
		}
		if d.IsCeremonial(seg) && seg.Words() < d.midSpanDropWords {
			continue
		}
		filtered = append(filtered, seg)
	}
	return filtered
}

// FindStart locates the first teaching segment. A teaching-start phrase
// wins and backs up one segment to keep the lead-in; otherwise the first
// substantive non-ceremonial segment past the elapsed-time threshold;
// otherwise a lower bar; otherwise 0.
func (d *Detector) FindStart(segments []domain.Segment) int {
	for i, seg := range segments {
		if d.matchesTeachingStart(seg.Text) {
			if i > 0 {
				return i - 1
			}
			return 0
		}
		if seg.StartSec > d.startAfterSec && seg.Words() > d.startMinWords && !d.IsCeremonial(seg) {
			return i
		}
	}
	for i, seg := range segments {
		if seg.StartSec > d.fallbackAfterSec && seg.Words() > d.fallbackMinWords {
			return i
		}
	}
	return 0
}

// IsCeremonial reports whether a segment is worship or announcement
// content rather than teaching.
func (d *Detector) IsCeremonial(seg domain.Segment) bool {
	if seg.Words() < d.ceremonialMaxWords {
		return true
	}
	for _, re := range d.worship {
		if re.MatchString(seg.Text) {
			return true
		}
	}
	return false
}

func (d *Detector) matchesTeachingStart(text string) bool {
	for _, re := range d.teachingStarts {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

func (d *Detector) isClosing(text string) bool {
	lower := strings.ToLower(text)
	for _, phrase := range d.closing {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

func isNonSpeechMarker(text string) bool {
	switch strings.TrimSpace(text) {
	case "[Music]", "[Applause]", "[Laughter]":
		return true
	}
	return false
}
