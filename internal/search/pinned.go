package search

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
	"sermonsearch/internal/domain"
)

// pinnedScore outranks any cross-encoder score so curated answers always
// sort first.
const pinnedScore = 100.0

// PinnedRules holds the curated-override table: hand-authored answers for
// known high-value questions. Loaded once at startup, read-only after.
type PinnedRules struct {
	rules []domain.PinnedRule
}

// LoadPinnedRules reads the rule table from a YAML file. A missing file
// is not an error: the layer is simply empty.
func LoadPinnedRules(path string) (*PinnedRules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &PinnedRules{}, nil
		}
		return nil, fmt.Errorf("failed to read pinned rules: %w", err)
	}

	var file struct {
		Rules []domain.PinnedRule `yaml:"rules"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse pinned rules: %w", err)
	}
	return &PinnedRules{rules: file.Rules}, nil
}

func NewPinnedRules(rules []domain.PinnedRule) *PinnedRules {
	return &PinnedRules{rules: rules}
}

func (p *PinnedRules) Len() int {
	return len(p.rules)
}

// Match returns the pinned results whose rule keywords appear in the
// query, in rule-table order. A document pinned by an earlier rule is not
// repeated by a later one.
func (p *PinnedRules) Match(query string) []domain.RankedResult {
	normalized := normalizeQuery(query)

	var pinned []domain.RankedResult
	seen := make(map[string]bool)
	for _, rule := range p.rules {
		if !keywordHit(normalized, rule.Keywords) {
			continue
		}
		for _, result := range rule.Results {
			if result.DocID != "" && seen[result.DocID] {
				continue
			}
			if result.DocID != "" {
				seen[result.DocID] = true
			}
			result.Score = pinnedScore
			pinned = append(pinned, result)
		}
	}
	return pinned
}

func keywordHit(normalizedQuery string, keywords []string) bool {
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(normalizedQuery, normalizeQuery(kw)) {
			return true
		}
	}
	return false
}

// normalizeQuery lowercases and maps the curly apostrophe transcripts use
// to ASCII, so "who's becky" matches "who’s becky".
func normalizeQuery(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, "’", "'"))
}
