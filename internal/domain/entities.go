package domain

import "fmt"

// Pool identifies a content collection searched at query time.
type Pool string

const (
	PoolSermons       Pool = "sermons"
	PoolIllustrations Pool = "illustrations"
	PoolWebsite       Pool = "website"
	PoolAll           Pool = "all"
)

// PoolOrder is the fixed concatenation order of per-pool results in a
// response.
var PoolOrder = []Pool{PoolSermons, PoolIllustrations, PoolWebsite}

// Segment is the smallest unit of transcribed speech: a run of text and
// the offset (in seconds) at which it is spoken. Immutable once created.
type Segment struct {
	Text     string
	StartSec float64
}

// Words returns the whitespace-delimited word count of the segment.
func (s Segment) Words() int {
	n := 0
	inWord := false
	for _, r := range s.Text {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			inWord = false
			continue
		}
		if !inWord {
			n++
			inWord = true
		}
	}
	return n
}

// SourceDocument is one parsed transcript: identity metadata plus the
// ordered segment sequence.
type SourceDocument struct {
	ID         string // video ID
	URL        string // canonical watch URL
	Title      string
	SourceFile string
	Segments   []Segment
}

// Chunk is a retrieval unit built from a contiguous run of segments.
type Chunk struct {
	ID        string
	DocID     string
	URL       string
	Title     string
	Text      string
	StartSec  int
	EndSec    int
	WordCount int
}

// TimestampedURL returns the watch URL seeked to the chunk start.
func (c Chunk) TimestampedURL() string {
	return fmt.Sprintf("%s&t=%ds", c.URL, c.StartSec)
}

// Candidate is a chunk returned by vector retrieval, tagged with its pool
// and raw distance, not yet reranked.
type Candidate struct {
	Text      string
	Title     string
	DocID     string
	URL       string
	ClipURL   string
	StartTime string
	Pool      Pool
	Distance  float64
}

// Similarity converts the raw vector distance into a similarity signal
// used when the reranker is degraded or returns a non-finite score.
func (c Candidate) Similarity() float64 {
	return 1 - c.Distance
}

// RankedResult is a candidate after reranking, ready for presentation.
type RankedResult struct {
	Text           string  `json:"text" yaml:"text"`
	Title          string  `json:"title" yaml:"title"`
	DocID          string  `json:"document_id" yaml:"document_id"`
	StartTime      string  `json:"start_time" yaml:"start_time,omitempty"`
	URL            string  `json:"canonical_url" yaml:"canonical_url"`
	TimestampedURL string  `json:"timestamped_url" yaml:"timestamped_url"`
	Pool           Pool    `json:"source_pool" yaml:"source_pool"`
	Score          float64 `json:"relevance_score" yaml:"relevance_score"`
	Snippet        string  `json:"snippet,omitempty" yaml:"snippet,omitempty"`
}

// PinnedRule maps trigger keywords to hand-authored results that are
// force-included for known high-value questions. Loaded at startup,
// never mutated afterwards.
type PinnedRule struct {
	Name     string         `yaml:"name"`
	Keywords []string       `yaml:"keywords"`
	Results  []RankedResult `yaml:"results"`
}

// SearchRequest is the transport-agnostic query contract.
type SearchRequest struct {
	Query       string `json:"query"`
	Pool        Pool   `json:"pool,omitempty"`
	NResults    int    `json:"n_results,omitempty"`
	NCandidates int    `json:"n_candidates,omitempty"`
}

// SearchResponse is the ranked answer list for one request.
type SearchResponse struct {
	Query       string         `json:"query"`
	Results     []RankedResult `json:"results"`
	TimingMs    int64          `json:"timing_ms"`
	PinnedCount int            `json:"pinned_count"`
}

// Stats summarizes the indexed catalog.
type Stats struct {
	TotalDocs   int
	TotalChunks int
	TotalWords  int
}
