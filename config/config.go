package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the sermon search engine.
type Config struct {
	Source    SourceConfig    `yaml:"source"`
	Boundary  BoundaryConfig  `yaml:"boundary"`
	Chunk     ChunkConfig     `yaml:"chunk"`
	Retrieve  RetrieveConfig  `yaml:"retrieve"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Rerank    RerankConfig    `yaml:"rerank"`
	VectorDB  VectorDBConfig  `yaml:"vector_db"`
	Pinned    PinnedConfig    `yaml:"pinned"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// SourceConfig controls transcript discovery and indexing cadence.
type SourceConfig struct {
	Includes           []string `yaml:"includes"`
	Excludes           []string `yaml:"excludes"`
	MinTranscriptChars int      `yaml:"min_transcript_chars"`
	CheckpointEvery    int      `yaml:"checkpoint_every"`
}

// BoundaryConfig holds the teaching-span pattern tables. The phrase lists
// are hand-tuned for English-language sermon idiom; they are data, not
// code, so deployments can replace them wholesale.
type BoundaryConfig struct {
	TeachingStartPatterns []string `yaml:"teaching_start_patterns"`
	WorshipPatterns       []string `yaml:"worship_patterns"`
	ClosingPhrases        []string `yaml:"closing_phrases"`
	StartAfterSec         float64  `yaml:"start_after_sec"`
	StartMinWords         int      `yaml:"start_min_words"`
	FallbackAfterSec      float64  `yaml:"fallback_after_sec"`
	FallbackMinWords      int      `yaml:"fallback_min_words"`
	ClosingLookback       int      `yaml:"closing_lookback"`
	CeremonialMaxWords    int      `yaml:"ceremonial_max_words"`
	MidSpanDropWords      int      `yaml:"mid_span_drop_words"`
}

// ChunkConfig bounds chunk sizes by word count.
type ChunkConfig struct {
	MinWords     int `yaml:"min_words"`
	MaxWords     int `yaml:"max_words"`
	OverlapWords int `yaml:"overlap_words"`
}

// RetrieveConfig holds query-time retrieval configuration.
type RetrieveConfig struct {
	SermonCandidates    int `yaml:"sermon_candidates"`
	SermonResults       int `yaml:"sermon_results"`
	SecondaryCandidates int `yaml:"secondary_candidates"`
	SecondaryResults    int `yaml:"secondary_results"`
	DedupPrefixChars    int `yaml:"dedup_prefix_chars"`
	PoolTimeoutSecs     int `yaml:"pool_timeout_secs"`
}

// EmbeddingConfig holds embedding configuration.
type EmbeddingConfig struct {
	Provider  string `yaml:"provider"`    // "openai", "ollama", "mock"
	Model     string `yaml:"model"`       // e.g. "text-embedding-3-small"
	APIKeyEnv string `yaml:"api_key_env"` // Environment variable for API key
	BaseURL   string `yaml:"base_url"`
	Dimension int    `yaml:"dimension"`
	BatchSize int    `yaml:"batch_size"`
	MaxChars  int    `yaml:"max_chars"` // truncate chunk text before embedding
}

// RerankConfig selects the cross-encoder scoring backend.
type RerankConfig struct {
	Provider      string `yaml:"provider"` // "cohere", "lexical", "none"
	Model         string `yaml:"model"`
	APIKeyEnv     string `yaml:"api_key_env"`
	MaxConcurrent int    `yaml:"max_concurrent"`
}

// VectorDBConfig configures the external vector store. Each content pool
// maps to one collection.
type VectorDBConfig struct {
	Type                   string `yaml:"type"` // "qdrant", "memory"
	URL                    string `yaml:"url"`
	APIKeyEnv              string `yaml:"api_key_env"`
	SermonCollection       string `yaml:"sermon_collection"`
	IllustrationCollection string `yaml:"illustration_collection"`
	WebsiteCollection      string `yaml:"website_collection"`
	TimeoutSecs            int    `yaml:"timeout_secs"`
}

// PinnedConfig points at the curated-override rule table.
type PinnedConfig struct {
	RulesFile string `yaml:"rules_file"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Source: SourceConfig{
			Includes:           []string{"**/*.json3", "**/*.json"},
			Excludes:           []string{"**/.sermonsearch/**"},
			MinTranscriptChars: 200,
			CheckpointEvery:    50,
		},
		Boundary: BoundaryConfig{
			TeachingStartPatterns: defaultTeachingStartPatterns,
			WorshipPatterns:       defaultWorshipPatterns,
			ClosingPhrases:        defaultClosingPhrases,
			StartAfterSec:         120,
			StartMinWords:         15,
			FallbackAfterSec:      60,
			FallbackMinWords:      10,
			ClosingLookback:       20,
			CeremonialMaxWords:    3,
			MidSpanDropWords:      12,
		},
		Chunk: ChunkConfig{
			MinWords:     80,
			MaxWords:     450,
			OverlapWords: 0,
		},
		Retrieve: RetrieveConfig{
			SermonCandidates:    20,
			SermonResults:       6,
			SecondaryCandidates: 10,
			SecondaryResults:    3,
			DedupPrefixChars:    150,
			PoolTimeoutSecs:     10,
		},
		Embedding: EmbeddingConfig{
			Provider:  "openai",
			Model:     "text-embedding-3-small",
			APIKeyEnv: "OPENAI_API_KEY",
			Dimension: 1536,
			BatchSize: 100,
			MaxChars:  1500,
		},
		Rerank: RerankConfig{
			Provider:      "cohere",
			Model:         "rerank-english-v3.0",
			APIKeyEnv:     "COHERE_API_KEY",
			MaxConcurrent: 1,
		},
		VectorDB: VectorDBConfig{
			Type:                   "qdrant",
			URL:                    "http://localhost:6333",
			APIKeyEnv:              "QDRANT_API_KEY",
			SermonCollection:       "sermon_segments",
			IllustrationCollection: "illustrations",
			WebsiteCollection:      "church_website",
			TimeoutSecs:            15,
		},
		Pinned: PinnedConfig{
			RulesFile: "pinned.yaml",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for sermonsearch.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "sermonsearch.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".sermonsearch", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// CollectionFor returns the vector collection name for a pool name
// ("sermons", "illustrations", "website"). Unknown pools return "".
func (c *Config) CollectionFor(pool string) string {
	switch pool {
	case "sermons":
		return c.VectorDB.SermonCollection
	case "illustrations":
		return c.VectorDB.IllustrationCollection
	case "website":
		return c.VectorDB.WebsiteCollection
	}
	return ""
}

// CatalogPath returns the path to the local index catalog.
func CatalogPath(dir string) string {
	return filepath.Join(dir, ".sermonsearch", "catalog.db")
}

// EnsureDataDir ensures the .sermonsearch directory exists.
func EnsureDataDir(dir string) error {
	return os.MkdirAll(filepath.Join(dir, ".sermonsearch"), 0755)
}
