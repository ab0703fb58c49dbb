// Package transcript parses heterogeneous sermon transcript formats into
// uniform SourceDocuments.
package transcript

import (
	"fmt"
	"strings"

	"sermonsearch/internal/domain"
)

// Format tags the shape of a raw transcript source.
type Format int

const (
	// FormatCaptions is an event-based caption track with millisecond
	// offsets (events[].segs[].utf8, events[].tStartMs). One document
	// per file.
	FormatCaptions Format = iota
	// FormatTimestamped is a JSON array of export items whose transcript
	// text carries embedded [H:MM:SS] markers. One file holds many
	// documents.
	FormatTimestamped
)

// nonSpeech lists caption placeholders that carry no spoken content.
var nonSpeech = map[string]struct{}{
	"[Music]":    {},
	"[Applause]": {},
	"[Laughter]": {},
}

func isNonSpeech(text string) bool {
	if text == "" || text == "\n" {
		return true
	}
	_, ok := nonSpeech[text]
	return ok
}

// Parse decodes raw transcript bytes in the given format. It returns
// *domain.ParseError when the source cannot be decoded and
// domain.ErrEmptyDocument when decoding succeeds but no usable documents
// remain. Batch items that individually yield no segments are dropped
// without failing the file.
func Parse(format Format, raw []byte, sourceFile string) ([]domain.SourceDocument, error) {
	switch format {
	case FormatCaptions:
		doc, err := parseCaptions(raw, sourceFile)
		if err != nil {
			return nil, err
		}
		return []domain.SourceDocument{doc}, nil
	case FormatTimestamped:
		return parseBatchFile(raw, sourceFile)
	default:
		return nil, &domain.ParseError{
			Source: sourceFile,
			Err:    fmt.Errorf("unknown transcript format %d", format),
		}
	}
}

// FormatForFile picks the parse format from a file name.
func FormatForFile(path string) Format {
	if strings.HasSuffix(path, ".json3") {
		return FormatCaptions
	}
	return FormatTimestamped
}

func watchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}
