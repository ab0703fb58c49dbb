package transcript

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"sermonsearch/internal/domain"
)

type captionTrack struct {
	Events []captionEvent `json:"events"`
}

type captionEvent struct {
	StartMs    int          `json:"tStartMs"`
	DurationMs int          `json:"dDurationMs"`
	Segs       []captionSeg `json:"segs"`
}

type captionSeg struct {
	UTF8 string `json:"utf8"`
}

// parseCaptions turns an event-based caption track into one document.
// The video ID comes from the file name stem ("<id>.en.json3").
func parseCaptions(raw []byte, sourceFile string) (domain.SourceDocument, error) {
	var track captionTrack
	if err := json.Unmarshal(raw, &track); err != nil {
		return domain.SourceDocument{}, &domain.ParseError{Source: sourceFile, Err: err}
	}

	base := filepath.Base(sourceFile)
	videoID := strings.TrimSuffix(base, filepath.Ext(base))
	videoID = strings.TrimSuffix(videoID, ".en")

	var segments []domain.Segment
	for _, ev := range track.Events {
		if len(ev.Segs) == 0 {
			continue
		}
		var parts []string
		for _, seg := range ev.Segs {
			if seg.UTF8 != "" {
				parts = append(parts, seg.UTF8)
			}
		}
		text := strings.TrimSpace(strings.Join(parts, ""))
		if isNonSpeech(text) {
			continue
		}
		segments = append(segments, domain.Segment{
			Text:     text,
			StartSec: float64(ev.StartMs) / 1000.0,
		})
	}

	if len(segments) == 0 {
		return domain.SourceDocument{}, domain.ErrEmptyDocument
	}

	return domain.SourceDocument{
		ID:         videoID,
		URL:        watchURL(videoID),
		SourceFile: filepath.Base(sourceFile),
		Segments:   segments,
	}, nil
}
