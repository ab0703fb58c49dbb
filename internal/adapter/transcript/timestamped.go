package transcript

import (
	"encoding/json"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"sermonsearch/internal/domain"
)

// minTranscriptChars rejects batch items too short to hold a sermon.
const minTranscriptChars = 200

var (
	timestampMarker = regexp.MustCompile(`\[(\d+:\d{2}:\d{2})\]\s*`)
	videoIDParam    = regexp.MustCompile(`v=([a-zA-Z0-9_-]+)`)
)

type batchItem struct {
	ID         string `json:"id"`
	URL        string `json:"url"`
	Title      string `json:"title"`
	Transcript string `json:"transcript"`
}

// parseBatchFile decodes a JSON array of export items. Items without a
// usable transcript are dropped; a file yielding no documents at all is
// reported as empty.
func parseBatchFile(raw []byte, sourceFile string) ([]domain.SourceDocument, error) {
	var items []batchItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, &domain.ParseError{Source: sourceFile, Err: err}
	}

	var docs []domain.SourceDocument
	for _, item := range items {
		doc, ok := parseBatchItem(item, filepath.Base(sourceFile))
		if ok {
			docs = append(docs, doc)
		}
	}

	if len(docs) == 0 {
		return nil, domain.ErrEmptyDocument
	}
	return docs, nil
}

func parseBatchItem(item batchItem, sourceFile string) (domain.SourceDocument, bool) {
	if len(item.Transcript) < minTranscriptChars {
		return domain.SourceDocument{}, false
	}

	videoID := ""
	if m := videoIDParam.FindStringSubmatch(item.URL); m != nil {
		videoID = m[1]
	} else {
		videoID = strings.TrimPrefix(item.ID, "youtube_")
	}

	segments := splitTimestamped(item.Transcript)
	if len(segments) == 0 {
		// No markers but substantive text: keep the whole transcript as
		// a single segment at offset 0.
		segments = []domain.Segment{{Text: item.Transcript, StartSec: 0}}
	}

	url := item.URL
	if url == "" {
		url = watchURL(videoID)
	}

	return domain.SourceDocument{
		ID:         videoID,
		URL:        url,
		Title:      item.Title,
		SourceFile: sourceFile,
		Segments:   segments,
	}, true
}

// splitTimestamped splits transcript text on [H:MM:SS] markers. Each
// marker opens a segment holding the text up to the next marker.
func splitTimestamped(transcript string) []domain.Segment {
	locs := timestampMarker.FindAllStringSubmatchIndex(transcript, -1)
	if len(locs) == 0 {
		return nil
	}

	var segments []domain.Segment
	for i, loc := range locs {
		stamp := transcript[loc[2]:loc[3]]
		end := len(transcript)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		text := strings.TrimSpace(transcript[loc[1]:end])
		if text == "" {
			continue
		}
		segments = append(segments, domain.Segment{
			Text:     text,
			StartSec: float64(parseTimestamp(stamp)),
		})
	}
	return segments
}

// parseTimestamp converts "H:MM:SS" to seconds.
func parseTimestamp(stamp string) int {
	parts := strings.Split(stamp, ":")
	if len(parts) != 3 {
		return 0
	}
	h, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	s, _ := strconv.Atoi(parts[2])
	return h*3600 + m*60 + s
}
