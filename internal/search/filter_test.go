package search

import (
	"strings"
	"testing"

	"sermonsearch/internal/domain"
)

func teachingCandidate(title string) domain.Candidate {
	return domain.Candidate{
		Title: title,
		Text:  strings.Repeat("and so the point paul is making in this passage ", 4),
	}
}

func TestFilterDropsUntitled(t *testing.T) {
	f := NewContentFilter()
	in := []domain.Candidate{
		teachingCandidate("Romans 8 and the Spirit"),
		teachingCandidate(""),
		teachingCandidate("Unknown"),
		teachingCandidate("unknown sermon"),
	}
	out := f.Filter(in)
	if len(out) != 1 || out[0].Title != "Romans 8 and the Spirit" {
		t.Errorf("expected only the titled candidate, got %+v", out)
	}
}

func TestFilterDropsWorshipTitles(t *testing.T) {
	f := NewContentFilter()
	in := []domain.Candidate{
		teachingCandidate("Easter Worship Song Medley"),
		teachingCandidate("Amazing Grace (Hymn)"),
		teachingCandidate("Choir Night 2023"),
		teachingCandidate("A Study of Worship in the Psalms"),
	}
	out := f.Filter(in)
	// "worship" alone is a legitimate teaching topic; only the listed
	// indicator phrases are rejected.
	if len(out) != 1 || out[0].Title != "A Study of Worship in the Psalms" {
		t.Errorf("got %+v", out)
	}
}

func TestFilterDropsShortAndRefrainText(t *testing.T) {
	f := NewContentFilter()
	in := []domain.Candidate{
		{Title: "Short", Text: "too short to be useful"},
		{Title: "Lyrics", Text: strings.Repeat("glory glory to the lamb hallelujah hallelujah forever ", 4)},
		teachingCandidate("Keeper"),
	}
	out := f.Filter(in)
	if len(out) != 1 || out[0].Title != "Keeper" {
		t.Errorf("got %+v", out)
	}
}

func TestFilterIdempotent(t *testing.T) {
	f := NewContentFilter()
	in := []domain.Candidate{
		teachingCandidate("Romans"),
		teachingCandidate(""),
		teachingCandidate("James"),
	}
	once := f.Filter(in)
	twice := f.Filter(once)
	if len(once) != len(twice) {
		t.Fatalf("second pass changed the result: %d vs %d", len(once), len(twice))
	}
	for i := range once {
		if once[i].Title != twice[i].Title {
			t.Errorf("mismatch at %d", i)
		}
	}
}
