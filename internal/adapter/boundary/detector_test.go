package boundary

import (
	"strings"
	"testing"

	"sermonsearch/config"
	"sermonsearch/internal/domain"
)

func newTestDetector(t *testing.T) *Detector {
	t.Helper()
	d, err := NewDetector(config.DefaultConfig().Boundary)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func seg(text string, at float64) domain.Segment {
	return domain.Segment{Text: text, StartSec: at}
}

func wordsOf(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

func TestFindStart_BacksUpBeforeMatch(t *testing.T) {
	d := newTestDetector(t)

	segments := []domain.Segment{
		seg("so good to see everyone here today friends", 0),
		seg("turn to John 3", 5),
		seg("for God so loved the world", 8),
	}

	if got := d.FindStart(segments); got != 0 {
		t.Errorf("expected start index 0 (one back from match at 1), got %d", got)
	}
}

func TestFindStart_MatchAtZero(t *testing.T) {
	d := newTestDetector(t)

	segments := []domain.Segment{
		seg("open your bibles to Romans 8", 0),
		seg("Paul writes", 4),
	}

	if got := d.FindStart(segments); got != 0 {
		t.Errorf("expected start index 0, got %d", got)
	}
}

func TestFindStart_ElapsedTimeFallback(t *testing.T) {
	d := newTestDetector(t)

	segments := []domain.Segment{
		seg("hello everybody", 0),
		seg(wordsOf(20), 90),  // substantive but too early
		seg(wordsOf(20), 150), // past 120s, >15 words, not ceremonial
	}

	if got := d.FindStart(segments); got != 2 {
		t.Errorf("expected start index 2 via elapsed-time fallback, got %d", got)
	}
}

func TestFindStart_CeremonialSkipped(t *testing.T) {
	d := newTestDetector(t)

	// Past the threshold and long, but a worship announcement: the first
	// fallback must skip it; the second, lower bar may still pick it.
	segments := []domain.Segment{
		seg("sign up for the potluck "+wordsOf(16), 130),
		seg(wordsOf(20), 200),
	}

	if got := d.FindStart(segments); got != 1 {
		t.Errorf("expected start index 1 (ceremonial skipped), got %d", got)
	}
}

func TestFindStart_NothingMatches(t *testing.T) {
	d := newTestDetector(t)

	segments := []domain.Segment{
		seg("hi", 0),
		seg("there", 5),
	}

	if got := d.FindStart(segments); got != 0 {
		t.Errorf("expected start index 0 when nothing matches, got %d", got)
	}
}

func TestTrim_ClosingPhrase(t *testing.T) {
	d := newTestDetector(t)

	segments := []domain.Segment{
		seg("turn to Matthew 5 and we will read", 0),
		seg(wordsOf(30), 60),
		seg(wordsOf(30), 120),
		seg("you are dismissed, have a blessed afternoon everyone", 3500),
	}

	trimmed := d.Trim(segments)
	for _, s := range trimmed {
		if strings.Contains(strings.ToLower(s.Text), "dismissed") {
			t.Error("closing segment should have been truncated")
		}
	}
	if len(trimmed) != 3 {
		t.Errorf("expected 3 segments after closing truncation, got %d", len(trimmed))
	}
}

func TestTrim_LatestClosingWins(t *testing.T) {
	d := newTestDetector(t)

	// Two closing phrases inside the lookback window: the backward scan
	// stops at the later one.
	segments := []domain.Segment{
		seg("turn to Luke 15 this morning", 0),
		seg(wordsOf(30), 60),
		seg("let's close in prayer "+wordsOf(10), 3000),
		seg(wordsOf(30), 3100),
		seg("god bless you all and goodnight", 3200),
	}

	trimmed := d.Trim(segments)
	if len(trimmed) != 4 {
		t.Errorf("expected truncation at the latest closing phrase (4 segments), got %d", len(trimmed))
	}
}

func TestTrim_MidSpanCeremonialDrop(t *testing.T) {
	d := newTestDetector(t)

	shortAside := seg("worship team come on up", 200)           // 5 words, ceremonial
	longPassage := seg("the offering "+wordsOf(20), 300)        // keyword but 22 words
	segments := []domain.Segment{
		seg("turn to Acts 2 with me", 0),
		seg(wordsOf(30), 100),
		shortAside,
		longPassage,
		seg(wordsOf(30), 400),
	}

	trimmed := d.Trim(segments)
	for _, s := range trimmed {
		if s.Text == shortAside.Text {
			t.Error("short ceremonial aside should have been dropped mid-span")
		}
	}
	found := false
	for _, s := range trimmed {
		if s.Text == longPassage.Text {
			found = true
		}
	}
	if !found {
		t.Error("long passage containing a keyword should have been kept")
	}
}

func TestTrim_NoPatternsFullSpan(t *testing.T) {
	d := newTestDetector(t)

	segments := []domain.Segment{
		seg(wordsOf(12), 0),
		seg(wordsOf(12), 10),
		seg(wordsOf(12), 20),
	}

	trimmed := d.Trim(segments)
	if len(trimmed) != len(segments) {
		t.Errorf("expected full span unchanged, got %d of %d", len(trimmed), len(segments))
	}
}

func TestTrim_Empty(t *testing.T) {
	d := newTestDetector(t)
	if got := d.Trim(nil); len(got) != 0 {
		t.Errorf("expected empty result for empty input, got %d", len(got))
	}
}

func TestIsCeremonial(t *testing.T) {
	d := newTestDetector(t)

	cases := []struct {
		text string
		want bool
	}{
		{"amen", true},                          // under word minimum
		{"please sign up for the potluck next saturday", true},
		{"join us for the event after second service", true},
		{"the apostle Paul writes to the church in Corinth about love", false},
	}
	for _, tc := range cases {
		if got := d.IsCeremonial(seg(tc.text, 100)); got != tc.want {
			t.Errorf("IsCeremonial(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}
