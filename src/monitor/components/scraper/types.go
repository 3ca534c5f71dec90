package scraper

import (
	"time"

	"github.com/google/uuid"
)

// Source identifiers for collected evidence.
const (
	SourceWebsite   = "website"
	SourceTwitter   = "twitter"
	SourceLinkedIn  = "linkedin"
	SourceFacebook  = "facebook"
	SourceInstagram = "instagram"
	SourceYouTube   = "youtube"
)

// Evidence is one piece of external content collected as a completion signal.
type Evidence struct {
	ID         string    `json:"id"`
	Source     string    `json:"source"`
	URL        string    `json:"url"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Timestamp  time.Time `json:"timestamp"`
	Confidence float64   `json:"confidence"` // 0-1 source confidence
	Keywords   []string  `json:"keywords"`
}

func newEvidence(source, url, title, content string, confidence float64) Evidence {
	return Evidence{
		ID:         uuid.NewString(),
		Source:     source,
		URL:        url,
		Title:      title,
		Content:    content,
		Timestamp:  time.Now().UTC(),
		Confidence: confidence,
		Keywords:   ExtractKeywords(title + " " + content),
	}
}

// Verdict is the outcome of one milestone evidence check.
type Verdict int

const (
	// VerdictPending means the evidence did not clear the review threshold;
	// the milestone stays open for the next cycle.
	VerdictPending Verdict = iota
	// VerdictReview means the confidence landed in the manual-review band.
	VerdictReview
	// VerdictCompleted means the confidence cleared the completion threshold.
	VerdictCompleted
)

func (v Verdict) String() string {
	switch v {
	case VerdictReview:
		return "review"
	case VerdictCompleted:
		return "completed"
	default:
		return "pending"
	}
}

// Result carries the full evidence list and scoring decision for one milestone.
type Result struct {
	MilestoneID string     `json:"milestoneId"`
	Evidence    []Evidence `json:"evidence"`
	Confidence  float64    `json:"confidence"`
	Verdict     Verdict    `json:"verdict"`
}
