package scraper

import (
	"math"

	"github.com/stake-plus/chainfund-monitor/src/monitor/types"
)

// Score weighting: source-reported confidence dominates, but strong topical
// overlap can compensate for weaker sources. Thresholds gate the verdict.
const (
	confidenceWeight    = 0.7
	keywordWeight       = 0.3
	completionThreshold = 0.7 // strict: score must exceed this
	reviewThreshold     = 0.5 // strict lower bound of the manual-review band
)

// Score combines average per-item confidence with keyword overlap between the
// milestone text and the evidence. Empty evidence scores exactly zero.
func Score(milestone types.Milestone, evidence []Evidence) float64 {
	if len(evidence) == 0 {
		return 0
	}

	milestoneKeywords := ExtractKeywords(milestone.Title + " " + milestone.Description)

	var totalConfidence float64
	keywordMatches := 0
	for _, e := range evidence {
		totalConfidence += e.Confidence
		for _, kw := range milestoneKeywords {
			if containsKeyword(e.Keywords, kw) {
				keywordMatches++
			}
		}
	}

	avgConfidence := totalConfidence / float64(len(evidence))

	keywordScore := 0.0
	if len(milestoneKeywords) > 0 {
		keywordScore = math.Min(float64(keywordMatches)/float64(len(milestoneKeywords)), 1)
	}

	return avgConfidence*confidenceWeight + keywordScore*keywordWeight
}

func verdictFor(score float64) Verdict {
	switch {
	case score > completionThreshold:
		return VerdictCompleted
	case score > reviewThreshold:
		return VerdictReview
	default:
		return VerdictPending
	}
}
