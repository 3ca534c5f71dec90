package scraper

import (
	"testing"

	"github.com/stake-plus/chainfund-monitor/src/monitor/types"
	"github.com/stretchr/testify/assert"
)

func evidenceWithKeywords(confidence float64, keywords ...string) Evidence {
	return Evidence{Source: SourceWebsite, Confidence: confidence, Keywords: keywords}
}

func TestScoreEmptyEvidence(t *testing.T) {
	m := types.Milestone{Title: "Launch campaign", Description: "launch the campaign"}
	assert.Zero(t, Score(m, nil))
	assert.Zero(t, Score(m, []Evidence{}))
}

func TestScoreWorkedExample(t *testing.T) {
	// Milestone keywords {launch, campaign}; two items of confidence 0.9 and
	// 0.5 each matching "launch": avg 0.7, keywordScore 1, final 0.79.
	m := types.Milestone{Title: "launch", Description: "campaign"}
	evidence := []Evidence{
		evidenceWithKeywords(0.9, "launch"),
		evidenceWithKeywords(0.5, "launch"),
	}
	assert.InDelta(t, 0.79, Score(m, evidence), 1e-9)
	assert.Equal(t, VerdictCompleted, verdictFor(Score(m, evidence)))
}

func TestScoreNoKeywordOverlap(t *testing.T) {
	m := types.Milestone{Title: "solar panels", Description: "install solar panels"}
	evidence := []Evidence{
		evidenceWithKeywords(0.6, "unrelated", "tokens"),
	}
	assert.InDelta(t, 0.6*confidenceWeight, Score(m, evidence), 1e-9)
}

func TestScoreEmptyMilestoneKeywords(t *testing.T) {
	// Title and description produce no keywords; keywordScore must be 0, not
	// a division by zero.
	m := types.Milestone{Title: "v2", Description: "go"}
	evidence := []Evidence{evidenceWithKeywords(0.8, "anything")}
	assert.InDelta(t, 0.8*confidenceWeight, Score(m, evidence), 1e-9)
}

func TestScoreBounded(t *testing.T) {
	m := types.Milestone{Title: "launch campaign milestone", Description: "big launch"}
	evidence := []Evidence{
		evidenceWithKeywords(1.0, "launch", "campaign", "milestone"),
		evidenceWithKeywords(1.0, "launch", "campaign", "milestone"),
		evidenceWithKeywords(1.0, "launch", "campaign", "milestone"),
	}
	score := Score(m, evidence)
	assert.LessOrEqual(t, score, 1.0)
	assert.GreaterOrEqual(t, score, 0.0)
}

func TestVerdictBands(t *testing.T) {
	assert.Equal(t, VerdictPending, verdictFor(0))
	assert.Equal(t, VerdictPending, verdictFor(0.5))
	assert.Equal(t, VerdictReview, verdictFor(0.51))
	assert.Equal(t, VerdictReview, verdictFor(0.7))
	assert.Equal(t, VerdictCompleted, verdictFor(0.71))
}
