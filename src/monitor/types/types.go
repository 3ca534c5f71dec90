package types

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Campaigns
type Campaign struct {
	ID              uint64    `gorm:"primaryKey"`
	Title           string    `gorm:"size:255;not null"`
	Description     string    `gorm:"type:text"`
	Owner           string    `gorm:"size:128"` // creator wallet address
	Category        string    `gorm:"size:64"`
	Target          string    `gorm:"size:78"` // decimal string, funding asset units
	AmountCollected string    `gorm:"size:78"`
	Deadline        time.Time `gorm:""`
	Milestones      string    `gorm:"type:json"` // JSON array of Milestone
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Milestone is one fund-release unit inside a campaign's milestones column.
type Milestone struct {
	ID                string     `json:"id"`
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	TargetAmount      string     `json:"targetAmount"` // decimal string
	ReleasePercentage int        `json:"releasePercentage"`
	IsCompleted       bool       `json:"isCompleted"`
	CompletedAt       *time.Time `json:"completedAt,omitempty"`
	Evidence          string     `json:"evidence,omitempty"`
	Deadline          *time.Time `json:"deadline,omitempty"`
}

// TargetDecimal parses the milestone target amount. Malformed amounts return
// zero and ok=false so callers can decide to fail open.
func (m Milestone) TargetDecimal() (decimal.Decimal, bool) {
	if m.TargetAmount == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(m.TargetAmount)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// CollectedDecimal parses the campaign's cumulative collected amount.
func (c Campaign) CollectedDecimal() (decimal.Decimal, bool) {
	if c.AmountCollected == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(c.AmountCollected)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// DecodeMilestones parses the campaign's milestones column.
func (c Campaign) DecodeMilestones() ([]Milestone, error) {
	if c.Milestones == "" || c.Milestones == "null" {
		return nil, nil
	}
	var ms []Milestone
	if err := json.Unmarshal([]byte(c.Milestones), &ms); err != nil {
		return nil, fmt.Errorf("campaign %d: decode milestones: %w", c.ID, err)
	}
	return ms, nil
}

// EncodeMilestones serializes a milestone list back into column form.
func EncodeMilestones(ms []Milestone) (string, error) {
	raw, err := json.Marshal(ms)
	if err != nil {
		return "", fmt.Errorf("encode milestones: %w", err)
	}
	return string(raw), nil
}
