package data

import (
	"context"
	"fmt"
	"time"

	"github.com/stake-plus/chainfund-monitor/src/monitor/types"
	"gorm.io/gorm"
)

// Store wraps campaign and milestone persistence.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) GetCampaign(ctx context.Context, id uint64) (*types.Campaign, error) {
	var c types.Campaign
	err := s.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get campaign %d: %w", id, err)
	}
	return &c, nil
}

func (s *Store) GetCampaigns(ctx context.Context) ([]types.Campaign, error) {
	var cs []types.Campaign
	if err := s.db.WithContext(ctx).Find(&cs).Error; err != nil {
		return nil, fmt.Errorf("get campaigns: %w", err)
	}
	return cs, nil
}

// CompleteMilestone marks one milestone complete and records the evidence
// summary. Re-invoking with the same ids sets the same fields again, so the
// write is idempotent.
func (s *Store) CompleteMilestone(ctx context.Context, campaignID uint64, milestoneID, evidence string) error {
	var c types.Campaign
	if err := s.db.WithContext(ctx).First(&c, "id = ?", campaignID).Error; err != nil {
		return fmt.Errorf("complete milestone: campaign %d: %w", campaignID, err)
	}

	ms, err := c.DecodeMilestones()
	if err != nil {
		return fmt.Errorf("complete milestone: %w", err)
	}

	idx := -1
	for i := range ms {
		if ms[i].ID == milestoneID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return fmt.Errorf("complete milestone: milestone %s not found in campaign %d", milestoneID, campaignID)
	}

	ms[idx].IsCompleted = true
	ms[idx].Evidence = evidence
	if ms[idx].CompletedAt == nil {
		now := time.Now().UTC()
		ms[idx].CompletedAt = &now
	}

	encoded, err := types.EncodeMilestones(ms)
	if err != nil {
		return fmt.Errorf("complete milestone: %w", err)
	}

	if err := s.db.WithContext(ctx).Model(&types.Campaign{}).
		Where("id = ?", campaignID).
		Update("milestones", encoded).Error; err != nil {
		return fmt.Errorf("complete milestone: update campaign %d: %w", campaignID, err)
	}
	return nil
}
