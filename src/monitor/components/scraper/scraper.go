package scraper

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stake-plus/chainfund-monitor/src/monitor/data"
	"github.com/stake-plus/chainfund-monitor/src/monitor/types"
)

// querySuffixes are combined with campaign and milestone titles to form the
// platform search queries for one milestone.
var querySuffixes = []string{"completed", "finished", "launched", "milestone", "update"}

// Store is the campaign persistence surface the scraper consumes.
type Store interface {
	GetCampaign(ctx context.Context, id uint64) (*types.Campaign, error)
	GetCampaigns(ctx context.Context) ([]types.Campaign, error)
	CompleteMilestone(ctx context.Context, campaignID uint64, milestoneID, evidence string) error
}

// Releaser triggers the on-chain fund release for a completed milestone.
type Releaser interface {
	Release(ctx context.Context, campaignID uint64, milestoneID string) error
}

// Notifier receives milestones whose confidence landed in the manual-review
// band.
type Notifier interface {
	ReviewNeeded(ctx context.Context, campaignID uint64, milestone types.Milestone, confidence float64)
}

type Config struct {
	Store    Store
	Releaser Releaser
	Notifier Notifier      // optional
	Redis    *redis.Client // optional evidence cache
	CacheTTL time.Duration
}

// Scraper collects completion evidence for campaign milestones and applies
// the completion / fund-release side effects.
type Scraper struct {
	config  Config
	website *WebsiteFetcher
}

func New(config Config) *Scraper {
	if config.CacheTTL <= 0 {
		config.CacheTTL = 30 * time.Minute
	}
	return &Scraper{
		config:  config,
		website: NewWebsiteFetcher(),
	}
}

// CheckMilestone runs the full evidence fan-out for one milestone and scores
// the union of everything that came back. Platform searches run in parallel;
// scoring waits for all of them.
func (s *Scraper) CheckMilestone(ctx context.Context, milestone types.Milestone, campaignTitle string) Result {
	queries := make([]string, 0, len(querySuffixes))
	for _, suffix := range querySuffixes {
		queries = append(queries, fmt.Sprintf("%s %s %s", campaignTitle, milestone.Title, suffix))
	}

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		evidence []Evidence
	)
	for _, query := range queries {
		for _, platform := range supportedPlatforms {
			wg.Add(1)
			go func(platform, query string) {
				defer wg.Done()
				results := SearchPlatform(ctx, platform, query)
				if len(results) == 0 {
					return
				}
				mu.Lock()
				evidence = append(evidence, results...)
				mu.Unlock()
			}(platform, query)
		}
	}
	wg.Wait()

	if url := strings.TrimSpace(milestone.Evidence); strings.HasPrefix(url, "http") {
		if ev, err := s.website.Fetch(ctx, url); err != nil {
			log.Printf("scraper: website evidence %s: %v", url, err)
		} else if ev != nil {
			evidence = append(evidence, *ev)
		}
	}

	confidence := Score(milestone, evidence)
	return Result{
		MilestoneID: milestone.ID,
		Evidence:    evidence,
		Confidence:  confidence,
		Verdict:     verdictFor(confidence),
	}
}

// MonitorCampaign checks every pending milestone of one campaign and applies
// completion and fund release where the evidence clears the threshold.
func (s *Scraper) MonitorCampaign(ctx context.Context, campaignID uint64) error {
	campaign, err := s.config.Store.GetCampaign(ctx, campaignID)
	if err != nil {
		return err
	}
	if campaign == nil {
		return fmt.Errorf("campaign %d not found", campaignID)
	}

	milestones, err := campaign.DecodeMilestones()
	if err != nil {
		return err
	}
	if len(milestones) == 0 {
		log.Printf("scraper: no milestones found for campaign %d", campaignID)
		return nil
	}

	log.Printf("scraper: monitoring campaign %d: %s", campaignID, campaign.Title)

	for _, milestone := range milestones {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if milestone.ID == "" {
			log.Printf("scraper: skipping milestone with missing id in campaign %d", campaignID)
			continue
		}
		if milestone.IsCompleted {
			continue
		}
		if !s.eligible(*campaign, milestone) {
			continue
		}

		result := s.CheckMilestone(ctx, milestone, campaign.Title)
		s.cacheResult(ctx, campaignID, result)

		switch result.Verdict {
		case VerdictCompleted:
			s.completeMilestone(ctx, campaignID, milestone, result)
		case VerdictReview:
			log.Printf("scraper: milestone %s has %.1f%% completion confidence - needs manual review",
				milestone.ID, result.Confidence*100)
			if s.config.Notifier != nil {
				s.config.Notifier.ReviewNeeded(ctx, campaignID, milestone, result.Confidence)
			}
		}
	}
	return nil
}

// eligible gates collection on the funding invariant: a milestone only
// qualifies once the campaign has collected its target amount. Unparseable
// amounts fail open.
func (s *Scraper) eligible(campaign types.Campaign, milestone types.Milestone) bool {
	target, ok := milestone.TargetDecimal()
	if !ok {
		return true
	}
	collected, ok := campaign.CollectedDecimal()
	if !ok {
		return true
	}
	if collected.LessThan(target) {
		log.Printf("scraper: milestone %s target %s not reached (collected %s), skipping",
			milestone.ID, target.String(), collected.String())
		return false
	}
	return true
}

// completeMilestone writes the completion first and only then attempts the
// fund release; a release failure never reverses the completion.
func (s *Scraper) completeMilestone(ctx context.Context, campaignID uint64, milestone types.Milestone, result Result) {
	log.Printf("scraper: milestone %s appears to be completed with %.1f%% confidence",
		milestone.ID, result.Confidence*100)

	summary := evidenceSummary(result.Evidence)
	if err := s.config.Store.CompleteMilestone(ctx, campaignID, milestone.ID, summary); err != nil {
		log.Printf("scraper: complete milestone %s: %v", milestone.ID, err)
		return
	}

	if s.config.Releaser != nil {
		if err := s.config.Releaser.Release(ctx, campaignID, milestone.ID); err != nil {
			log.Printf("scraper: fund release for campaign %d milestone %s: %v", campaignID, milestone.ID, err)
		} else {
			log.Printf("scraper: funds released for campaign %d, milestone %s", campaignID, milestone.ID)
		}
	}

	log.Printf("scraper: automatically completed milestone: %s (%s)", milestone.Title, milestone.ID)
}

func evidenceSummary(evidence []Evidence) string {
	parts := make([]string, 0, len(evidence))
	for _, e := range evidence {
		parts = append(parts, fmt.Sprintf("%s: %s", e.Source, e.Title))
	}
	return strings.Join(parts, "; ")
}

// MonitorAll sweeps every campaign with a non-empty milestone list. A failure
// in one campaign never aborts the rest of the sweep.
func (s *Scraper) MonitorAll(ctx context.Context) error {
	campaigns, err := s.config.Store.GetCampaigns(ctx)
	if err != nil {
		return fmt.Errorf("monitor all: %w", err)
	}

	for _, campaign := range campaigns {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		milestones, err := campaign.DecodeMilestones()
		if err != nil {
			log.Printf("scraper: %v", err)
			continue
		}
		if len(milestones) == 0 {
			continue
		}
		if err := s.MonitorCampaign(ctx, campaign.ID); err != nil {
			log.Printf("scraper: monitor campaign %d: %v", campaign.ID, err)
		}
	}
	return nil
}

// GetEvidence serves the read-only evidence view: cached results when fresh,
// otherwise a collection pass with no completion side effects.
func (s *Scraper) GetEvidence(ctx context.Context, campaignID uint64, milestoneID string) ([]Evidence, error) {
	if s.config.Redis != nil {
		var cached []Evidence
		hit, err := data.GetCachedEvidence(ctx, s.config.Redis, campaignID, milestoneID, &cached)
		if err != nil {
			log.Printf("scraper: evidence cache read: %v", err)
		} else if hit {
			return cached, nil
		}
	}

	campaign, err := s.config.Store.GetCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, nil
	}
	milestones, err := campaign.DecodeMilestones()
	if err != nil {
		return nil, err
	}
	for _, m := range milestones {
		if m.ID != milestoneID {
			continue
		}
		result := s.CheckMilestone(ctx, m, campaign.Title)
		s.cacheResult(ctx, campaignID, result)
		return result.Evidence, nil
	}
	return nil, nil
}

func (s *Scraper) cacheResult(ctx context.Context, campaignID uint64, result Result) {
	if s.config.Redis == nil {
		return
	}
	if err := data.CacheEvidence(ctx, s.config.Redis, campaignID, result.MilestoneID, result.Evidence, s.config.CacheTTL); err != nil {
		log.Printf("scraper: evidence cache write: %v", err)
	}
}
