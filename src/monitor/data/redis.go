package data

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const evidencePrefix = "evidence:"

func MustRedis(url string) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	return redis.NewClient(opt)
}

func evidenceKey(campaignID uint64, milestoneID string) string {
	return fmt.Sprintf("%s%d:%s", evidencePrefix, campaignID, milestoneID)
}

// CacheEvidence stores the evidence list collected for one milestone so the
// read endpoint can serve it without refetching.
func CacheEvidence(ctx context.Context, rdb *redis.Client, campaignID uint64, milestoneID string, evidence interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(evidence)
	if err != nil {
		return err
	}
	return rdb.Set(ctx, evidenceKey(campaignID, milestoneID), raw, ttl).Err()
}

// GetCachedEvidence unmarshals cached evidence into out. Returns false on a
// cache miss.
func GetCachedEvidence(ctx context.Context, rdb *redis.Client, campaignID uint64, milestoneID string, out interface{}) (bool, error) {
	raw, err := rdb.Get(ctx, evidenceKey(campaignID, milestoneID)).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal(raw, out)
}
