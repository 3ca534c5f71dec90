package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	MySQLDSN        string
	RedisURL        string
	JWTSecret       string
	Port            string
	IntervalMinutes int

	// Fund release; empty key or RPC URL puts the engine in evidence-only mode.
	ReleaseRPCURL   string
	ReleaseKey      string
	ReleaseContract string
	ReleaseChainID  int64

	// Review notifications; empty token or channel disables them.
	DiscordToken    string
	ReviewChannelID string
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		if def == "" {
			log.Fatalf("missing env %s", key)
		}
		return def
	}
	return v
}

func Load() Config {
	interval, _ := strconv.Atoi(getenv("MONITOR_INTERVAL_MINUTES", "30"))
	if interval <= 0 {
		interval = 30
	}
	chainID, _ := strconv.ParseInt(getenv("FUND_RELEASE_CHAIN_ID", "1"), 10, 64)

	return Config{
		MySQLDSN:        getenv("MYSQL_DSN", "chainfund:chainfund@tcp(127.0.0.1:3306)/chainfund"),
		RedisURL:        getenv("REDIS_URL", "redis://127.0.0.1:6379/0"),
		JWTSecret:       getenv("JWT_SECRET", "4bb1f4e79c7d4f9fb92a1f6f2f19a6f0d42d3d0c9c74cbb7a2f1e8d4b6a0c3e5"),
		Port:            getenv("PORT", "8090"),
		IntervalMinutes: interval,
		ReleaseRPCURL:   os.Getenv("FUND_RELEASE_RPC_URL"),
		ReleaseKey:      os.Getenv("FUND_RELEASE_PRIVATE_KEY"),
		ReleaseContract: os.Getenv("FUND_RELEASE_CONTRACT_ADDRESS"),
		ReleaseChainID:  chainID,
		DiscordToken:    os.Getenv("DISCORD_TOKEN"),
		ReviewChannelID: os.Getenv("DISCORD_REVIEW_CHANNEL_ID"),
	}
}
