package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/stake-plus/chainfund-monitor/src/monitor/components/notify"
	"github.com/stake-plus/chainfund-monitor/src/monitor/components/release"
	"github.com/stake-plus/chainfund-monitor/src/monitor/components/scheduler"
	"github.com/stake-plus/chainfund-monitor/src/monitor/components/scraper"
	"github.com/stake-plus/chainfund-monitor/src/monitor/config"
	"github.com/stake-plus/chainfund-monitor/src/monitor/data"
	"github.com/stake-plus/chainfund-monitor/src/monitor/types"
	"github.com/stake-plus/chainfund-monitor/src/monitor/webserver"
	"gorm.io/gorm"
)

func migrate(db *gorm.DB) {
	if err := db.AutoMigrate(&types.Campaign{}); err != nil {
		log.Fatalf("migrate: %v", err)
	}
}

func main() {
	cfg := config.Load()

	db := data.MustMySQL(cfg.MySQLDSN)
	migrate(db)
	rdb := data.MustRedis(cfg.RedisURL)

	releaser, err := release.New(release.Config{
		RPCURL:     cfg.ReleaseRPCURL,
		PrivateKey: cfg.ReleaseKey,
		Contract:   cfg.ReleaseContract,
		ChainID:    cfg.ReleaseChainID,
	})
	if err != nil {
		log.Fatalf("release: %v", err)
	}

	var notifier scraper.Notifier
	if cfg.DiscordToken != "" && cfg.ReviewChannelID != "" {
		d, err := notify.NewDiscord(cfg.DiscordToken, cfg.ReviewChannelID)
		if err != nil {
			log.Printf("notify: disabled: %v", err)
		} else {
			notifier = d
		}
	}

	engine := scraper.New(scraper.Config{
		Store:    data.NewStore(db),
		Releaser: releaser,
		Notifier: notifier,
		Redis:    rdb,
		CacheTTL: time.Duration(cfg.IntervalMinutes) * time.Minute,
	})

	sched := scheduler.New(engine)
	sched.Start(cfg.IntervalMinutes)

	router := webserver.New(cfg, sched, engine)
	httpSrv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http: %v", err)
		}
	}()
	log.Printf("chainfund monitor listening on %s", cfg.Port)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	sched.Stop()

	shutCtx, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()
	_ = httpSrv.Shutdown(shutCtx)
}
