package webserver

import (
	"github.com/gin-gonic/gin"
	"github.com/stake-plus/chainfund-monitor/src/monitor/config"
)

func New(cfg config.Config, sched Scheduler, evidence EvidenceSource) *gin.Engine {
	g := gin.New()
	g.Use(gin.Logger(), gin.Recovery())
	attachRoutes(g, cfg, sched, evidence)
	return g
}
