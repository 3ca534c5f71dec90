package webserver

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/stake-plus/chainfund-monitor/src/monitor/config"
)

func attachRoutes(r *gin.Engine, cfg config.Config, sched Scheduler, evidence EvidenceSource) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	scraperH := NewScraperHandler(sched, evidence)

	v1 := r.Group("/v1")
	{
		v1.GET("/milestones/:campaignId/:milestoneId/evidence", scraperH.Evidence)

		admin := v1.Group("/admin")
		admin.Use(JWTMiddleware([]byte(cfg.JWTSecret)))
		{
			admin.POST("/scraper/start", scraperH.Start)
			admin.POST("/scraper/stop", scraperH.Stop)
			admin.GET("/scraper/status", scraperH.Status)
			admin.POST("/scraper/monitor/:campaignId", scraperH.MonitorOne)
		}
	}
}
