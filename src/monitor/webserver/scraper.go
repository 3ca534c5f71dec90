package webserver

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/stake-plus/chainfund-monitor/src/monitor/components/scheduler"
	"github.com/stake-plus/chainfund-monitor/src/monitor/components/scraper"
)

// Scheduler is the scheduler surface the admin routes drive.
type Scheduler interface {
	Start(intervalMinutes int)
	Stop()
	GetStatus() scheduler.Status
	MonitorOne(ctx context.Context, campaignID uint64) error
}

// EvidenceSource serves the read-only evidence view.
type EvidenceSource interface {
	GetEvidence(ctx context.Context, campaignID uint64, milestoneID string) ([]scraper.Evidence, error)
}

type ScraperHandler struct {
	sched    Scheduler
	evidence EvidenceSource
}

func NewScraperHandler(sched Scheduler, evidence EvidenceSource) ScraperHandler {
	return ScraperHandler{sched: sched, evidence: evidence}
}

func (h ScraperHandler) Start(c *gin.Context) {
	var req struct {
		IntervalMinutes int `json:"intervalMinutes"`
	}
	// Body is optional; an empty one (or a zero) means the default interval.
	_ = c.ShouldBindJSON(&req)

	if req.IntervalMinutes < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "intervalMinutes must not be negative"})
		return
	}

	h.sched.Start(req.IntervalMinutes)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "campaign monitoring started"})
}

func (h ScraperHandler) Stop(c *gin.Context) {
	h.sched.Stop()
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "campaign monitoring stopped"})
}

func (h ScraperHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, h.sched.GetStatus())
}

func (h ScraperHandler) MonitorOne(c *gin.Context) {
	campaignID, err := strconv.ParseUint(c.Param("campaignId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid campaign id"})
		return
	}

	if err := h.sched.MonitorOne(c.Request.Context(), campaignID); err != nil {
		log.Printf("webserver: monitor campaign %d: %v", campaignID, err)
		c.JSON(http.StatusOK, gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "campaign checked"})
}

// Evidence never surfaces collection failures as HTTP errors; callers get an
// empty list instead.
func (h ScraperHandler) Evidence(c *gin.Context) {
	campaignID, err := strconv.ParseUint(c.Param("campaignId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid campaign id"})
		return
	}
	milestoneID := c.Param("milestoneId")

	evidence, err := h.evidence.GetEvidence(c.Request.Context(), campaignID, milestoneID)
	if err != nil {
		log.Printf("webserver: evidence for campaign %d milestone %s: %v", campaignID, milestoneID, err)
	}
	if evidence == nil {
		evidence = []scraper.Evidence{}
	}
	c.JSON(http.StatusOK, gin.H{"evidence": evidence})
}
