package controllers

import (
	"net/http"

	"github.com/hyuyu1012/chaeum/services"
	"github.com/hyuyu1012/chaeum/utils"

	"github.com/gin-gonic/gin"
)

type StatsController struct {
	Stats *services.StatsService
}

func NewStatsController(stats *services.StatsService) *StatsController {
	return &StatsController{Stats: stats}
}

// GET /stats?from=2025-06-01&to=2025-06-30
func (sc *StatsController) Totals(c *gin.Context) {
	from, err := utils.ParseDay(c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	to, err := utils.ParseDay(c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sum, err := sc.Stats.Totals(from, to)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sum)
}
