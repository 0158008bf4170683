package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"printlog/repository"
	"printlog/utils"
)

// StatsController serves the multi-facet statistics bundle.
type StatsController struct {
	prints *repository.PrintRepository
}

// NewStatsController creates a new StatsController instance.
func NewStatsController(prints *repository.PrintRepository) *StatsController {
	return &StatsController{prints: prints}
}

// GetStatistics returns the six aggregates over an optional inclusive date
// range given as ISO dates in start_date and end_date.
func (s *StatsController) GetStatistics(ctx *gin.Context) {
	startDate := ctx.Query("start_date")
	endDate := ctx.Query("end_date")
	if !validISODate(startDate) || !validISODate(endDate) {
		utils.Error(ctx, http.StatusBadRequest, 40009, "dates must be formatted as YYYY-MM-DD")
		return
	}

	stats, err := s.prints.Statistics(startDate, endDate)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50003, "failed to load statistics")
		return
	}
	ctx.JSON(http.StatusOK, stats)
}

func validISODate(s string) bool {
	if s == "" {
		return true
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}
