package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ShikhaMathur02/Visitor-System/internal/service"
	"github.com/ShikhaMathur02/Visitor-System/pkg/response"
)

// StatsHandler serves the reporting dashboard.
type StatsHandler struct {
	statsSvc service.StatsService
}

// NewStatsHandler creates a StatsHandler.
func NewStatsHandler(statsSvc service.StatsService) *StatsHandler {
	return &StatsHandler{statsSvc: statsSvc}
}

// Today returns today's aggregate numbers for both record kinds.
// GET /api/v1/stats/today
func (h *StatsHandler) Today(c *gin.Context) {
	stats, err := h.statsSvc.DailyStats(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, stats)
}
