package handlers

import (
	"net/http"

	portssvc "github.com/danghm/famledger/internal/core/ports/services"
	"github.com/danghm/famledger/internal/dto"
	"github.com/danghm/famledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// breakdownHandler handles HTTP requests for period breakdowns and budget trends.
type breakdownHandler struct {
	breakdownService portssvc.BreakdownSvc
	budgetService    portssvc.BudgetSvc
}

func newBreakdownHandler(bs portssvc.BreakdownSvc, bu portssvc.BudgetSvc) *breakdownHandler {
	return &breakdownHandler{breakdownService: bs, budgetService: bu}
}

// registerBreakdownRoutes registers routes related to breakdown reports.
func registerBreakdownRoutes(rg *gin.RouterGroup, breakdownService portssvc.BreakdownSvc, budgetService portssvc.BudgetSvc) {
	h := newBreakdownHandler(breakdownService, budgetService)

	groups := rg.Group("/groups/:group_id")
	{
		groups.POST("/breakdown", h.postBreakdown)
		groups.POST("/budget-trend", h.postBudgetTrend)
	}
}

func (h *breakdownHandler) postBreakdown(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	groupID := c.Param("group_id")

	var req dto.BreakdownRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid breakdown request body", "error", err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	rows, err := h.breakdownService.Breakdown(c.Request.Context(), groupID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.BreakdownResponse{Rows: rows})
}

func (h *breakdownHandler) postBudgetTrend(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	groupID := c.Param("group_id")

	var req dto.BudgetTrendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid budget trend request body", "error", err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	rows, err := h.budgetService.BudgetTrend(c.Request.Context(), groupID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.BudgetTrendResponse{Rows: rows})
}
