package handlers

import (
	"net/http"
	"time"

	portssvc "github.com/danghm/famledger/internal/core/ports/services"
	"github.com/danghm/famledger/internal/dto"
	"github.com/danghm/famledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// settlementHandler handles HTTP requests for settlements and categories.
type settlementHandler struct {
	settlementService portssvc.SettlementSvc
	categoryService   portssvc.CategorySvc
}

func newSettlementHandler(ss portssvc.SettlementSvc, cs portssvc.CategorySvc) *settlementHandler {
	return &settlementHandler{settlementService: ss, categoryService: cs}
}

// registerSettlementRoutes registers routes related to settlements and
// category budgets.
func registerSettlementRoutes(rg *gin.RouterGroup, settlementService portssvc.SettlementSvc, categoryService portssvc.CategorySvc) {
	h := newSettlementHandler(settlementService, categoryService)

	groups := rg.Group("/groups/:group_id")
	{
		groups.POST("/settlements", h.postSettlement)
		groups.GET("/settlements", h.listSettlements)
		groups.GET("/categories", h.listCategories)
		groups.PUT("/categories/reorder", h.reorderCategories)
	}
}

func (h *settlementHandler) postSettlement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	groupID := c.Param("group_id")

	personID, ok := middleware.GetPersonIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateSettlementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid settlement request body", "error", err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	settlement, err := h.settlementService.CreateSettlement(c.Request.Context(), groupID, req, personID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, settlement)
}

func (h *settlementHandler) listSettlements(c *gin.Context) {
	groupID := c.Param("group_id")

	from, errF := time.Parse(time.DateOnly, c.Query("from"))
	until, errU := time.Parse(time.DateOnly, c.Query("until"))
	if errF != nil || errU != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from and until query parameters are required (YYYY-MM-DD)"})
		return
	}

	settlements, err := h.settlementService.ListSettlements(c.Request.Context(), groupID, from, until)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settlements)
}

func (h *settlementHandler) listCategories(c *gin.Context) {
	groupID := c.Param("group_id")

	categories, err := h.categoryService.ListCategoriesWithBudget(c.Request.Context(), groupID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *settlementHandler) reorderCategories(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	groupID := c.Param("group_id")

	personID, ok := middleware.GetPersonIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.ReorderCategoriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid reorder request body", "error", err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	if err := h.categoryService.ReorderCategories(c.Request.Context(), groupID, req, personID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
