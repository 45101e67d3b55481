package handlers

import (
	"net/http"
	"strconv"
	"time"

	portssvc "github.com/danghm/famledger/internal/core/ports/services"
	"github.com/danghm/famledger/internal/dto"
	"github.com/danghm/famledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// balanceHandler handles HTTP requests for pairwise and scope-wide balances.
type balanceHandler struct {
	balanceService portssvc.BalanceSvc
}

func newBalanceHandler(bs portssvc.BalanceSvc) *balanceHandler {
	return &balanceHandler{balanceService: bs}
}

// registerBalanceRoutes registers routes related to balance queries.
func registerBalanceRoutes(rg *gin.RouterGroup, balanceService portssvc.BalanceSvc) {
	h := newBalanceHandler(balanceService)

	balances := rg.Group("/balances")
	{
		balances.GET("/pair", h.getPairBalance)
		balances.GET("", h.getAllBalances)
	}
}

// parseCutoff reads the asOf year/month query params; both are required.
func parseCutoff(c *gin.Context) (int, time.Month, bool) {
	year, errY := strconv.Atoi(c.Query("year"))
	month, errM := strconv.Atoi(c.Query("month"))
	if errY != nil || errM != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year and month query parameters are required"})
		return 0, 0, false
	}
	return year, time.Month(month), true
}

// scopeGroupID reads the optional scopeGroupId query parameter.
func scopeGroupID(c *gin.Context) *string {
	if id := c.Query("scopeGroupId"); id != "" {
		return &id
	}
	return nil
}

func (h *balanceHandler) getPairBalance(c *gin.Context) {
	personOneID := c.Query("personOneId")
	personTwoID := c.Query("personTwoId")
	year, month, ok := parseCutoff(c)
	if !ok {
		return
	}

	balance, err := h.balanceService.CalculatePairBalance(c.Request.Context(), scopeGroupID(c), personOneID, personTwoID, year, month)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.PairBalanceResponse{Balance: balance, Settled: balance == nil})
}

func (h *balanceHandler) getAllBalances(c *gin.Context) {
	personID, ok := middleware.GetPersonIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	year, month, okCutoff := parseCutoff(c)
	if !okCutoff {
		return
	}

	balances, err := h.balanceService.CalculateAllBalances(c.Request.Context(), scopeGroupID(c), personID, year, month)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.BalancesResponse{Balances: balances})
}
