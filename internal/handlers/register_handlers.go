package handlers

import (
	portssvc "github.com/danghm/famledger/internal/core/ports/services"
	"github.com/danghm/famledger/internal/middleware"
	"github.com/danghm/famledger/internal/platform/config"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up all application routes, injecting dependencies using
// interfaces.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific
// entity route registrations.
func setupAPIV1Routes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
) {
	// Caller identity is resolved upstream and carried in a trusted header.
	v1 := r.Group("/api/v1", middleware.PersonIdentityMiddleware())

	registerBalanceRoutes(v1, services.Balance)
	registerBreakdownRoutes(v1, services.Breakdown, services.Budget)
	registerSettlementRoutes(v1, services.Settlement, services.Category)
}
