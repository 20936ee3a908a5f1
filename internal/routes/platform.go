package routes

import (
	"github.com/gin-gonic/gin"

	"memelaunch/internal/handlers"
)

// SetupPlatformRoutes sets up routes for platform config and wallet balances
func SetupPlatformRoutes(r *gin.Engine) {
	platform := r.Group("/platform")
	{
		platform.POST("", handlers.InitializePlatform)
		platform.GET("", handlers.GetPlatform)
	}

	accounts := r.Group("/accounts")
	{
		accounts.POST("/deposit", handlers.CreditDeposit)
		accounts.GET("/:address/balance", handlers.GetBalance)
	}
}
