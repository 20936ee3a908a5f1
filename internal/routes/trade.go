package routes

import (
	"github.com/gin-gonic/gin"

	"memelaunch/internal/handlers"
)

// SetupTradeRoutes sets up routes for curve trading and migration
func SetupTradeRoutes(r *gin.Engine) {
	memes := r.Group("/memes")
	{
		memes.GET("/:index/curve", handlers.GetCurve)
		memes.POST("/:index/buy", handlers.BuyTokens)
		memes.POST("/:index/sell", handlers.SellTokens)
		memes.GET("/:index/quote/buy", handlers.QuoteBuy)
		memes.GET("/:index/quote/sell", handlers.QuoteSell)
		memes.GET("/:index/trades", handlers.ListTrades)
		memes.GET("/:index/balances/:owner", handlers.GetTokenBalance)
		memes.POST("/:index/migrate", handlers.MigrateMeme)
	}
}
