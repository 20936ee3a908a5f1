package routes

import (
	"github.com/gin-gonic/gin"

	"memelaunch/internal/handlers"
)

// SetupMemeRoutes sets up routes for the proving-grounds lifecycle
func SetupMemeRoutes(r *gin.Engine) {
	memes := r.Group("/memes")
	{
		memes.POST("", handlers.SubmitMeme)
		memes.GET("", handlers.ListMemes)
		memes.GET("/:index", handlers.GetMeme)
		memes.POST("/:index/finalize", handlers.FinalizeMeme)

		memes.POST("/:index/back", handlers.BackMeme)
		memes.POST("/:index/withdraw", handlers.WithdrawBacking)
		memes.GET("/:index/backings/:backer", handlers.GetBacking)
		memes.POST("/:index/claim", handlers.ClaimGenesisFees)
	}
}
