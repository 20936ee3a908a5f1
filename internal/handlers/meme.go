package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"memelaunch/internal/engine"
)

// SubmitMemeRequest represents the request body for submitting a meme
type SubmitMemeRequest struct {
	Creator         string `json:"creator" binding:"required"`
	Name            string `json:"name" binding:"required"`
	Symbol          string `json:"symbol" binding:"required"`
	URI             string `json:"uri"`
	Description     string `json:"description"`
	SolGoal         uint64 `json:"sol_goal" binding:"required"`
	MinBackers      uint32 `json:"min_backers" binding:"required"`
	DurationSeconds int64  `json:"duration_seconds" binding:"required"`
}

// SubmitMeme handles a new proving-grounds submission
func SubmitMeme(c *gin.Context) {
	var req SubmitMemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	meme, err := Svc.SubmitMeme(req.Creator, engine.SubmissionParams{
		Name:            req.Name,
		Symbol:          req.Symbol,
		URI:             req.URI,
		Description:     req.Description,
		SolGoal:         req.SolGoal,
		MinBackers:      req.MinBackers,
		DurationSeconds: req.DurationSeconds,
	})
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, meme)
}

// ListMemes handles paginated meme listing with an optional status filter
func ListMemes(c *gin.Context) {
	page, pageSize := pageParams(c)
	status := c.Query("status")

	memes, total, err := Svc.ListMemes(status, page, pageSize)
	if err != nil {
		renderError(c, err)
		return
	}

	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)
	c.JSON(http.StatusOK, gin.H{
		"data": memes,
		"pagination": gin.H{
			"current_page": page,
			"page_size":    pageSize,
			"total":        total,
			"total_pages":  totalPages,
		},
	})
}

// GetMeme handles retrieving one meme with its proving progress
func GetMeme(c *gin.Context) {
	index, ok := memeIndexParam(c)
	if !ok {
		return
	}

	progress, err := Svc.GetMemeProgress(index)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, progress)
}

// FinalizeMeme handles the end-of-proving evaluation. Launches on success,
// marks failed on a missed goal or quorum.
func FinalizeMeme(c *gin.Context) {
	index, ok := memeIndexParam(c)
	if !ok {
		return
	}

	meme, err := Svc.EvaluateAndFinalize(index)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, meme)
}
