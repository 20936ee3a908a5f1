package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// BackMemeRequest represents the request body for backing a meme
type BackMemeRequest struct {
	Backer string `json:"backer" binding:"required"`
	Amount uint64 `json:"amount" binding:"required"`
}

// BackMeme handles a pledge to a proving meme
func BackMeme(c *gin.Context) {
	index, ok := memeIndexParam(c)
	if !ok {
		return
	}
	var req BackMemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	backing, err := Svc.BackMeme(index, req.Backer, req.Amount)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, backing)
}

// WithdrawBackingRequest represents the request body for a refund
type WithdrawBackingRequest struct {
	Backer string `json:"backer" binding:"required"`
}

// WithdrawBacking handles a refund from a failed meme
func WithdrawBacking(c *gin.Context) {
	index, ok := memeIndexParam(c)
	if !ok {
		return
	}
	var req WithdrawBackingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	refunded, err := Svc.WithdrawBacking(index, req.Backer)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"refunded": refunded})
}

// GetBacking handles retrieving a backer's position on a meme
func GetBacking(c *gin.Context) {
	index, ok := memeIndexParam(c)
	if !ok {
		return
	}

	view, err := Svc.GetBacking(index, c.Param("backer"))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// ClaimFeesRequest represents the request body for a genesis fee claim
type ClaimFeesRequest struct {
	Backer string `json:"backer" binding:"required"`
}

// ClaimGenesisFees handles a genesis backer's fee claim
func ClaimGenesisFees(c *gin.Context) {
	index, ok := memeIndexParam(c)
	if !ok {
		return
	}
	var req ClaimFeesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	claimed, err := Svc.ClaimGenesisFees(index, req.Backer)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"claimed": claimed})
}
