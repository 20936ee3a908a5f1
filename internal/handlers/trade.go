package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// BuyRequest represents the request body for a curve buy
type BuyRequest struct {
	Buyer        string `json:"buyer" binding:"required"`
	SolAmount    uint64 `json:"sol_amount" binding:"required"`
	MinTokensOut uint64 `json:"min_tokens_out"`
}

// BuyTokens handles a buy against the bonding curve
func BuyTokens(c *gin.Context) {
	index, ok := memeIndexParam(c)
	if !ok {
		return
	}
	var req BuyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := Svc.BuyTokens(index, req.Buyer, req.SolAmount, req.MinTokensOut)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// SellRequest represents the request body for a curve sell
type SellRequest struct {
	Seller      string `json:"seller" binding:"required"`
	TokenAmount uint64 `json:"token_amount" binding:"required"`
	MinSolOut   uint64 `json:"min_sol_out"`
}

// SellTokens handles a sell against the bonding curve
func SellTokens(c *gin.Context) {
	index, ok := memeIndexParam(c)
	if !ok {
		return
	}
	var req SellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := Svc.SellTokens(index, req.Seller, req.TokenAmount, req.MinSolOut)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetCurve handles retrieving the curve state and spot price
func GetCurve(c *gin.Context) {
	index, ok := memeIndexParam(c)
	if !ok {
		return
	}

	state, err := Svc.GetCurve(index)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// QuoteBuy handles a dry-run buy quote via ?sol_amount=
func QuoteBuy(c *gin.Context) {
	index, ok := memeIndexParam(c)
	if !ok {
		return
	}
	solAmount, err := strconv.ParseUint(c.Query("sol_amount"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sol_amount"})
		return
	}

	quote, err := Svc.QuoteBuy(index, solAmount)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

// QuoteSell handles a dry-run sell quote via ?token_amount=
func QuoteSell(c *gin.Context) {
	index, ok := memeIndexParam(c)
	if !ok {
		return
	}
	tokenAmount, err := strconv.ParseUint(c.Query("token_amount"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid token_amount"})
		return
	}

	quote, err := Svc.QuoteSell(index, tokenAmount)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

// ListTrades handles paginated trade history for a meme
func ListTrades(c *gin.Context) {
	index, ok := memeIndexParam(c)
	if !ok {
		return
	}
	page, pageSize := pageParams(c)

	trades, total, err := Svc.ListTrades(index, page, pageSize)
	if err != nil {
		renderError(c, err)
		return
	}

	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)
	c.JSON(http.StatusOK, gin.H{
		"data": trades,
		"pagination": gin.H{
			"current_page": page,
			"page_size":    pageSize,
			"total":        total,
			"total_pages":  totalPages,
		},
	})
}

// GetTokenBalance handles retrieving a holder's token balance for a meme
func GetTokenBalance(c *gin.Context) {
	index, ok := memeIndexParam(c)
	if !ok {
		return
	}

	balance, err := Svc.GetTokenBalance(index, c.Param("owner"))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"owner": c.Param("owner"), "balance": balance})
}

// MigrateMeme handles retiring a completed curve to an external AMM
func MigrateMeme(c *gin.Context) {
	index, ok := memeIndexParam(c)
	if !ok {
		return
	}

	meme, err := Svc.MigrateToAmm(index)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, meme)
}
