package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// InitializePlatformRequest represents the request body for platform setup
type InitializePlatformRequest struct {
	Authority      string `json:"authority" binding:"required"`
	SubmissionFee  uint64 `json:"submission_fee"`
	PlatformFeeBps uint16 `json:"platform_fee_bps" binding:"required"`
	GenesisFeeBps  uint16 `json:"genesis_fee_bps" binding:"required"`
	BurnFeeBps     uint16 `json:"burn_fee_bps" binding:"required"`
}

// InitializePlatform handles platform creation or fee parameter updates
func InitializePlatform(c *gin.Context) {
	var req InitializePlatformRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cfg, err := Svc.InitializePlatform(req.Authority, req.SubmissionFee,
		req.PlatformFeeBps, req.GenesisFeeBps, req.BurnFeeBps)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// GetPlatform handles retrieving the platform config and counters
func GetPlatform(c *gin.Context) {
	cfg, err := Svc.GetPlatform()
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// DepositRequest represents a lamport credit to a wallet
type DepositRequest struct {
	Address string `json:"address" binding:"required"`
	Amount  uint64 `json:"amount" binding:"required"`
}

// CreditDeposit handles crediting a wallet balance. In production this is
// driven by the deposit queue; the endpoint exists for ops and local testing.
func CreditDeposit(c *gin.Context) {
	var req DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := Svc.CreditDeposit(req.Address, req.Amount); err != nil {
		renderError(c, err)
		return
	}

	balance, err := Svc.GetBalance(req.Address)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"address": req.Address, "balance": balance})
}

// GetBalance handles retrieving a wallet's lamport balance
func GetBalance(c *gin.Context) {
	address := c.Param("address")
	balance, err := Svc.GetBalance(address)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"address": address, "balance": balance})
}
