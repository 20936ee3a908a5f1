package models

import (
	"time"
)

const (
	TradeSideBuy  = "buy"
	TradeSideSell = "sell"
)

// TradeRecord is the audit row written after every settled trade.
type TradeRecord struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	MemeID      uint      `gorm:"not null;index" json:"meme_id"`
	Trader      string    `gorm:"size:44;not null;index" json:"trader"`
	Side        string    `gorm:"size:4;not null" json:"side"`
	SolAmount   uint64    `gorm:"not null" json:"sol_amount"`
	TokenAmount uint64    `gorm:"not null" json:"token_amount"`
	TradingFee  uint64    `gorm:"not null" json:"trading_fee"`
	GenesisFee  uint64    `gorm:"not null" json:"genesis_fee"`
	PlatformFee uint64    `gorm:"not null" json:"platform_fee"`
	BurnFee     uint64    `gorm:"not null" json:"burn_fee"`
	PriceAfter  string    `gorm:"size:32;default:''" json:"price_after"` // decimal string, lamports per whole token
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (TradeRecord) TableName() string {
	return "trade_records"
}

// FeeClaimRecord is the audit row for a genesis fee claim.
type FeeClaimRecord struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	MemeID    uint      `gorm:"not null;index" json:"meme_id"`
	Backer    string    `gorm:"size:44;not null;index" json:"backer"`
	Amount    uint64    `gorm:"not null" json:"amount"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (FeeClaimRecord) TableName() string {
	return "fee_claim_records"
}
