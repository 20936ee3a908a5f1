package models

import (
	"time"
)

// Curve states. Complete and migrated are terminal for trading.
const (
	CurveStatusActive   = "active"
	CurveStatusComplete = "complete"
	CurveStatusMigrated = "migrated"
)

// BondingCurve is the constant-product market created at launch. Virtual
// reserves price the curve; real reserves are what the vault actually holds.
// The invariant virtual >= real holds on both sides because they always move
// by the same delta.
type BondingCurve struct {
	ID                      uint      `gorm:"primarykey" json:"id"`
	MemeID                  uint      `gorm:"uniqueIndex;not null" json:"meme_id"`
	Address                 string    `gorm:"size:44;uniqueIndex;not null" json:"address"`
	Mint                    string    `gorm:"size:44;not null" json:"mint"`
	VirtualSolReserves      uint64    `gorm:"not null" json:"virtual_sol_reserves"`
	VirtualTokenReserves    uint64    `gorm:"not null" json:"virtual_token_reserves"`
	RealSolReserves         uint64    `gorm:"not null;default:0" json:"real_sol_reserves"`
	RealTokenReserves       uint64    `gorm:"not null" json:"real_token_reserves"`
	TokensSold              uint64    `gorm:"not null;default:0" json:"tokens_sold"`
	TotalVolume             uint64    `gorm:"not null;default:0" json:"total_volume"`
	GenesisFeesAccumulated  uint64    `gorm:"not null;default:0" json:"genesis_fees_accumulated"`
	GenesisFeesDistributed  uint64    `gorm:"not null;default:0" json:"genesis_fees_distributed"`
	PlatformFeesAccumulated uint64    `gorm:"not null;default:0" json:"platform_fees_accumulated"`
	BurnFeesAccumulated     uint64    `gorm:"not null;default:0" json:"burn_fees_accumulated"`
	Status                  string    `gorm:"size:10;not null;default:'active'" json:"status"`
	CompletionThreshold     uint64    `gorm:"not null" json:"completion_threshold"`
	VaultAddress            string    `gorm:"size:44;not null" json:"vault_address"`
	CreatedAt               time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt               time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (BondingCurve) TableName() string {
	return "bonding_curves"
}

func (c *BondingCurve) IsComplete() bool {
	return c.RealSolReserves >= c.CompletionThreshold
}
