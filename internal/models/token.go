package models

import (
	"time"
)

// TokenMint is one launched meme's token. Only the curve authority recorded
// here may mint; supply is fixed at launch.
type TokenMint struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Address   string    `gorm:"size:44;uniqueIndex;not null" json:"address"`
	MemeID    uint      `gorm:"uniqueIndex;not null" json:"meme_id"`
	Authority string    `gorm:"size:44;not null" json:"authority"`
	Supply    uint64    `gorm:"not null;default:0" json:"supply"`
	Decimals  uint8     `gorm:"not null" json:"decimals"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (TokenMint) TableName() string {
	return "token_mints"
}

// TokenBalance is one owner's balance of one mint.
type TokenBalance struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Mint      string    `gorm:"size:44;not null;index:idx_token_mint_owner,unique" json:"mint"`
	Owner     string    `gorm:"size:44;not null;index:idx_token_mint_owner,unique" json:"owner"`
	Amount    uint64    `gorm:"not null;default:0" json:"amount"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (TokenBalance) TableName() string {
	return "token_balances"
}
