package models

import (
	"time"
)

// Account kinds. Vaults are derived escrow addresses owned by the engine;
// wallets belong to external users and are credited by the deposit watcher.
const (
	AccountKindWallet     = "wallet"
	AccountKindMemeVault  = "meme_vault"
	AccountKindCurveVault = "curve_vault"
	AccountKindPlatform   = "platform"
)

// LamportAccount is an addressable lamport balance. All transfers debit and
// credit rows of this table inside one transaction.
type LamportAccount struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Address   string    `gorm:"size:44;uniqueIndex;not null" json:"address"`
	Kind      string    `gorm:"size:16;not null;default:'wallet'" json:"kind"`
	MemeID    uint      `gorm:"default:0;index" json:"meme_id"`
	Balance   uint64    `gorm:"not null;default:0" json:"balance"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (LamportAccount) TableName() string {
	return "lamport_accounts"
}
