package models

import (
	"time"
)

// GenesisPool tracks pro-rata fee distribution to a launched meme's original
// backers. Entitlements are computed on demand from two running totals, so
// claims stay O(1) regardless of backer count.
type GenesisPool struct {
	ID                    uint      `gorm:"primarykey" json:"id"`
	MemeID                uint      `gorm:"uniqueIndex;not null" json:"meme_id"`
	Address               string    `gorm:"size:44;uniqueIndex;not null" json:"address"`
	TotalQualifiedBacking uint64    `gorm:"not null" json:"total_qualified_backing"`
	TotalFees             uint64    `gorm:"not null;default:0" json:"total_fees"`
	TotalClaimed          uint64    `gorm:"not null;default:0" json:"total_claimed"`
	QualifiedBackerCount  uint32    `gorm:"not null;default:0" json:"qualified_backer_count"`
	CreatedAt             time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt             time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (GenesisPool) TableName() string {
	return "genesis_pools"
}
