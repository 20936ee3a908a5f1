package models

import (
	"time"
)

// Backing is one backer's cumulative position in one meme. Created lazily on
// first backing, topped up while proving, zeroed (not deleted) on refund.
type Backing struct {
	ID              uint      `gorm:"primarykey" json:"id"`
	Address         string    `gorm:"size:44;uniqueIndex;not null" json:"address"`
	MemeID          uint      `gorm:"not null;index:idx_backing_meme_backer,unique" json:"meme_id"`
	Backer          string    `gorm:"size:44;not null;index:idx_backing_meme_backer,unique" json:"backer"`
	Amount          uint64    `gorm:"not null;default:0" json:"amount"`
	QualifiesForFees bool     `gorm:"not null;default:false" json:"qualifies_for_fees"`
	BackedAt        int64     `gorm:"not null" json:"backed_at"`
	Withdrawn       bool      `gorm:"not null;default:false" json:"withdrawn"`
	TokensReceived  uint64    `gorm:"not null;default:0" json:"tokens_received"`
	FeesClaimed     uint64    `gorm:"not null;default:0" json:"fees_claimed"`
	CreatedAt       time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Backing) TableName() string {
	return "backings"
}
