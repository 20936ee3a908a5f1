package models

import (
	"time"
)

// PlatformConfig is the singleton platform parameter set. Every operation
// that routes fees reads it; only the admin mutates it.
type PlatformConfig struct {
	ID                  uint      `gorm:"primarykey" json:"id"`
	Authority           string    `gorm:"size:44;not null" json:"authority"`
	SubmissionFee       uint64    `gorm:"not null;default:0" json:"submission_fee"`
	PlatformFeeBps      uint16    `gorm:"not null" json:"platform_fee_bps"`
	GenesisFeeBps       uint16    `gorm:"not null" json:"genesis_fee_bps"`
	BurnFeeBps          uint16    `gorm:"not null" json:"burn_fee_bps"`
	TotalMemesSubmitted uint64    `gorm:"not null;default:0" json:"total_memes_submitted"`
	TotalMemesLaunched  uint64    `gorm:"not null;default:0" json:"total_memes_launched"`
	TotalPlatformFees   uint64    `gorm:"not null;default:0" json:"total_platform_fees"`
	CreatedAt           time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt           time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (PlatformConfig) TableName() string {
	return "platform_config"
}
