package models

import (
	"time"
)

// Meme lifecycle states. Transitions are one-way:
// proving -> launched -> migrated, or proving -> failed.
const (
	MemeStatusProving  = "proving"
	MemeStatusLaunched = "launched"
	MemeStatusFailed   = "failed"
	MemeStatusMigrated = "migrated"
)

// Meme is one project's crowdfunding record. Never deleted; failed and
// migrated memes stay as history.
type Meme struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	Index          uint64    `gorm:"column:meme_index;uniqueIndex;not null" json:"index"`
	Address        string    `gorm:"size:44;uniqueIndex;not null" json:"address"`
	Creator        string    `gorm:"size:44;not null;index" json:"creator"`
	Mint           string    `gorm:"size:44;default:''" json:"mint"` // set on launch
	Name           string    `gorm:"size:32;not null" json:"name"`
	Symbol         string    `gorm:"size:10;not null" json:"symbol"`
	URI            string    `gorm:"size:200;default:''" json:"uri"`
	Description    string    `gorm:"size:500;default:''" json:"description"`
	SolGoal        uint64    `gorm:"not null" json:"sol_goal"`
	SolBacked      uint64    `gorm:"not null;default:0" json:"sol_backed"`
	MinBackers     uint32    `gorm:"not null" json:"min_backers"`
	BackerCount    uint32    `gorm:"not null;default:0" json:"backer_count"`
	ProvingEndsAt  int64     `gorm:"not null" json:"proving_ends_at"`
	Status         string    `gorm:"size:10;not null;default:'proving';index" json:"status"`
	LaunchedAt     int64     `gorm:"default:0" json:"launched_at"`
	CreatorBacking uint64    `gorm:"not null;default:0" json:"creator_backing"`
	VaultAddress   string    `gorm:"size:44;not null" json:"vault_address"`
	CreatedAt      time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Meme) TableName() string {
	return "memes"
}

func (m *Meme) IsProving() bool {
	return m.Status == MemeStatusProving
}

func (m *Meme) IsLaunched() bool {
	return m.Status == MemeStatusLaunched
}

// GoalReached requires both the SOL goal and the unique-backer quorum.
func (m *Meme) GoalReached() bool {
	return m.SolBacked >= m.SolGoal && m.BackerCount >= m.MinBackers
}
