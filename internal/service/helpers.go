package service

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"memelaunch/internal/engine"
	"memelaunch/internal/models"
)

// forUpdate locks the selected rows until the surrounding transaction
// commits. Every row a write path mutates must be loaded through this, or
// two concurrent transactions on postgres can both read the same snapshot
// and overwrite each other's updates. SQLite serializes writers anyway and
// its driver drops the clause. The Session keeps the locking clause but
// gives every chained call on the returned handle its own statement, so an
// ErrRecordNotFound from one query does not leak into the next (e.g. the
// Create after a missed First in ensureAccount).
func forUpdate(tx *gorm.DB) *gorm.DB {
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).Session(&gorm.Session{})
}

func loadMemeByIndex(tx *gorm.DB, index uint64) (*models.Meme, error) {
	var meme models.Meme
	err := tx.Where("meme_index = ?", index).First(&meme).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, engine.ErrMemeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &meme, nil
}

func loadCurve(tx *gorm.DB, memeID uint) (*models.BondingCurve, error) {
	var curve models.BondingCurve
	err := tx.Where("meme_id = ?", memeID).First(&curve).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, engine.ErrCurveNotActive
	}
	if err != nil {
		return nil, err
	}
	return &curve, nil
}

func loadGenesisPool(tx *gorm.DB, memeID uint) (*models.GenesisPool, error) {
	var pool models.GenesisPool
	err := tx.Where("meme_id = ?", memeID).First(&pool).Error
	if err != nil {
		return nil, err
	}
	return &pool, nil
}

func loadBacking(tx *gorm.DB, memeID uint, backer string) (*models.Backing, error) {
	var backing models.Backing
	err := tx.Where("meme_id = ? AND backer = ?", memeID, backer).First(&backing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, engine.ErrNoBackingFound
	}
	if err != nil {
		return nil, err
	}
	return &backing, nil
}

func loadAccount(tx *gorm.DB, address string) (*models.LamportAccount, error) {
	var acct models.LamportAccount
	err := tx.Where("address = ?", address).First(&acct).Error
	if err != nil {
		return nil, err
	}
	return &acct, nil
}
