// Package tokenledger is the token-issuance collaborator: fixed-supply mints
// and balance transfers over ledger rows. Minting is gated on the authority
// recorded at mint creation, so each curve can only issue its own token.
package tokenledger

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"memelaunch/internal/engine"
	"memelaunch/internal/models"
)

// locked selects rows FOR UPDATE so concurrent settlements in separate
// transactions serialize instead of clobbering each other's balances.
func locked(tx *gorm.DB) *gorm.DB {
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// CreateMint registers a new token for a meme. Authority is the only address
// allowed to mint afterwards.
func CreateMint(tx *gorm.DB, address string, memeID uint, authority string, decimals uint8) (*models.TokenMint, error) {
	mint := &models.TokenMint{
		Address:   address,
		MemeID:    memeID,
		Authority: authority,
		Supply:    0,
		Decimals:  decimals,
	}
	if err := tx.Create(mint).Error; err != nil {
		return nil, err
	}
	return mint, nil
}

// MintTo issues amount to owner. Fails unless authority matches the mint.
func MintTo(tx *gorm.DB, mintAddress, authority, owner string, amount uint64) error {
	var mint models.TokenMint
	if err := locked(tx).Where("address = ?", mintAddress).First(&mint).Error; err != nil {
		return err
	}
	if mint.Authority != authority {
		return engine.ErrUnauthorized
	}

	supply, err := engine.CheckedAdd(mint.Supply, amount)
	if err != nil {
		return err
	}

	if err := credit(tx, mintAddress, owner, amount); err != nil {
		return err
	}

	return tx.Model(&models.TokenMint{}).Where("address = ?", mintAddress).
		Update("supply", supply).Error
}

// Transfer moves amount between two owners of the same mint.
func Transfer(tx *gorm.DB, mintAddress, from, to string, amount uint64) error {
	var fromBal models.TokenBalance
	err := locked(tx).Where("mint = ? AND owner = ?", mintAddress, from).First(&fromBal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return engine.ErrInsufficientBalance
	}
	if err != nil {
		return err
	}
	if fromBal.Amount < amount {
		return engine.ErrInsufficientBalance
	}

	newFrom, err := engine.CheckedSub(fromBal.Amount, amount)
	if err != nil {
		return err
	}
	if err := tx.Model(&models.TokenBalance{}).Where("id = ?", fromBal.ID).
		Update("amount", newFrom).Error; err != nil {
		return err
	}

	return credit(tx, mintAddress, to, amount)
}

// BalanceOf returns owner's balance, zero if no row exists.
func BalanceOf(tx *gorm.DB, mintAddress, owner string) (uint64, error) {
	var bal models.TokenBalance
	err := tx.Where("mint = ? AND owner = ?", mintAddress, owner).First(&bal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return bal.Amount, nil
}

func credit(tx *gorm.DB, mintAddress, owner string, amount uint64) error {
	var bal models.TokenBalance
	err := locked(tx).Where("mint = ? AND owner = ?", mintAddress, owner).First(&bal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return tx.Create(&models.TokenBalance{
			Mint:   mintAddress,
			Owner:  owner,
			Amount: amount,
		}).Error
	}
	if err != nil {
		return err
	}

	newAmount, err := engine.CheckedAdd(bal.Amount, amount)
	if err != nil {
		return err
	}
	return tx.Model(&models.TokenBalance{}).Where("id = ?", bal.ID).
		Update("amount", newAmount).Error
}
