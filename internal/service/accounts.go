package service

import (
	"errors"

	"gorm.io/gorm"

	"memelaunch/internal/engine"
	"memelaunch/internal/models"
	"memelaunch/pkg/solana"
)

// ensureAccount loads an account row, creating it with zero balance if it
// does not exist yet.
func ensureAccount(tx *gorm.DB, address, kind string, memeID uint) (*models.LamportAccount, error) {
	var acct models.LamportAccount
	err := tx.Where("address = ?", address).First(&acct).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		acct = models.LamportAccount{
			Address: address,
			Kind:    kind,
			MemeID:  memeID,
		}
		if err := tx.Create(&acct).Error; err != nil {
			return nil, err
		}
		return &acct, nil
	}
	if err != nil {
		return nil, err
	}
	return &acct, nil
}

// transferLamports moves amount between two accounts inside the caller's
// transaction: balance check first, then debit and credit as one step.
func transferLamports(tx *gorm.DB, from *models.LamportAccount, to *models.LamportAccount, amount uint64) error {
	if from.Balance < amount {
		if from.Kind == models.AccountKindWallet {
			return engine.ErrInsufficientBalance
		}
		return engine.ErrInsufficientVault
	}

	newFrom, err := engine.CheckedSub(from.Balance, amount)
	if err != nil {
		return err
	}
	newTo, err := engine.CheckedAdd(to.Balance, amount)
	if err != nil {
		return err
	}

	if err := tx.Model(&models.LamportAccount{}).Where("id = ?", from.ID).
		Update("balance", newFrom).Error; err != nil {
		return err
	}
	if err := tx.Model(&models.LamportAccount{}).Where("id = ?", to.ID).
		Update("balance", newTo).Error; err != nil {
		return err
	}

	from.Balance = newFrom
	to.Balance = newTo
	return nil
}

// CreditDeposit credits a wallet. Called by the worker when the deposit
// watcher reports an inbound transfer; also the test fixture faucet.
func (s *Service) CreditDeposit(address string, amount uint64) error {
	if !solana.ValidAddress(address) {
		return engine.ErrInvalidAddress
	}
	if amount == 0 {
		return engine.ErrZeroAmount
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		acct, err := ensureAccount(forUpdate(tx), address, models.AccountKindWallet, 0)
		if err != nil {
			return err
		}
		balance, err := engine.CheckedAdd(acct.Balance, amount)
		if err != nil {
			return err
		}
		return tx.Model(&models.LamportAccount{}).Where("id = ?", acct.ID).
			Update("balance", balance).Error
	})
}

// GetBalance returns an address's lamport balance, zero if unknown.
func (s *Service) GetBalance(address string) (uint64, error) {
	var acct models.LamportAccount
	err := s.db.Where("address = ?", address).First(&acct).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return acct.Balance, nil
}
