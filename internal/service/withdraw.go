package service

import (
	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"memelaunch/internal/engine"
	"memelaunch/internal/models"
	"memelaunch/pkg/solana"
)

// WithdrawBacking refunds a backer's full position from a failed meme.
// Idempotent in effect: the first call pays, every later call fails with
// BACKING_ALREADY_WITHDRAWN.
func (s *Service) WithdrawBacking(memeIndex uint64, backer string) (uint64, error) {
	if !solana.ValidAddress(backer) {
		return 0, engine.ErrInvalidAddress
	}

	var refunded uint64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		meme, err := loadMemeByIndex(forUpdate(tx), memeIndex)
		if err != nil {
			return err
		}
		switch meme.Status {
		case models.MemeStatusFailed:
		case models.MemeStatusProving:
			return engine.ErrProvingStillActive
		default:
			return engine.ErrAlreadyLaunched
		}

		backing, err := loadBacking(forUpdate(tx), meme.ID, backer)
		if err != nil {
			return err
		}
		if backing.Withdrawn {
			return engine.ErrBackingWithdrawn
		}
		if backing.Amount == 0 {
			return engine.ErrNoBackingFound
		}

		vaultAcct, err := loadAccount(forUpdate(tx), meme.VaultAddress)
		if err != nil {
			return err
		}
		backerAcct, err := ensureAccount(forUpdate(tx), backer, models.AccountKindWallet, 0)
		if err != nil {
			return err
		}

		amount := backing.Amount
		if vaultAcct.Balance < amount {
			return engine.ErrInsufficientVault
		}
		if err := transferLamports(tx, vaultAcct, backerAcct, amount); err != nil {
			return err
		}

		backing.Withdrawn = true
		backing.Amount = 0
		if err := tx.Save(backing).Error; err != nil {
			return err
		}

		refunded = amount
		logger.Infof("Meme %d refunded %d lamports to %s", meme.Index, amount, backer)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return refunded, nil
}
