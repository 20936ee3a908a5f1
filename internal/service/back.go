package service

import (
	"errors"

	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"memelaunch/internal/engine"
	"memelaunch/internal/models"
	"memelaunch/pkg/solana"
)

// BackMeme pledges amount to a proving meme. First-time backings must meet
// the fee-eligibility minimum; top-ups may be any size. The cumulative
// position can never exceed 10% of the goal.
func (s *Service) BackMeme(memeIndex uint64, backer string, amount uint64) (*models.Backing, error) {
	if !solana.ValidAddress(backer) {
		return nil, engine.ErrInvalidAddress
	}
	if amount == 0 {
		return nil, engine.ErrZeroAmount
	}

	var backing *models.Backing
	err := s.db.Transaction(func(tx *gorm.DB) error {
		meme, err := loadMemeByIndex(forUpdate(tx), memeIndex)
		if err != nil {
			return err
		}
		switch meme.Status {
		case models.MemeStatusProving:
		case models.MemeStatusFailed:
			return engine.ErrAlreadyFailed
		default:
			return engine.ErrAlreadyLaunched
		}

		now := s.now().Unix()
		if now >= meme.ProvingEndsAt {
			return engine.ErrProvingEnded
		}

		var existing models.Backing
		err = forUpdate(tx).Where("meme_id = ? AND backer = ?", meme.ID, backer).First(&existing).Error
		isNew := errors.Is(err, gorm.ErrRecordNotFound)
		if err != nil && !isNew {
			return err
		}

		// Only the initial commitment is gated by the minimum; top-ups of
		// any size are allowed.
		if isNew && amount < engine.MinBackingAmount {
			return engine.ErrBackingTooLow
		}

		newTotal, err := engine.CheckedAdd(existing.Amount, amount)
		if err != nil {
			return err
		}

		maxBacking, err := engine.MaxBackingFor(meme.SolGoal)
		if err != nil {
			return err
		}
		if newTotal > maxBacking {
			return engine.ErrBackingExceedsMax
		}

		backerAcct, err := ensureAccount(forUpdate(tx), backer, models.AccountKindWallet, 0)
		if err != nil {
			return err
		}
		vaultAcct, err := loadAccount(forUpdate(tx), meme.VaultAddress)
		if err != nil {
			return err
		}
		if err := transferLamports(tx, backerAcct, vaultAcct, amount); err != nil {
			return err
		}

		if isNew {
			existing = models.Backing{
				Address:  solana.BackingAddress(meme.Address, backer),
				MemeID:   meme.ID,
				Backer:   backer,
				BackedAt: now,
			}
			meme.BackerCount, err = checkedAddU32(meme.BackerCount, 1)
			if err != nil {
				return err
			}
		}

		existing.Amount = newTotal
		existing.QualifiesForFees = newTotal >= engine.MinBackingAmount
		if err := tx.Save(&existing).Error; err != nil {
			return err
		}

		meme.SolBacked, err = engine.CheckedAdd(meme.SolBacked, amount)
		if err != nil {
			return err
		}
		if backer == meme.Creator {
			meme.CreatorBacking = newTotal
		}
		if err := tx.Save(meme).Error; err != nil {
			return err
		}

		backing = &existing
		logger.Infof("Meme %d backed with %d lamports by %s (progress %d/%d, backers %d/%d)",
			meme.Index, amount, backer, meme.SolBacked, meme.SolGoal, meme.BackerCount, meme.MinBackers)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return backing, nil
}

func checkedAddU32(a, b uint32) (uint32, error) {
	if a > ^uint32(0)-b {
		return 0, engine.ErrMathOverflow
	}
	return a + b, nil
}
