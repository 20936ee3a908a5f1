package service

import (
	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"memelaunch/internal/engine"
	"memelaunch/internal/models"
	"memelaunch/pkg/solana"
)

// ClaimGenesisFees pays a genesis backer their accrued pro-rata share of
// trading fees. Claims stay open after migration; the pool simply stops
// growing once the curve is retired.
func (s *Service) ClaimGenesisFees(memeIndex uint64, backer string) (uint64, error) {
	if !solana.ValidAddress(backer) {
		return 0, engine.ErrInvalidAddress
	}

	var claimed uint64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		meme, err := loadMemeByIndex(forUpdate(tx), memeIndex)
		if err != nil {
			return err
		}
		if meme.Status != models.MemeStatusLaunched && meme.Status != models.MemeStatusMigrated {
			return engine.ErrCurveNotActive
		}

		backing, err := loadBacking(forUpdate(tx), meme.ID, backer)
		if err != nil {
			return err
		}
		if backing.Withdrawn {
			return engine.ErrNotGenesisBacker
		}
		if !backing.QualifiesForFees {
			return engine.ErrNotGenesisBacker
		}

		pool, err := loadGenesisPool(forUpdate(tx), meme.ID)
		if err != nil {
			return err
		}
		curve, err := loadCurve(forUpdate(tx), meme.ID)
		if err != nil {
			return err
		}

		claimable, err := engine.CalculateClaimable(pool, backing.Amount, backing.FeesClaimed)
		if err != nil {
			return err
		}
		if claimable == 0 {
			return engine.ErrNoFeesToClaim
		}

		vaultAcct, err := loadAccount(forUpdate(tx), curve.VaultAddress)
		if err != nil {
			return err
		}
		if vaultAcct.Balance < claimable {
			return engine.ErrInsufficientVault
		}
		backerAcct, err := ensureAccount(forUpdate(tx), backer, models.AccountKindWallet, 0)
		if err != nil {
			return err
		}
		if err := transferLamports(tx, vaultAcct, backerAcct, claimable); err != nil {
			return err
		}

		backing.FeesClaimed, err = engine.CheckedAdd(backing.FeesClaimed, claimable)
		if err != nil {
			return err
		}
		if err := tx.Save(backing).Error; err != nil {
			return err
		}

		pool.TotalClaimed, err = engine.CheckedAdd(pool.TotalClaimed, claimable)
		if err != nil {
			return err
		}
		if err := tx.Save(pool).Error; err != nil {
			return err
		}

		curve.GenesisFeesDistributed = engine.SaturatingAdd(curve.GenesisFeesDistributed, claimable)
		if err := tx.Save(curve).Error; err != nil {
			return err
		}

		record := &models.FeeClaimRecord{
			MemeID: meme.ID,
			Backer: backer,
			Amount: claimable,
		}
		if err := tx.Create(record).Error; err != nil {
			return err
		}

		claimed = claimable
		logger.Infof("Meme %d genesis claim: %d lamports to %s", meme.Index, claimable, backer)
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.publish(TopicTrades, ClaimEvent{
		MemeIndex: memeIndex,
		Backer:    backer,
		Amount:    claimed,
		At:        s.now().Unix(),
	})
	return claimed, nil
}
