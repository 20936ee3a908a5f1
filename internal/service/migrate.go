package service

import (
	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"memelaunch/internal/engine"
	"memelaunch/internal/models"
)

// MigrateToAmm retires a completed curve: the migration fee goes to the
// platform and both meme and curve move to their terminal migrated state.
// The external AMM pool seeding happens off this ledger; genesis fee claims
// against the accrued pool stay open.
func (s *Service) MigrateToAmm(memeIndex uint64) (*models.Meme, error) {
	var meme *models.Meme
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		meme, err = loadMemeByIndex(forUpdate(tx), memeIndex)
		if err != nil {
			return err
		}
		switch meme.Status {
		case models.MemeStatusLaunched:
		case models.MemeStatusMigrated:
			return engine.ErrAlreadyMigrated
		default:
			return engine.ErrCurveNotActive
		}

		curve, err := loadCurve(forUpdate(tx), meme.ID)
		if err != nil {
			return err
		}
		if curve.Status != models.CurveStatusComplete {
			return engine.ErrCurveNotComplete
		}

		platform, err := loadPlatform(forUpdate(tx))
		if err != nil {
			return err
		}
		vaultAcct, err := loadAccount(forUpdate(tx), curve.VaultAddress)
		if err != nil {
			return err
		}
		if vaultAcct.Balance < engine.MigrationFee {
			return engine.ErrInsufficientVault
		}
		authorityAcct, err := ensureAccount(forUpdate(tx), platform.Authority, models.AccountKindPlatform, 0)
		if err != nil {
			return err
		}
		if err := transferLamports(tx, vaultAcct, authorityAcct, engine.MigrationFee); err != nil {
			return err
		}

		platform.TotalPlatformFees, err = engine.CheckedAdd(platform.TotalPlatformFees, engine.MigrationFee)
		if err != nil {
			return err
		}
		if err := tx.Save(platform).Error; err != nil {
			return err
		}

		curve.Status = models.CurveStatusMigrated
		if err := tx.Save(curve).Error; err != nil {
			return err
		}

		meme.Status = models.MemeStatusMigrated
		return tx.Save(meme).Error
	})
	if err != nil {
		return nil, err
	}

	logger.Infof("Meme %d (%s) migrated to AMM", meme.Index, meme.Symbol)
	s.publish(TopicLifecycle, LifecycleEvent{MemeIndex: meme.Index, Status: meme.Status, At: s.now().Unix()})
	return meme, nil
}
