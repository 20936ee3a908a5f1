package service

import (
	"errors"

	"gorm.io/gorm"

	"memelaunch/internal/engine"
	"memelaunch/internal/models"
	"memelaunch/pkg/solana"
)

// InitializePlatform creates the singleton platform record. Re-running with
// the same authority updates the fee parameters; any other caller is
// rejected.
func (s *Service) InitializePlatform(authority string, submissionFee uint64, platformBps, genesisBps, burnBps uint16) (*models.PlatformConfig, error) {
	if !solana.ValidAddress(authority) {
		return nil, engine.ErrInvalidAddress
	}
	if err := engine.ValidateFeeSplits(platformBps, genesisBps, burnBps); err != nil {
		return nil, err
	}

	var cfg models.PlatformConfig
	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := forUpdate(tx).First(&cfg).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			cfg = models.PlatformConfig{
				Authority:      authority,
				SubmissionFee:  submissionFee,
				PlatformFeeBps: platformBps,
				GenesisFeeBps:  genesisBps,
				BurnFeeBps:     burnBps,
			}
			if err := tx.Create(&cfg).Error; err != nil {
				return err
			}
			// The authority's fee-recipient account exists from day one.
			_, err := ensureAccount(tx, authority, models.AccountKindPlatform, 0)
			return err
		}
		if err != nil {
			return err
		}
		if cfg.Authority != authority {
			return engine.ErrUnauthorized
		}
		cfg.SubmissionFee = submissionFee
		cfg.PlatformFeeBps = platformBps
		cfg.GenesisFeeBps = genesisBps
		cfg.BurnFeeBps = burnBps
		return tx.Save(&cfg).Error
	})
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// GetPlatform returns the platform record and its counters.
func (s *Service) GetPlatform() (*models.PlatformConfig, error) {
	var cfg models.PlatformConfig
	err := s.db.First(&cfg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, engine.ErrPlatformNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadPlatform(tx *gorm.DB) (*models.PlatformConfig, error) {
	var cfg models.PlatformConfig
	err := tx.First(&cfg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, engine.ErrPlatformNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}
