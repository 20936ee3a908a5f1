package service

import (
	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"memelaunch/internal/engine"
	"memelaunch/internal/models"
	"memelaunch/pkg/solana"
)

// SubmitMeme opens a new proving-grounds campaign. The creator pays the
// flat submission fee, the meme gets the next global index and a fresh
// backing vault, and proving runs until created_at + duration.
func (s *Service) SubmitMeme(creator string, p engine.SubmissionParams) (*models.Meme, error) {
	if !solana.ValidAddress(creator) {
		return nil, engine.ErrInvalidAddress
	}
	if err := engine.ValidateSubmission(p); err != nil {
		return nil, err
	}

	var meme *models.Meme
	err := s.db.Transaction(func(tx *gorm.DB) error {
		platform, err := loadPlatform(forUpdate(tx))
		if err != nil {
			return err
		}

		if platform.SubmissionFee > 0 {
			creatorAcct, err := ensureAccount(forUpdate(tx), creator, models.AccountKindWallet, 0)
			if err != nil {
				return err
			}
			authorityAcct, err := ensureAccount(forUpdate(tx), platform.Authority, models.AccountKindPlatform, 0)
			if err != nil {
				return err
			}
			if err := transferLamports(tx, creatorAcct, authorityAcct, platform.SubmissionFee); err != nil {
				return err
			}
			platform.TotalPlatformFees, err = engine.CheckedAdd(platform.TotalPlatformFees, platform.SubmissionFee)
			if err != nil {
				return err
			}
		}

		index := platform.TotalMemesSubmitted
		memeAddress := solana.MemeAddress(index)
		now := s.now().Unix()

		provingEndsAt, err := engine.CheckedAdd(uint64(now), uint64(p.DurationSeconds))
		if err != nil {
			return err
		}

		meme = &models.Meme{
			Index:         index,
			Address:       memeAddress,
			Creator:       creator,
			Name:          p.Name,
			Symbol:        p.Symbol,
			URI:           p.URI,
			Description:   p.Description,
			SolGoal:       p.SolGoal,
			MinBackers:    p.MinBackers,
			ProvingEndsAt: int64(provingEndsAt),
			Status:        models.MemeStatusProving,
			VaultAddress:  solana.VaultAddress(memeAddress),
		}
		if err := tx.Create(meme).Error; err != nil {
			return err
		}

		if _, err := ensureAccount(tx, meme.VaultAddress, models.AccountKindMemeVault, meme.ID); err != nil {
			return err
		}

		platform.TotalMemesSubmitted, err = engine.CheckedAdd(platform.TotalMemesSubmitted, 1)
		if err != nil {
			return err
		}
		return tx.Save(platform).Error
	})
	if err != nil {
		return nil, err
	}

	logger.Infof("Meme %d (%s) submitted to proving grounds, goal %d lamports, min backers %d",
		meme.Index, meme.Symbol, meme.SolGoal, meme.MinBackers)
	s.publish(TopicLifecycle, LifecycleEvent{
		MemeIndex: meme.Index,
		Status:    meme.Status,
		At:        s.now().Unix(),
	})
	return meme, nil
}
