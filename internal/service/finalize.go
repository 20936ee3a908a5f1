package service

import (
	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"memelaunch/internal/engine"
	"memelaunch/internal/models"
	"memelaunch/internal/tokenledger"
	"memelaunch/pkg/solana"
)

// FinalizeProving launches a meme whose proving period has ended with both
// the SOL goal and the backer quorum met. Launch is the only place token
// issuance happens: 80% of supply is minted into the curve, the remaining
// 20% is realized through the genesis fee stream rather than an airdrop.
func (s *Service) FinalizeProving(memeIndex uint64) (*models.Meme, error) {
	var meme *models.Meme
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		meme, err = s.provenMeme(tx, memeIndex)
		if err != nil {
			return err
		}
		if !meme.GoalReached() {
			return engine.ErrGoalNotReached
		}

		platform, err := loadPlatform(forUpdate(tx))
		if err != nil {
			return err
		}

		_, curveTokens, err := engine.CurveTokenAllocation()
		if err != nil {
			return err
		}

		now := s.now().Unix()
		mintAddress := solana.MintAddress(meme.Address)
		curveAddress := solana.CurveAddress(meme.Address)

		meme.Mint = mintAddress
		meme.Status = models.MemeStatusLaunched
		meme.LaunchedAt = now

		curve := &models.BondingCurve{
			MemeID:               meme.ID,
			Address:              curveAddress,
			Mint:                 mintAddress,
			VirtualSolReserves:   engine.InitialVirtualSol,
			VirtualTokenReserves: curveTokens,
			RealTokenReserves:    curveTokens,
			Status:               models.CurveStatusActive,
			CompletionThreshold:  engine.CurveCompletionSol,
			VaultAddress:         solana.CurveVaultAddress(meme.Address),
		}
		if err := tx.Create(curve).Error; err != nil {
			return err
		}
		if _, err := ensureAccount(tx, curve.VaultAddress, models.AccountKindCurveVault, meme.ID); err != nil {
			return err
		}

		pool := &models.GenesisPool{
			MemeID:                meme.ID,
			Address:               solana.GenesisPoolAddress(meme.Address),
			TotalQualifiedBacking: meme.SolBacked,
			QualifiedBackerCount:  meme.BackerCount,
		}
		if err := tx.Create(pool).Error; err != nil {
			return err
		}

		// Mint capability is scoped to the curve itself.
		if _, err := tokenledger.CreateMint(tx, mintAddress, meme.ID, curveAddress, engine.TokenDecimals); err != nil {
			return err
		}
		if err := tokenledger.MintTo(tx, mintAddress, curveAddress, curveAddress, curveTokens); err != nil {
			return err
		}

		platform.TotalMemesLaunched, err = engine.CheckedAdd(platform.TotalMemesLaunched, 1)
		if err != nil {
			return err
		}
		if err := tx.Save(platform).Error; err != nil {
			return err
		}
		return tx.Save(meme).Error
	})
	if err != nil {
		return nil, err
	}

	logger.Infof("Meme %d (%s) launched: %d lamports from %d backers", meme.Index, meme.Symbol, meme.SolBacked, meme.BackerCount)
	s.publish(TopicLifecycle, LifecycleEvent{MemeIndex: meme.Index, Status: meme.Status, At: meme.LaunchedAt})
	return meme, nil
}

// MarkMemeFailed flags an expired meme that missed its goal or quorum,
// opening refunds. Callable by anyone, like FinalizeProving.
func (s *Service) MarkMemeFailed(memeIndex uint64) (*models.Meme, error) {
	var meme *models.Meme
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		meme, err = s.provenMeme(tx, memeIndex)
		if err != nil {
			return err
		}
		if meme.GoalReached() {
			return engine.ErrGoalAlreadyReached
		}
		meme.Status = models.MemeStatusFailed
		return tx.Save(meme).Error
	})
	if err != nil {
		return nil, err
	}

	logger.Infof("Meme %d failed proving: %d/%d lamports, %d/%d backers", meme.Index, meme.SolBacked, meme.SolGoal, meme.BackerCount, meme.MinBackers)
	s.publish(TopicLifecycle, LifecycleEvent{MemeIndex: meme.Index, Status: meme.Status, At: s.now().Unix()})
	return meme, nil
}

// EvaluateAndFinalize picks launch or failure from the frozen totals. This
// is the single finalize contract the HTTP layer and the worker use.
func (s *Service) EvaluateAndFinalize(memeIndex uint64) (*models.Meme, error) {
	meme, err := s.GetMeme(memeIndex)
	if err != nil {
		return nil, err
	}
	if meme.GoalReached() {
		return s.FinalizeProving(memeIndex)
	}
	return s.MarkMemeFailed(memeIndex)
}

// provenMeme loads a meme for finalization, locked, and checks it is
// proving and past its deadline.
func (s *Service) provenMeme(tx *gorm.DB, memeIndex uint64) (*models.Meme, error) {
	meme, err := loadMemeByIndex(forUpdate(tx), memeIndex)
	if err != nil {
		return nil, err
	}
	switch meme.Status {
	case models.MemeStatusProving:
	case models.MemeStatusFailed:
		return nil, engine.ErrAlreadyFailed
	default:
		return nil, engine.ErrAlreadyLaunched
	}
	if s.now().Unix() < meme.ProvingEndsAt {
		return nil, engine.ErrProvingStillActive
	}
	return meme, nil
}
