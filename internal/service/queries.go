package service

import (
	"memelaunch/internal/engine"
	"memelaunch/internal/models"
	"memelaunch/internal/tokenledger"
	"memelaunch/pkg/utils"
)

// The read surface. Everything here is a plain query; no state moves.

// ListMemes pages through memes, newest first, optionally filtered by status.
func (s *Service) ListMemes(status string, page, pageSize int) ([]models.Meme, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	query := s.db.Model(&models.Meme{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var memes []models.Meme
	err := query.Order("meme_index DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&memes).Error
	if err != nil {
		return nil, 0, err
	}
	return memes, total, nil
}

// GetMeme returns one meme by its global index.
func (s *Service) GetMeme(memeIndex uint64) (*models.Meme, error) {
	return loadMemeByIndex(s.db, memeIndex)
}

// MemeProgress is the proving-grounds view of a meme.
type MemeProgress struct {
	Meme            *models.Meme `json:"meme"`
	ProgressPercent string       `json:"progress_percent"`
	SolBackedSol    string       `json:"sol_backed_sol"`
	SolGoalSol      string       `json:"sol_goal_sol"`
	SecondsLeft     int64        `json:"seconds_left"`
}

// GetMemeProgress returns a meme with derived proving-grounds figures.
func (s *Service) GetMemeProgress(memeIndex uint64) (*MemeProgress, error) {
	meme, err := loadMemeByIndex(s.db, memeIndex)
	if err != nil {
		return nil, err
	}
	secondsLeft := meme.ProvingEndsAt - s.now().Unix()
	if secondsLeft < 0 || !meme.IsProving() {
		secondsLeft = 0
	}
	return &MemeProgress{
		Meme:            meme,
		ProgressPercent: utils.ProgressPercent(meme.SolBacked, meme.SolGoal).String(),
		SolBackedSol:    utils.LamportsToSol(meme.SolBacked).String(),
		SolGoalSol:      utils.LamportsToSol(meme.SolGoal).String(),
		SecondsLeft:     secondsLeft,
	}, nil
}

// BackingView is a backer's position on one meme, with live fee entitlement.
type BackingView struct {
	Backing      *models.Backing `json:"backing"`
	ClaimableNow uint64          `json:"claimable_now"`
}

// GetBacking returns a backer's position, including what they could claim
// from the genesis pool right now (zero before launch).
func (s *Service) GetBacking(memeIndex uint64, backer string) (*BackingView, error) {
	meme, err := loadMemeByIndex(s.db, memeIndex)
	if err != nil {
		return nil, err
	}
	backing, err := loadBacking(s.db, meme.ID, backer)
	if err != nil {
		return nil, err
	}

	view := &BackingView{Backing: backing}
	if (meme.Status == models.MemeStatusLaunched || meme.Status == models.MemeStatusMigrated) &&
		backing.QualifiesForFees && !backing.Withdrawn {
		pool, err := loadGenesisPool(s.db, meme.ID)
		if err != nil {
			return nil, err
		}
		claimable, err := engine.CalculateClaimable(pool, backing.Amount, backing.FeesClaimed)
		if err != nil {
			return nil, err
		}
		view.ClaimableNow = claimable
	}
	return view, nil
}

// CurveState is the market view of a launched meme.
type CurveState struct {
	Curve     *models.BondingCurve `json:"curve"`
	Pool      *models.GenesisPool  `json:"genesis_pool"`
	SpotPrice string               `json:"spot_price"` // SOL per whole token
}

// GetCurve returns the curve, its genesis pool and the marginal price.
func (s *Service) GetCurve(memeIndex uint64) (*CurveState, error) {
	meme, err := loadMemeByIndex(s.db, memeIndex)
	if err != nil {
		return nil, err
	}
	curve, err := loadCurve(s.db, meme.ID)
	if err != nil {
		return nil, err
	}
	pool, err := loadGenesisPool(s.db, meme.ID)
	if err != nil {
		return nil, err
	}
	return &CurveState{
		Curve:     curve,
		Pool:      pool,
		SpotPrice: utils.SpotPrice(curve.VirtualSolReserves, curve.VirtualTokenReserves).String(),
	}, nil
}

// Quote is a dry-run trade: same math as the real thing, no settlement.
type Quote struct {
	SolAmount   uint64 `json:"sol_amount"`
	TokenAmount uint64 `json:"token_amount"`
	TradingFee  uint64 `json:"trading_fee"`
	PriceAfter  string `json:"price_after"`
}

// QuoteBuy previews a buy of solAmount lamports.
func (s *Service) QuoteBuy(memeIndex uint64, solAmount uint64) (*Quote, error) {
	if solAmount == 0 {
		return nil, engine.ErrZeroAmount
	}
	_, curve, err := tradableCurve(s.db, memeIndex)
	if err != nil {
		return nil, err
	}

	fee, err := engine.TradingFee(solAmount)
	if err != nil {
		return nil, err
	}
	solAfterFee, err := engine.CheckedSub(solAmount, fee)
	if err != nil {
		return nil, err
	}
	tokensOut, err := engine.CalculateBuyTokens(curve, solAfterFee)
	if err != nil {
		return nil, err
	}

	after := *curve
	engine.ApplyBuy(&after, solAfterFee, tokensOut)
	return &Quote{
		SolAmount:   solAmount,
		TokenAmount: tokensOut,
		TradingFee:  fee,
		PriceAfter:  utils.SpotPrice(after.VirtualSolReserves, after.VirtualTokenReserves).String(),
	}, nil
}

// QuoteSell previews a sell of tokenAmount base units.
func (s *Service) QuoteSell(memeIndex uint64, tokenAmount uint64) (*Quote, error) {
	if tokenAmount == 0 {
		return nil, engine.ErrZeroAmount
	}
	_, curve, err := tradableCurve(s.db, memeIndex)
	if err != nil {
		return nil, err
	}

	grossSol, err := engine.CalculateSellSol(curve, tokenAmount)
	if err != nil {
		return nil, err
	}
	fee, err := engine.TradingFee(grossSol)
	if err != nil {
		return nil, err
	}
	netSol, err := engine.CheckedSub(grossSol, fee)
	if err != nil {
		return nil, err
	}

	after := *curve
	engine.ApplySell(&after, tokenAmount, grossSol)
	return &Quote{
		SolAmount:   netSol,
		TokenAmount: tokenAmount,
		TradingFee:  fee,
		PriceAfter:  utils.SpotPrice(after.VirtualSolReserves, after.VirtualTokenReserves).String(),
	}, nil
}

// ListTrades pages through a meme's trade history, newest first.
func (s *Service) ListTrades(memeIndex uint64, page, pageSize int) ([]models.TradeRecord, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	meme, err := loadMemeByIndex(s.db, memeIndex)
	if err != nil {
		return nil, 0, err
	}

	query := s.db.Model(&models.TradeRecord{}).Where("meme_id = ?", meme.ID)
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var trades []models.TradeRecord
	err = query.Order("id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&trades).Error
	if err != nil {
		return nil, 0, err
	}
	return trades, total, nil
}

// GetTokenBalance returns a holder's balance of a launched meme's token.
func (s *Service) GetTokenBalance(memeIndex uint64, owner string) (uint64, error) {
	meme, err := loadMemeByIndex(s.db, memeIndex)
	if err != nil {
		return 0, err
	}
	if meme.Mint == "" {
		return 0, nil
	}
	return tokenledger.BalanceOf(s.db, meme.Mint, owner)
}

// ExpiredProvingMemes returns indices of proving memes past their deadline,
// for the finalize sweep.
func (s *Service) ExpiredProvingMemes(limit int) ([]uint64, error) {
	if limit < 1 {
		limit = 50
	}
	var memes []models.Meme
	err := s.db.Model(&models.Meme{}).
		Where("status = ? AND proving_ends_at <= ?", models.MemeStatusProving, s.now().Unix()).
		Order("proving_ends_at ASC").
		Limit(limit).
		Find(&memes).Error
	if err != nil {
		return nil, err
	}
	indices := make([]uint64, 0, len(memes))
	for _, m := range memes {
		indices = append(indices, m.Index)
	}
	return indices, nil
}
