package service

import (
	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"memelaunch/internal/engine"
	"memelaunch/internal/models"
	"memelaunch/internal/tokenledger"
	"memelaunch/pkg/solana"
	"memelaunch/pkg/utils"
)

// TradeResult is what a settled buy or sell returns to the caller.
type TradeResult struct {
	MemeIndex   uint64 `json:"meme_index"`
	Side        string `json:"side"`
	SolAmount   uint64 `json:"sol_amount"`
	TokenAmount uint64 `json:"token_amount"`
	TradingFee  uint64 `json:"trading_fee"`
	PriceAfter  string `json:"price_after"`
	CurveStatus string `json:"curve_status"`
}

// BuyTokens spends solAmount lamports on the curve. The 1% fee comes off the
// top, the remainder is quoted through the constant product, and the trade
// aborts if the output lands under minTokensOut. Crossing the completion
// threshold freezes the curve for migration.
func (s *Service) BuyTokens(memeIndex uint64, buyer string, solAmount, minTokensOut uint64) (*TradeResult, error) {
	if !solana.ValidAddress(buyer) {
		return nil, engine.ErrInvalidAddress
	}
	if solAmount == 0 {
		return nil, engine.ErrZeroAmount
	}

	var result *TradeResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		meme, curve, err := tradableCurve(tx, memeIndex)
		if err != nil {
			return err
		}
		platform, err := loadPlatform(forUpdate(tx))
		if err != nil {
			return err
		}
		pool, err := loadGenesisPool(forUpdate(tx), meme.ID)
		if err != nil {
			return err
		}

		fee, err := engine.TradingFee(solAmount)
		if err != nil {
			return err
		}
		solAfterFee, err := engine.CheckedSub(solAmount, fee)
		if err != nil {
			return err
		}

		tokensOut, err := engine.CalculateBuyTokens(curve, solAfterFee)
		if err != nil {
			return err
		}
		if tokensOut == 0 {
			return engine.ErrInvalidTokenAmount
		}
		if tokensOut < minTokensOut {
			return engine.ErrSlippageExceeded
		}
		if tokensOut > curve.RealTokenReserves {
			return engine.ErrInsufficientTokens
		}

		genesisFee, platformFee, burnFee, err := engine.FeeSplit(platform, fee)
		if err != nil {
			return err
		}

		buyerAcct, err := ensureAccount(forUpdate(tx), buyer, models.AccountKindWallet, 0)
		if err != nil {
			return err
		}
		vaultAcct, err := loadAccount(forUpdate(tx), curve.VaultAddress)
		if err != nil {
			return err
		}
		authorityAcct, err := ensureAccount(forUpdate(tx), platform.Authority, models.AccountKindPlatform, 0)
		if err != nil {
			return err
		}

		// The vault keeps the genesis and burn shares alongside the curve
		// proceeds; only the platform share leaves.
		toVault, err := engine.CheckedSub(solAmount, platformFee)
		if err != nil {
			return err
		}
		if err := transferLamports(tx, buyerAcct, vaultAcct, toVault); err != nil {
			return err
		}
		if platformFee > 0 {
			if err := transferLamports(tx, buyerAcct, authorityAcct, platformFee); err != nil {
				return err
			}
		}

		if err := tokenledger.Transfer(tx, curve.Mint, curve.Address, buyer, tokensOut); err != nil {
			return err
		}

		engine.ApplyBuy(curve, solAfterFee, tokensOut)
		curve.GenesisFeesAccumulated = engine.SaturatingAdd(curve.GenesisFeesAccumulated, genesisFee)
		curve.PlatformFeesAccumulated = engine.SaturatingAdd(curve.PlatformFeesAccumulated, platformFee)
		curve.BurnFeesAccumulated = engine.SaturatingAdd(curve.BurnFeesAccumulated, burnFee)
		if curve.IsComplete() {
			curve.Status = models.CurveStatusComplete
		}
		if err := tx.Save(curve).Error; err != nil {
			return err
		}

		pool.TotalFees, err = engine.CheckedAdd(pool.TotalFees, genesisFee)
		if err != nil {
			return err
		}
		if err := tx.Save(pool).Error; err != nil {
			return err
		}

		platform.TotalPlatformFees, err = engine.CheckedAdd(platform.TotalPlatformFees, platformFee)
		if err != nil {
			return err
		}
		if err := tx.Save(platform).Error; err != nil {
			return err
		}

		priceAfter := utils.SpotPrice(curve.VirtualSolReserves, curve.VirtualTokenReserves).String()
		record := &models.TradeRecord{
			MemeID:      meme.ID,
			Trader:      buyer,
			Side:        models.TradeSideBuy,
			SolAmount:   solAmount,
			TokenAmount: tokensOut,
			TradingFee:  fee,
			GenesisFee:  genesisFee,
			PlatformFee: platformFee,
			BurnFee:     burnFee,
			PriceAfter:  priceAfter,
		}
		if err := tx.Create(record).Error; err != nil {
			return err
		}

		result = &TradeResult{
			MemeIndex:   meme.Index,
			Side:        models.TradeSideBuy,
			SolAmount:   solAmount,
			TokenAmount: tokensOut,
			TradingFee:  fee,
			PriceAfter:  priceAfter,
			CurveStatus: curve.Status,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Infof("Meme %d buy: %d lamports -> %d tokens by %s", result.MemeIndex, result.SolAmount, result.TokenAmount, buyer)
	s.publish(TopicTrades, TradeEvent{
		MemeIndex:   result.MemeIndex,
		Side:        result.Side,
		Trader:      buyer,
		SolAmount:   result.SolAmount,
		TokenAmount: result.TokenAmount,
		TradingFee:  result.TradingFee,
		PriceAfter:  result.PriceAfter,
		At:          s.now().Unix(),
	})
	return result, nil
}

// SellTokens sells tokenAmount back to the curve. The gross SOL output is
// quoted first, the 1% fee comes out of it, and the trade aborts if the net
// lands under minSolOut. Tokens settle into the curve before any SOL leaves
// the vault.
func (s *Service) SellTokens(memeIndex uint64, seller string, tokenAmount, minSolOut uint64) (*TradeResult, error) {
	if !solana.ValidAddress(seller) {
		return nil, engine.ErrInvalidAddress
	}
	if tokenAmount == 0 {
		return nil, engine.ErrZeroAmount
	}

	var result *TradeResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		meme, curve, err := tradableCurve(tx, memeIndex)
		if err != nil {
			return err
		}
		platform, err := loadPlatform(forUpdate(tx))
		if err != nil {
			return err
		}
		pool, err := loadGenesisPool(forUpdate(tx), meme.ID)
		if err != nil {
			return err
		}

		held, err := tokenledger.BalanceOf(tx, curve.Mint, seller)
		if err != nil {
			return err
		}
		if held < tokenAmount {
			return engine.ErrInsufficientTokens
		}

		grossSol, err := engine.CalculateSellSol(curve, tokenAmount)
		if err != nil {
			return err
		}
		if grossSol == 0 {
			return engine.ErrInvalidTokenAmount
		}
		if grossSol > curve.RealSolReserves {
			return engine.ErrInsufficientSol
		}

		fee, err := engine.TradingFee(grossSol)
		if err != nil {
			return err
		}
		netSol, err := engine.CheckedSub(grossSol, fee)
		if err != nil {
			return err
		}
		if netSol < minSolOut {
			return engine.ErrSlippageExceeded
		}

		genesisFee, platformFee, burnFee, err := engine.FeeSplit(platform, fee)
		if err != nil {
			return err
		}

		vaultAcct, err := loadAccount(forUpdate(tx), curve.VaultAddress)
		if err != nil {
			return err
		}
		sellerAcct, err := ensureAccount(forUpdate(tx), seller, models.AccountKindWallet, 0)
		if err != nil {
			return err
		}
		authorityAcct, err := ensureAccount(forUpdate(tx), platform.Authority, models.AccountKindPlatform, 0)
		if err != nil {
			return err
		}

		payout, err := engine.CheckedAdd(netSol, platformFee)
		if err != nil {
			return err
		}
		if vaultAcct.Balance < payout {
			return engine.ErrInsufficientVault
		}

		// Tokens in before SOL out.
		if err := tokenledger.Transfer(tx, curve.Mint, seller, curve.Address, tokenAmount); err != nil {
			return err
		}
		if err := transferLamports(tx, vaultAcct, sellerAcct, netSol); err != nil {
			return err
		}
		if platformFee > 0 {
			if err := transferLamports(tx, vaultAcct, authorityAcct, platformFee); err != nil {
				return err
			}
		}

		engine.ApplySell(curve, tokenAmount, grossSol)
		curve.GenesisFeesAccumulated = engine.SaturatingAdd(curve.GenesisFeesAccumulated, genesisFee)
		curve.PlatformFeesAccumulated = engine.SaturatingAdd(curve.PlatformFeesAccumulated, platformFee)
		curve.BurnFeesAccumulated = engine.SaturatingAdd(curve.BurnFeesAccumulated, burnFee)
		if err := tx.Save(curve).Error; err != nil {
			return err
		}

		pool.TotalFees, err = engine.CheckedAdd(pool.TotalFees, genesisFee)
		if err != nil {
			return err
		}
		if err := tx.Save(pool).Error; err != nil {
			return err
		}

		platform.TotalPlatformFees, err = engine.CheckedAdd(platform.TotalPlatformFees, platformFee)
		if err != nil {
			return err
		}
		if err := tx.Save(platform).Error; err != nil {
			return err
		}

		priceAfter := utils.SpotPrice(curve.VirtualSolReserves, curve.VirtualTokenReserves).String()
		record := &models.TradeRecord{
			MemeID:      meme.ID,
			Trader:      seller,
			Side:        models.TradeSideSell,
			SolAmount:   netSol,
			TokenAmount: tokenAmount,
			TradingFee:  fee,
			GenesisFee:  genesisFee,
			PlatformFee: platformFee,
			BurnFee:     burnFee,
			PriceAfter:  priceAfter,
		}
		if err := tx.Create(record).Error; err != nil {
			return err
		}

		result = &TradeResult{
			MemeIndex:   meme.Index,
			Side:        models.TradeSideSell,
			SolAmount:   netSol,
			TokenAmount: tokenAmount,
			TradingFee:  fee,
			PriceAfter:  priceAfter,
			CurveStatus: curve.Status,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Infof("Meme %d sell: %d tokens -> %d lamports by %s", result.MemeIndex, result.TokenAmount, result.SolAmount, seller)
	s.publish(TopicTrades, TradeEvent{
		MemeIndex:   result.MemeIndex,
		Side:        result.Side,
		Trader:      seller,
		SolAmount:   result.SolAmount,
		TokenAmount: result.TokenAmount,
		TradingFee:  result.TradingFee,
		PriceAfter:  result.PriceAfter,
		At:          s.now().Unix(),
	})
	return result, nil
}

// tradableCurve loads a launched meme and its still-active curve, locking
// both rows. The curve row lock also serializes concurrent token-balance
// settlement for the meme's mint.
func tradableCurve(tx *gorm.DB, memeIndex uint64) (*models.Meme, *models.BondingCurve, error) {
	meme, err := loadMemeByIndex(forUpdate(tx), memeIndex)
	if err != nil {
		return nil, nil, err
	}
	if meme.Status != models.MemeStatusLaunched {
		if meme.Status == models.MemeStatusMigrated {
			return nil, nil, engine.ErrAlreadyMigrated
		}
		return nil, nil, engine.ErrCurveNotActive
	}
	curve, err := loadCurve(forUpdate(tx), meme.ID)
	if err != nil {
		return nil, nil, err
	}
	if curve.Status != models.CurveStatusActive {
		return nil, nil, engine.ErrCurveCompleted
	}
	return meme, curve, nil
}
