package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"memelaunch/internal/engine"
	"memelaunch/internal/models"
	"memelaunch/pkg/config"
	"memelaunch/pkg/solana"
)

const (
	testSubmissionFee = 100_000_000 // 0.1 SOL
	oneSol            = 1_000_000_000
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time        { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// testWallet derives a distinct valid base58 address per index.
func testWallet(i int) string {
	return solana.DeriveAddress([]byte("test_wallet"), []byte(fmt.Sprintf("%d", i)))
}

var testAuthority = solana.DeriveAddress([]byte("test_authority"))

func newTestService(t *testing.T) (*Service, *fakeClock) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, config.AutoMigrate(db))

	clk := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	svc := New(db, WithClock(clk.Now))

	_, err = svc.InitializePlatform(testAuthority, testSubmissionFee,
		engine.DefaultPlatformBps, engine.DefaultGenesisBps, engine.DefaultBurnBps)
	require.NoError(t, err)
	return svc, clk
}

func fundedWallet(t *testing.T, s *Service, i int, lamports uint64) string {
	t.Helper()
	addr := testWallet(i)
	require.NoError(t, s.CreditDeposit(addr, lamports))
	return addr
}

func submitTestMeme(t *testing.T, s *Service, creator string) *models.Meme {
	t.Helper()
	meme, err := s.SubmitMeme(creator, engine.SubmissionParams{
		Name:            "Proof of Doge",
		Symbol:          "PDOGE",
		SolGoal:         20 * oneSol,
		MinBackers:      30,
		DurationSeconds: 3 * 24 * 60 * 60,
	})
	require.NoError(t, err)
	return meme
}

// launchTestMeme drives a meme through proving with 30 qualifying backers
// and finalizes it. Wallet indices 100..129 are the backers.
func launchTestMeme(t *testing.T, s *Service, clk *fakeClock) *models.Meme {
	t.Helper()
	creator := fundedWallet(t, s, 1, 10*oneSol)
	meme := submitTestMeme(t, s, creator)
	for i := 0; i < 30; i++ {
		backer := fundedWallet(t, s, 100+i, oneSol)
		_, err := s.BackMeme(meme.Index, backer, 667_000_000)
		require.NoError(t, err)
	}
	clk.Advance(4 * 24 * time.Hour)
	launched, err := s.FinalizeProving(meme.Index)
	require.NoError(t, err)
	return launched
}

func TestInitializePlatform(t *testing.T) {
	s, _ := newTestService(t)

	t.Run("Singleton updates for same authority", func(t *testing.T) {
		cfg, err := s.InitializePlatform(testAuthority, 200_000_000,
			engine.DefaultPlatformBps, engine.DefaultGenesisBps, engine.DefaultBurnBps)
		require.NoError(t, err)
		assert.Equal(t, uint64(200_000_000), cfg.SubmissionFee)
	})

	t.Run("Other callers rejected", func(t *testing.T) {
		_, err := s.InitializePlatform(testWallet(9), 0,
			engine.DefaultPlatformBps, engine.DefaultGenesisBps, engine.DefaultBurnBps)
		assert.ErrorIs(t, err, engine.ErrUnauthorized)
	})

	t.Run("Splits must sum to 10000", func(t *testing.T) {
		_, err := s.InitializePlatform(testAuthority, 0, 5_000, 5_000, 1)
		assert.ErrorIs(t, err, engine.ErrInvalidFeeConfig)
	})
}

func TestSubmitMeme(t *testing.T) {
	s, _ := newTestService(t)
	creator := fundedWallet(t, s, 1, 10*oneSol)

	t.Run("Creates meme and charges the fee", func(t *testing.T) {
		meme := submitTestMeme(t, s, creator)
		assert.Equal(t, uint64(0), meme.Index)
		assert.Equal(t, models.MemeStatusProving, meme.Status)
		assert.Equal(t, solana.MemeAddress(0), meme.Address)
		assert.NotEmpty(t, meme.VaultAddress)

		balance, err := s.GetBalance(creator)
		require.NoError(t, err)
		assert.Equal(t, uint64(10*oneSol-testSubmissionFee), balance)

		platform, err := s.GetPlatform()
		require.NoError(t, err)
		assert.Equal(t, uint64(1), platform.TotalMemesSubmitted)
		assert.Equal(t, uint64(testSubmissionFee), platform.TotalPlatformFees)
	})

	t.Run("Indices are sequential", func(t *testing.T) {
		meme := submitTestMeme(t, s, creator)
		assert.Equal(t, uint64(1), meme.Index)
	})

	t.Run("Rejects invalid params", func(t *testing.T) {
		_, err := s.SubmitMeme(creator, engine.SubmissionParams{
			Name:            "X",
			Symbol:          "X",
			SolGoal:         oneSol, // below 20 SOL floor
			MinBackers:      30,
			DurationSeconds: 24 * 60 * 60,
		})
		assert.ErrorIs(t, err, engine.ErrGoalTooLow)
	})

	t.Run("Rejects a broke creator", func(t *testing.T) {
		broke := testWallet(2)
		_, err := s.SubmitMeme(broke, engine.SubmissionParams{
			Name:            "Broke",
			Symbol:          "BRK",
			SolGoal:         20 * oneSol,
			MinBackers:      30,
			DurationSeconds: 24 * 60 * 60,
		})
		assert.ErrorIs(t, err, engine.ErrInsufficientBalance)
	})
}

func TestBackMeme(t *testing.T) {
	s, clk := newTestService(t)
	creator := fundedWallet(t, s, 1, 10*oneSol)
	meme := submitTestMeme(t, s, creator)
	backer := fundedWallet(t, s, 2, 5*oneSol)

	t.Run("First backing below minimum rejected", func(t *testing.T) {
		_, err := s.BackMeme(meme.Index, backer, 100_000_000)
		assert.ErrorIs(t, err, engine.ErrBackingTooLow)
	})

	t.Run("Qualifying backing moves funds to the vault", func(t *testing.T) {
		b, err := s.BackMeme(meme.Index, backer, oneSol)
		require.NoError(t, err)
		assert.Equal(t, uint64(oneSol), b.Amount)
		assert.True(t, b.QualifiesForFees)

		vault, err := s.GetBalance(meme.VaultAddress)
		require.NoError(t, err)
		assert.Equal(t, uint64(oneSol), vault)

		fresh, err := s.GetMeme(meme.Index)
		require.NoError(t, err)
		assert.Equal(t, uint64(oneSol), fresh.SolBacked)
		assert.Equal(t, uint32(1), fresh.BackerCount)
	})

	t.Run("Top-up of any size allowed, backer count stays", func(t *testing.T) {
		b, err := s.BackMeme(meme.Index, backer, 1_000)
		require.NoError(t, err)
		assert.Equal(t, uint64(oneSol+1_000), b.Amount)

		fresh, err := s.GetMeme(meme.Index)
		require.NoError(t, err)
		assert.Equal(t, uint32(1), fresh.BackerCount)
	})

	t.Run("Cumulative position capped at 10% of goal", func(t *testing.T) {
		// Cap is 2 SOL; position holds 1 SOL + 1000 lamports.
		_, err := s.BackMeme(meme.Index, backer, oneSol)
		assert.ErrorIs(t, err, engine.ErrBackingExceedsMax)

		// Exactly up to the cap is fine.
		_, err = s.BackMeme(meme.Index, backer, oneSol-1_000)
		require.NoError(t, err)
	})

	t.Run("Creator backing tracked separately", func(t *testing.T) {
		_, err := s.BackMeme(meme.Index, creator, oneSol)
		require.NoError(t, err)
		fresh, err := s.GetMeme(meme.Index)
		require.NoError(t, err)
		assert.Equal(t, uint64(oneSol), fresh.CreatorBacking)
	})

	t.Run("Rejected after the deadline", func(t *testing.T) {
		clk.Advance(4 * 24 * time.Hour)
		late := fundedWallet(t, s, 3, 2*oneSol)
		_, err := s.BackMeme(meme.Index, late, oneSol)
		assert.ErrorIs(t, err, engine.ErrProvingEnded)
	})
}

func TestFinalizeProving(t *testing.T) {
	s, clk := newTestService(t)

	t.Run("Launch requires the deadline to pass", func(t *testing.T) {
		creator := fundedWallet(t, s, 1, 10*oneSol)
		meme := submitTestMeme(t, s, creator)
		_, err := s.FinalizeProving(meme.Index)
		assert.ErrorIs(t, err, engine.ErrProvingStillActive)
	})

	launched := launchTestMeme(t, s, clk)

	t.Run("Launch creates curve, pool and mint", func(t *testing.T) {
		meme := launched
		assert.Equal(t, models.MemeStatusLaunched, meme.Status)
		assert.Equal(t, solana.MintAddress(meme.Address), meme.Mint)

		state, err := s.GetCurve(meme.Index)
		require.NoError(t, err)
		assert.Equal(t, engine.InitialVirtualSol, state.Curve.VirtualSolReserves)
		assert.Equal(t, uint64(800_000_000_000_000), state.Curve.VirtualTokenReserves)
		assert.Equal(t, uint64(800_000_000_000_000), state.Curve.RealTokenReserves)
		assert.Equal(t, uint64(0), state.Curve.RealSolReserves)
		assert.Equal(t, models.CurveStatusActive, state.Curve.Status)

		// Pool totals are frozen at launch.
		assert.Equal(t, uint64(30*667_000_000), state.Pool.TotalQualifiedBacking)
		assert.Equal(t, uint32(30), state.Pool.QualifiedBackerCount)
		assert.Equal(t, uint64(0), state.Pool.TotalFees)

		// Full curve allocation sits in the curve's own token account.
		held, err := s.GetTokenBalance(meme.Index, state.Curve.Address)
		require.NoError(t, err)
		assert.Equal(t, uint64(800_000_000_000_000), held)

		platform, err := s.GetPlatform()
		require.NoError(t, err)
		assert.Equal(t, uint64(1), platform.TotalMemesLaunched)
	})

	t.Run("Finalize is not repeatable", func(t *testing.T) {
		meme, err := s.GetMeme(launched.Index)
		require.NoError(t, err)
		require.Equal(t, models.MemeStatusLaunched, meme.Status)
		_, err = s.FinalizeProving(launched.Index)
		assert.ErrorIs(t, err, engine.ErrAlreadyLaunched)
	})
}

func TestFailureAndWithdraw(t *testing.T) {
	s, clk := newTestService(t)
	creator := fundedWallet(t, s, 1, 10*oneSol)
	meme := submitTestMeme(t, s, creator)
	backer := fundedWallet(t, s, 2, 5*oneSol)
	_, err := s.BackMeme(meme.Index, backer, oneSol)
	require.NoError(t, err)

	t.Run("Cannot withdraw while proving", func(t *testing.T) {
		_, err := s.WithdrawBacking(meme.Index, backer)
		assert.ErrorIs(t, err, engine.ErrProvingStillActive)
	})

	t.Run("Missed goal marks the meme failed after the deadline", func(t *testing.T) {
		clk.Advance(4 * 24 * time.Hour)
		failed, err := s.MarkMemeFailed(meme.Index)
		require.NoError(t, err)
		assert.Equal(t, models.MemeStatusFailed, failed.Status)
	})

	t.Run("Withdraw refunds the full position once", func(t *testing.T) {
		refunded, err := s.WithdrawBacking(meme.Index, backer)
		require.NoError(t, err)
		assert.Equal(t, uint64(oneSol), refunded)

		balance, err := s.GetBalance(backer)
		require.NoError(t, err)
		assert.Equal(t, uint64(5*oneSol), balance)

		_, err = s.WithdrawBacking(meme.Index, backer)
		assert.ErrorIs(t, err, engine.ErrBackingWithdrawn)
	})

	t.Run("No backing, no refund", func(t *testing.T) {
		stranger := testWallet(7)
		_, err := s.WithdrawBacking(meme.Index, stranger)
		assert.ErrorIs(t, err, engine.ErrNoBackingFound)
	})

	t.Run("Backing a failed meme rejected", func(t *testing.T) {
		_, err := s.BackMeme(meme.Index, backer, oneSol)
		assert.ErrorIs(t, err, engine.ErrAlreadyFailed)
	})
}

func TestEvaluateAndFinalize(t *testing.T) {
	s, clk := newTestService(t)

	t.Run("Launches on success", func(t *testing.T) {
		meme := launchTestMeme(t, s, clk)
		assert.Equal(t, models.MemeStatusLaunched, meme.Status)
	})

	t.Run("Fails on missed quorum even with the SOL goal met", func(t *testing.T) {
		creator := fundedWallet(t, s, 2, 10*oneSol)
		meme := submitTestMeme(t, s, creator)
		// 10 backers at the 2 SOL cap reach 20 SOL but not 30 backers.
		for i := 0; i < 10; i++ {
			backer := fundedWallet(t, s, 200+i, 3*oneSol)
			_, err := s.BackMeme(meme.Index, backer, 2*oneSol)
			require.NoError(t, err)
		}
		clk.Advance(4 * 24 * time.Hour)

		_, err := s.FinalizeProving(meme.Index)
		assert.ErrorIs(t, err, engine.ErrGoalNotReached)

		failed, err := s.EvaluateAndFinalize(meme.Index)
		require.NoError(t, err)
		assert.Equal(t, models.MemeStatusFailed, failed.Status)
	})
}

func TestBuyTokens(t *testing.T) {
	s, clk := newTestService(t)
	meme := launchTestMeme(t, s, clk)
	buyer := fundedWallet(t, s, 50, 10*oneSol)

	t.Run("Buy settles funds, tokens and fees", func(t *testing.T) {
		result, err := s.BuyTokens(meme.Index, buyer, oneSol, 0)
		require.NoError(t, err)
		assert.Equal(t, uint64(10_000_000), result.TradingFee) // 1%
		// floor(0.99 SOL * 8e14 / (30 SOL + 0.99 SOL))
		assert.Equal(t, uint64(25_556_631_171_345), result.TokenAmount)

		held, err := s.GetTokenBalance(meme.Index, buyer)
		require.NoError(t, err)
		assert.Equal(t, result.TokenAmount, held)

		balance, err := s.GetBalance(buyer)
		require.NoError(t, err)
		assert.Equal(t, uint64(9*oneSol), balance)

		state, err := s.GetCurve(meme.Index)
		require.NoError(t, err)
		assert.Equal(t, uint64(990_000_000), state.Curve.RealSolReserves)
		assert.Equal(t, uint64(7_000_000), state.Curve.GenesisFeesAccumulated)
		assert.Equal(t, uint64(2_000_000), state.Curve.PlatformFeesAccumulated)
		assert.Equal(t, uint64(1_000_000), state.Curve.BurnFeesAccumulated)
		assert.Equal(t, uint64(7_000_000), state.Pool.TotalFees)

		// Vault keeps everything except the platform share.
		vault, err := s.GetBalance(state.Curve.VaultAddress)
		require.NoError(t, err)
		assert.Equal(t, uint64(998_000_000), vault)
	})

	t.Run("Slippage guard", func(t *testing.T) {
		_, err := s.BuyTokens(meme.Index, buyer, oneSol, ^uint64(0))
		assert.ErrorIs(t, err, engine.ErrSlippageExceeded)
	})

	t.Run("Insufficient funds", func(t *testing.T) {
		broke := testWallet(51)
		_, err := s.BuyTokens(meme.Index, broke, oneSol, 0)
		assert.ErrorIs(t, err, engine.ErrInsufficientBalance)
	})

	t.Run("Trade history recorded", func(t *testing.T) {
		trades, total, err := s.ListTrades(meme.Index, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, trades, 1)
		assert.Equal(t, models.TradeSideBuy, trades[0].Side)
		assert.Equal(t, trades[0].TradingFee, trades[0].GenesisFee+trades[0].PlatformFee+trades[0].BurnFee)
	})
}

func TestSellTokens(t *testing.T) {
	s, clk := newTestService(t)
	meme := launchTestMeme(t, s, clk)
	trader := fundedWallet(t, s, 50, 10*oneSol)

	buy, err := s.BuyTokens(meme.Index, trader, 2*oneSol, 0)
	require.NoError(t, err)

	t.Run("Cannot sell more than held", func(t *testing.T) {
		_, err := s.SellTokens(meme.Index, trader, buy.TokenAmount+1, 0)
		assert.ErrorIs(t, err, engine.ErrInsufficientTokens)
	})

	t.Run("Round trip never profits", func(t *testing.T) {
		before, err := s.GetBalance(trader)
		require.NoError(t, err)

		sell, err := s.SellTokens(meme.Index, trader, buy.TokenAmount, 0)
		require.NoError(t, err)
		assert.LessOrEqual(t, sell.SolAmount, uint64(2*oneSol))

		after, err := s.GetBalance(trader)
		require.NoError(t, err)
		assert.Equal(t, before+sell.SolAmount, after)

		held, err := s.GetTokenBalance(meme.Index, trader)
		require.NoError(t, err)
		assert.Equal(t, uint64(0), held)
	})

	t.Run("Slippage guard", func(t *testing.T) {
		buy2, err := s.BuyTokens(meme.Index, trader, oneSol, 0)
		require.NoError(t, err)
		_, err = s.SellTokens(meme.Index, trader, buy2.TokenAmount, 2*oneSol)
		assert.ErrorIs(t, err, engine.ErrSlippageExceeded)
	})
}

func TestClaimGenesisFees(t *testing.T) {
	s, clk := newTestService(t)
	meme := launchTestMeme(t, s, clk)
	whale := fundedWallet(t, s, 50, 200*oneSol)
	backer := testWallet(100) // backed 667_000_000 during launch

	t.Run("No fees, nothing to claim", func(t *testing.T) {
		_, err := s.ClaimGenesisFees(meme.Index, backer)
		assert.ErrorIs(t, err, engine.ErrNoFeesToClaim)
	})

	t.Run("Claim pays the pro-rata share", func(t *testing.T) {
		_, err := s.BuyTokens(meme.Index, whale, oneSol, 0)
		require.NoError(t, err)

		// floor(667e6 * 7e6 / 20.01e9)
		view, err := s.GetBacking(meme.Index, backer)
		require.NoError(t, err)
		assert.Equal(t, uint64(233_333), view.ClaimableNow)

		claimed, err := s.ClaimGenesisFees(meme.Index, backer)
		require.NoError(t, err)
		assert.Equal(t, uint64(233_333), claimed)

		// Nothing left until new fees accrue.
		_, err = s.ClaimGenesisFees(meme.Index, backer)
		assert.ErrorIs(t, err, engine.ErrNoFeesToClaim)
	})

	t.Run("Entitlement grows with further trading", func(t *testing.T) {
		_, err := s.BuyTokens(meme.Index, whale, oneSol, 0)
		require.NoError(t, err)
		claimed, err := s.ClaimGenesisFees(meme.Index, backer)
		require.NoError(t, err)
		assert.Greater(t, claimed, uint64(0))
	})

	t.Run("Outsiders cannot claim", func(t *testing.T) {
		_, err := s.ClaimGenesisFees(meme.Index, testWallet(9))
		assert.ErrorIs(t, err, engine.ErrNoBackingFound)
	})

	t.Run("All shares stay within the pool", func(t *testing.T) {
		for i := 0; i < 30; i++ {
			_, err := s.ClaimGenesisFees(meme.Index, testWallet(100+i))
			if err != nil {
				assert.ErrorIs(t, err, engine.ErrNoFeesToClaim)
			}
		}
		state, err := s.GetCurve(meme.Index)
		require.NoError(t, err)
		assert.LessOrEqual(t, state.Pool.TotalClaimed, state.Pool.TotalFees)
	})
}

func TestCurveCompletionAndMigration(t *testing.T) {
	s, clk := newTestService(t)
	meme := launchTestMeme(t, s, clk)
	whale := fundedWallet(t, s, 50, 200*oneSol)

	t.Run("Migration blocked while the curve is active", func(t *testing.T) {
		_, err := s.MigrateToAmm(meme.Index)
		assert.ErrorIs(t, err, engine.ErrCurveNotComplete)
	})

	t.Run("Large buy completes the curve", func(t *testing.T) {
		result, err := s.BuyTokens(meme.Index, whale, 86*oneSol, 0)
		require.NoError(t, err)
		assert.Equal(t, models.CurveStatusComplete, result.CurveStatus)

		state, err := s.GetCurve(meme.Index)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, state.Curve.RealSolReserves, engine.CurveCompletionSol)
	})

	t.Run("No trading on a completed curve", func(t *testing.T) {
		_, err := s.BuyTokens(meme.Index, whale, oneSol, 0)
		assert.ErrorIs(t, err, engine.ErrCurveCompleted)
		_, err = s.SellTokens(meme.Index, whale, 1_000_000, 0)
		assert.ErrorIs(t, err, engine.ErrCurveCompleted)
	})

	t.Run("Migration charges the fee and is terminal", func(t *testing.T) {
		platformBefore, err := s.GetPlatform()
		require.NoError(t, err)

		migrated, err := s.MigrateToAmm(meme.Index)
		require.NoError(t, err)
		assert.Equal(t, models.MemeStatusMigrated, migrated.Status)

		platformAfter, err := s.GetPlatform()
		require.NoError(t, err)
		assert.Equal(t, platformBefore.TotalPlatformFees+engine.MigrationFee, platformAfter.TotalPlatformFees)

		_, err = s.MigrateToAmm(meme.Index)
		assert.ErrorIs(t, err, engine.ErrAlreadyMigrated)
	})

	t.Run("Genesis claims stay open after migration", func(t *testing.T) {
		claimed, err := s.ClaimGenesisFees(meme.Index, testWallet(100))
		require.NoError(t, err)
		assert.Greater(t, claimed, uint64(0))
	})

	t.Run("No trading after migration", func(t *testing.T) {
		_, err := s.BuyTokens(meme.Index, whale, oneSol, 0)
		assert.ErrorIs(t, err, engine.ErrAlreadyMigrated)
	})
}

func TestQuotes(t *testing.T) {
	s, clk := newTestService(t)
	meme := launchTestMeme(t, s, clk)
	buyer := fundedWallet(t, s, 50, 10*oneSol)

	t.Run("Quote matches settlement", func(t *testing.T) {
		quote, err := s.QuoteBuy(meme.Index, oneSol)
		require.NoError(t, err)

		result, err := s.BuyTokens(meme.Index, buyer, oneSol, 0)
		require.NoError(t, err)
		assert.Equal(t, quote.TokenAmount, result.TokenAmount)
		assert.Equal(t, quote.TradingFee, result.TradingFee)
		assert.Equal(t, quote.PriceAfter, result.PriceAfter)
	})

	t.Run("Sell quote matches settlement", func(t *testing.T) {
		held, err := s.GetTokenBalance(meme.Index, buyer)
		require.NoError(t, err)

		quote, err := s.QuoteSell(meme.Index, held)
		require.NoError(t, err)

		result, err := s.SellTokens(meme.Index, buyer, held, 0)
		require.NoError(t, err)
		assert.Equal(t, quote.SolAmount, result.SolAmount)
	})

	t.Run("Quotes do not move state", func(t *testing.T) {
		before, err := s.GetCurve(meme.Index)
		require.NoError(t, err)
		_, err = s.QuoteBuy(meme.Index, 5*oneSol)
		require.NoError(t, err)
		after, err := s.GetCurve(meme.Index)
		require.NoError(t, err)
		assert.Equal(t, before.Curve.VirtualSolReserves, after.Curve.VirtualSolReserves)
	})
}

func TestListMemes(t *testing.T) {
	s, _ := newTestService(t)
	creator := fundedWallet(t, s, 1, 100*oneSol)
	for i := 0; i < 5; i++ {
		submitTestMeme(t, s, creator)
	}

	t.Run("Paginates newest first", func(t *testing.T) {
		memes, total, err := s.ListMemes("", 1, 3)
		require.NoError(t, err)
		assert.Equal(t, int64(5), total)
		require.Len(t, memes, 3)
		assert.Equal(t, uint64(4), memes[0].Index)

		memes, _, err = s.ListMemes("", 2, 3)
		require.NoError(t, err)
		assert.Len(t, memes, 2)
	})

	t.Run("Filters by status", func(t *testing.T) {
		memes, total, err := s.ListMemes(models.MemeStatusProving, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(5), total)
		assert.Len(t, memes, 5)

		_, total, err = s.ListMemes(models.MemeStatusLaunched, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(0), total)
	})
}

func TestExpiredProvingMemes(t *testing.T) {
	s, clk := newTestService(t)
	creator := fundedWallet(t, s, 1, 100*oneSol)
	first := submitTestMeme(t, s, creator)
	clk.Advance(2 * 24 * time.Hour)
	submitTestMeme(t, s, creator) // expires two days later

	clk.Advance(2 * 24 * time.Hour) // first is past its 3-day window now
	expired, err := s.ExpiredProvingMemes(10)
	require.NoError(t, err)
	require.Len(t, expired, 1)
	assert.Equal(t, first.Index, expired[0])
}

// Rows mutated inside a write transaction must be selected FOR UPDATE, or
// two concurrent transactions on postgres can both read the same snapshot
// and one update is silently lost. SQLite ignores the clause, but it still
// lands in the statement, so a query callback can observe which tables
// were loaded locked.
func TestWritePathsLockRows(t *testing.T) {
	s, clk := newTestService(t)

	lockedTables := map[string]bool{}
	err := s.db.Callback().Query().After("gorm:query").Register("capture_row_locks", func(db *gorm.DB) {
		if _, ok := db.Statement.Clauses["FOR"]; ok {
			lockedTables[db.Statement.Table] = true
		}
	})
	require.NoError(t, err)

	meme := launchTestMeme(t, s, clk)
	buyer := fundedWallet(t, s, 2, 5*oneSol)
	_, err = s.BuyTokens(meme.Index, buyer, oneSol, 0)
	require.NoError(t, err)
	_, err = s.ClaimGenesisFees(meme.Index, testWallet(100))
	require.NoError(t, err)

	for _, table := range []string{
		"platform_config",
		"memes",
		"backings",
		"bonding_curves",
		"genesis_pools",
		"lamport_accounts",
		"token_balances",
	} {
		assert.True(t, lockedTables[table], "%s rows must be loaded FOR UPDATE on write paths", table)
	}
}

func TestMalformedAddressRejected(t *testing.T) {
	s, clk := newTestService(t)
	meme := launchTestMeme(t, s, clk)
	junk := "not-base58-0OIl"

	_, err := s.BuyTokens(meme.Index, junk, oneSol, 0)
	assert.ErrorIs(t, err, engine.ErrInvalidAddress)

	_, err = s.SellTokens(meme.Index, junk, 1_000_000, 0)
	assert.ErrorIs(t, err, engine.ErrInvalidAddress)

	_, err = s.ClaimGenesisFees(meme.Index, junk)
	assert.ErrorIs(t, err, engine.ErrInvalidAddress)

	_, err = s.WithdrawBacking(meme.Index, junk)
	assert.ErrorIs(t, err, engine.ErrInvalidAddress)

	// No stray wallet row may be created for a rejected identity.
	var count int64
	require.NoError(t, s.db.Model(&models.LamportAccount{}).Where("address = ?", junk).Count(&count).Error)
	assert.Zero(t, count)
}
