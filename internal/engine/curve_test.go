package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memelaunch/internal/models"
)

func freshCurve(t *testing.T) *models.BondingCurve {
	t.Helper()
	_, curveTokens, err := CurveTokenAllocation()
	require.NoError(t, err)
	return &models.BondingCurve{
		VirtualSolReserves:   InitialVirtualSol,
		VirtualTokenReserves: curveTokens,
		RealTokenReserves:    curveTokens,
		CompletionThreshold:  CurveCompletionSol,
	}
}

func TestCurveTokenAllocation(t *testing.T) {
	genesisTokens, curveTokens, err := CurveTokenAllocation()
	require.NoError(t, err)
	assert.Equal(t, uint64(200_000_000_000_000), genesisTokens)
	assert.Equal(t, uint64(800_000_000_000_000), curveTokens)
	assert.Equal(t, TotalSupply, genesisTokens+curveTokens)
}

func TestCalculateBuyTokens(t *testing.T) {
	t.Run("First buy of 1 SOL", func(t *testing.T) {
		c := freshCurve(t)
		// floor(1e9 * 8e14 / (3e10 + 1e9))
		out, err := CalculateBuyTokens(c, 1_000_000_000)
		require.NoError(t, err)
		assert.Equal(t, uint64(25_806_451_612_903), out)
	})

	t.Run("Zero in gives zero out", func(t *testing.T) {
		c := freshCurve(t)
		out, err := CalculateBuyTokens(c, 0)
		require.NoError(t, err)
		assert.Equal(t, uint64(0), out)
	})

	t.Run("Output capped at real reserves", func(t *testing.T) {
		c := freshCurve(t)
		c.RealTokenReserves = 1_000
		out, err := CalculateBuyTokens(c, 10_000_000_000)
		require.NoError(t, err)
		assert.Equal(t, uint64(1_000), out)
	})

	t.Run("Price rises with successive buys", func(t *testing.T) {
		c := freshCurve(t)
		first, err := CalculateBuyTokens(c, 1_000_000_000)
		require.NoError(t, err)
		ApplyBuy(c, 1_000_000_000, first)

		second, err := CalculateBuyTokens(c, 1_000_000_000)
		require.NoError(t, err)
		assert.Less(t, second, first, "same SOL should buy fewer tokens after the price moves")
	})
}

func TestCalculateSellSol(t *testing.T) {
	t.Run("Round trip never profits", func(t *testing.T) {
		c := freshCurve(t)
		solIn := uint64(2_000_000_000)
		tokens, err := CalculateBuyTokens(c, solIn)
		require.NoError(t, err)
		ApplyBuy(c, solIn, tokens)

		solOut, err := CalculateSellSol(c, tokens)
		require.NoError(t, err)
		assert.LessOrEqual(t, solOut, solIn, "flooring must favor the pool")
	})

	t.Run("Capped at real SOL reserves", func(t *testing.T) {
		c := freshCurve(t)
		tokens, err := CalculateBuyTokens(c, 1_000_000_000)
		require.NoError(t, err)
		ApplyBuy(c, 1_000_000_000, tokens)
		c.RealSolReserves = 100

		solOut, err := CalculateSellSol(c, tokens)
		require.NoError(t, err)
		assert.Equal(t, uint64(100), solOut)
	})
}

func TestApplyBuyAndSell(t *testing.T) {
	c := freshCurve(t)
	solIn := uint64(5_000_000_000)
	tokens, err := CalculateBuyTokens(c, solIn)
	require.NoError(t, err)

	vSol, vTok := c.VirtualSolReserves, c.VirtualTokenReserves
	ApplyBuy(c, solIn, tokens)

	// Virtual and real move in lock step.
	assert.Equal(t, vSol+solIn, c.VirtualSolReserves)
	assert.Equal(t, vTok-tokens, c.VirtualTokenReserves)
	assert.Equal(t, solIn, c.RealSolReserves)
	assert.Equal(t, tokens, c.TokensSold)

	solOut, err := CalculateSellSol(c, tokens)
	require.NoError(t, err)
	ApplySell(c, tokens, solOut)

	assert.Equal(t, vTok, c.VirtualTokenReserves, "full sell restores the token side")
	assert.Equal(t, uint64(0), c.TokensSold)
	assert.GreaterOrEqual(t, c.VirtualSolReserves, InitialVirtualSol, "rounding leaves dust in the pool, never takes it")
	assert.GreaterOrEqual(t, c.VirtualSolReserves, c.RealSolReserves)
}

func TestCurveCompletion(t *testing.T) {
	c := freshCurve(t)
	assert.False(t, c.IsComplete())
	c.RealSolReserves = CurveCompletionSol - 1
	assert.False(t, c.IsComplete())
	c.RealSolReserves = CurveCompletionSol
	assert.True(t, c.IsComplete())
}

func TestTradingFee(t *testing.T) {
	fee, err := TradingFee(1_000_000_000)
	require.NoError(t, err)
	assert.Equal(t, uint64(10_000_000), fee) // 1%

	fee, err = TradingFee(99)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), fee) // floors to zero on dust
}

func TestFeeSplit(t *testing.T) {
	cfg := &models.PlatformConfig{
		PlatformFeeBps: DefaultPlatformBps,
		GenesisFeeBps:  DefaultGenesisBps,
		BurnFeeBps:     DefaultBurnBps,
	}

	t.Run("Even split", func(t *testing.T) {
		genesis, platform, burn, err := FeeSplit(cfg, 10_000_000)
		require.NoError(t, err)
		assert.Equal(t, uint64(7_000_000), genesis)
		assert.Equal(t, uint64(2_000_000), platform)
		assert.Equal(t, uint64(1_000_000), burn)
	})

	t.Run("Remainder goes to burn", func(t *testing.T) {
		fee := uint64(9_999)
		genesis, platform, burn, err := FeeSplit(cfg, fee)
		require.NoError(t, err)
		assert.Equal(t, fee, genesis+platform+burn, "split must be exact")
		assert.Equal(t, uint64(6_999), genesis)
		assert.Equal(t, uint64(1_999), platform)
		assert.Equal(t, uint64(1_001), burn)
	})

	t.Run("Zero fee", func(t *testing.T) {
		genesis, platform, burn, err := FeeSplit(cfg, 0)
		require.NoError(t, err)
		assert.Zero(t, genesis+platform+burn)
	})
}
