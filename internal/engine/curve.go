package engine

import (
	"memelaunch/internal/models"
)

// Constant-product pricing over virtual reserves, pump.fun style: the curve
// starts with a 30 SOL virtual seed so the first buy has a sane price even
// though no real SOL exists yet.

// CalculateBuyTokens quotes tokens out for a net SOL input:
// floor(sol_in * vToken / (vSol + sol_in)), capped at real token reserves.
func CalculateBuyTokens(c *models.BondingCurve, solIn uint64) (uint64, error) {
	denominator, err := CheckedAdd(c.VirtualSolReserves, solIn)
	if err != nil {
		return 0, err
	}
	tokensOut, err := MulDivFloor(solIn, c.VirtualTokenReserves, denominator)
	if err != nil {
		return 0, err
	}
	if tokensOut > c.RealTokenReserves {
		tokensOut = c.RealTokenReserves
	}
	return tokensOut, nil
}

// CalculateSellSol quotes gross SOL out for a token input:
// floor(tokens_in * vSol / (vToken + tokens_in)), capped at real SOL reserves.
func CalculateSellSol(c *models.BondingCurve, tokensIn uint64) (uint64, error) {
	denominator, err := CheckedAdd(c.VirtualTokenReserves, tokensIn)
	if err != nil {
		return 0, err
	}
	solOut, err := MulDivFloor(tokensIn, c.VirtualSolReserves, denominator)
	if err != nil {
		return 0, err
	}
	if solOut > c.RealSolReserves {
		solOut = c.RealSolReserves
	}
	return solOut, nil
}

// CurrentPrice returns lamports per whole token (6-decimal scale).
func CurrentPrice(c *models.BondingCurve) (uint64, error) {
	return MulDivFloor(c.VirtualSolReserves, 1_000_000, c.VirtualTokenReserves)
}

// ApplyBuy commits a buy to the reserves. Virtual and real move by the same
// delta; saturating so rounding drift can never panic the curve.
func ApplyBuy(c *models.BondingCurve, solIn, tokensOut uint64) {
	c.VirtualSolReserves = SaturatingAdd(c.VirtualSolReserves, solIn)
	c.VirtualTokenReserves = SaturatingSub(c.VirtualTokenReserves, tokensOut)
	c.RealSolReserves = SaturatingAdd(c.RealSolReserves, solIn)
	c.RealTokenReserves = SaturatingSub(c.RealTokenReserves, tokensOut)
	c.TokensSold = SaturatingAdd(c.TokensSold, tokensOut)
	c.TotalVolume = SaturatingAdd(c.TotalVolume, solIn)
}

// ApplySell commits a sell to the reserves, symmetric to ApplyBuy.
func ApplySell(c *models.BondingCurve, tokensIn, solOut uint64) {
	c.VirtualSolReserves = SaturatingSub(c.VirtualSolReserves, solOut)
	c.VirtualTokenReserves = SaturatingAdd(c.VirtualTokenReserves, tokensIn)
	c.RealSolReserves = SaturatingSub(c.RealSolReserves, solOut)
	c.RealTokenReserves = SaturatingAdd(c.RealTokenReserves, tokensIn)
	c.TokensSold = SaturatingSub(c.TokensSold, tokensIn)
	c.TotalVolume = SaturatingAdd(c.TotalVolume, solOut)
}

// TradingFee returns the 1% fee on gross trade value.
func TradingFee(grossAmount uint64) (uint64, error) {
	return BpsShare(grossAmount, TradingFeeBps)
}

// FeeSplit divides a trading fee by the platform's configured ratios.
// Genesis and platform shares are floored; burn takes the remainder so the
// three always sum to the fee exactly.
func FeeSplit(cfg *models.PlatformConfig, fee uint64) (genesisFee, platformFee, burnFee uint64, err error) {
	genesisFee, err = BpsShare(fee, uint64(cfg.GenesisFeeBps))
	if err != nil {
		return 0, 0, 0, err
	}
	platformFee, err = BpsShare(fee, uint64(cfg.PlatformFeeBps))
	if err != nil {
		return 0, 0, 0, err
	}
	burnFee, err = CheckedSub(fee, genesisFee)
	if err != nil {
		return 0, 0, 0, err
	}
	burnFee, err = CheckedSub(burnFee, platformFee)
	if err != nil {
		return 0, 0, 0, err
	}
	return genesisFee, platformFee, burnFee, nil
}

// CurveTokenAllocation returns the launch-time split of total supply:
// genesis share (claimed through fees, never minted separately) and the
// portion minted into the curve.
func CurveTokenAllocation() (genesisTokens, curveTokens uint64, err error) {
	genesisTokens, err = BpsShare(TotalSupply, GenesisAllocationBps)
	if err != nil {
		return 0, 0, err
	}
	curveTokens, err = CheckedSub(TotalSupply, genesisTokens)
	if err != nil {
		return 0, 0, err
	}
	return genesisTokens, curveTokens, nil
}
