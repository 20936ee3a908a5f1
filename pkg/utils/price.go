package utils

import (
	"github.com/shopspring/decimal"
)

const (
	lamportsPerSol = 1_000_000_000
	tokenBaseUnits = 1_000_000 // 6 decimals
)

// Display-unit conversions for the API boundary. The engine never touches
// these; reserves and balances stay integer lamports/base units throughout.

// LamportsToSol renders a lamport amount as a SOL decimal.
func LamportsToSol(lamports uint64) decimal.Decimal {
	return decimal.NewFromUint64(lamports).Div(decimal.NewFromInt(lamportsPerSol))
}

// TokensToWhole renders a base-unit token amount as whole tokens.
func TokensToWhole(baseUnits uint64) decimal.Decimal {
	return decimal.NewFromUint64(baseUnits).Div(decimal.NewFromInt(tokenBaseUnits))
}

// SpotPrice returns the curve's marginal price in SOL per whole token:
// (vSol / vToken) scaled across the two decimal bases.
func SpotPrice(virtualSolReserves, virtualTokenReserves uint64) decimal.Decimal {
	if virtualTokenReserves == 0 {
		return decimal.Zero
	}
	return decimal.NewFromUint64(virtualSolReserves).
		Mul(decimal.NewFromInt(tokenBaseUnits)).
		Div(decimal.NewFromUint64(virtualTokenReserves)).
		Div(decimal.NewFromInt(lamportsPerSol))
}

// ProgressPercent returns backed/goal as a percentage, capped at 100.
func ProgressPercent(backed, goal uint64) decimal.Decimal {
	if goal == 0 {
		return decimal.Zero
	}
	pct := decimal.NewFromUint64(backed).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromUint64(goal))
	if pct.GreaterThan(decimal.NewFromInt(100)) {
		return decimal.NewFromInt(100)
	}
	return pct
}
