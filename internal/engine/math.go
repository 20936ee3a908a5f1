package engine

import "math/big"

// All balances and reserves are lamport/base-unit uint64. Anything that can
// overflow goes through a checked helper; intermediate products widen through
// big.Int so a*b/c is exact for any u64 inputs.

const maxUint64 = ^uint64(0)

// CheckedAdd returns a+b or ErrMathOverflow.
func CheckedAdd(a, b uint64) (uint64, error) {
	if a > maxUint64-b {
		return 0, ErrMathOverflow
	}
	return a + b, nil
}

// CheckedSub returns a-b or ErrMathOverflow on underflow.
func CheckedSub(a, b uint64) (uint64, error) {
	if b > a {
		return 0, ErrMathOverflow
	}
	return a - b, nil
}

// CheckedMul returns a*b or ErrMathOverflow.
func CheckedMul(a, b uint64) (uint64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	if a > maxUint64/b {
		return 0, ErrMathOverflow
	}
	return a * b, nil
}

// MulDivFloor computes floor(a*n/d) with a 128-bit intermediate.
// Errors on d == 0 or when the quotient exceeds u64.
func MulDivFloor(a, n, d uint64) (uint64, error) {
	if d == 0 {
		return 0, ErrMathOverflow
	}
	prod := new(big.Int).Mul(new(big.Int).SetUint64(a), new(big.Int).SetUint64(n))
	quot := prod.Quo(prod, new(big.Int).SetUint64(d))
	if !quot.IsUint64() {
		return 0, ErrMathOverflow
	}
	return quot.Uint64(), nil
}

// BpsShare returns floor(amount * bps / 10000).
func BpsShare(amount, bps uint64) (uint64, error) {
	return MulDivFloor(amount, bps, BpsDenominator)
}

// SaturatingAdd clamps at the u64 ceiling instead of failing.
func SaturatingAdd(a, b uint64) uint64 {
	if a > maxUint64-b {
		return maxUint64
	}
	return a + b
}

// SaturatingSub clamps at zero instead of failing.
func SaturatingSub(a, b uint64) uint64 {
	if b > a {
		return 0
	}
	return a - b
}
