package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckedArithmetic(t *testing.T) {
	t.Run("Add", func(t *testing.T) {
		sum, err := CheckedAdd(1, 2)
		require.NoError(t, err)
		assert.Equal(t, uint64(3), sum)

		_, err = CheckedAdd(maxUint64, 1)
		assert.ErrorIs(t, err, ErrMathOverflow)

		sum, err = CheckedAdd(maxUint64, 0)
		require.NoError(t, err)
		assert.Equal(t, maxUint64, sum)
	})

	t.Run("Sub", func(t *testing.T) {
		diff, err := CheckedSub(5, 3)
		require.NoError(t, err)
		assert.Equal(t, uint64(2), diff)

		_, err = CheckedSub(3, 5)
		assert.ErrorIs(t, err, ErrMathOverflow)

		diff, err = CheckedSub(7, 7)
		require.NoError(t, err)
		assert.Equal(t, uint64(0), diff)
	})

	t.Run("Mul", func(t *testing.T) {
		prod, err := CheckedMul(1_000_000_000, 1_000_000_000)
		require.NoError(t, err)
		assert.Equal(t, uint64(1_000_000_000_000_000_000), prod)

		_, err = CheckedMul(maxUint64, 2)
		assert.ErrorIs(t, err, ErrMathOverflow)

		prod, err = CheckedMul(maxUint64, 0)
		require.NoError(t, err)
		assert.Equal(t, uint64(0), prod)
	})
}

func TestMulDivFloor(t *testing.T) {
	t.Run("Exact", func(t *testing.T) {
		v, err := MulDivFloor(100, 50, 10)
		require.NoError(t, err)
		assert.Equal(t, uint64(500), v)
	})

	t.Run("Floors", func(t *testing.T) {
		v, err := MulDivFloor(10, 10, 3)
		require.NoError(t, err)
		assert.Equal(t, uint64(33), v)
	})

	t.Run("No intermediate overflow", func(t *testing.T) {
		// a*n overflows u64 but the quotient fits.
		v, err := MulDivFloor(maxUint64, maxUint64, maxUint64)
		require.NoError(t, err)
		assert.Equal(t, maxUint64, v)
	})

	t.Run("Division by zero", func(t *testing.T) {
		_, err := MulDivFloor(1, 1, 0)
		assert.ErrorIs(t, err, ErrMathOverflow)
	})

	t.Run("Quotient exceeds u64", func(t *testing.T) {
		_, err := MulDivFloor(maxUint64, 2, 1)
		assert.ErrorIs(t, err, ErrMathOverflow)
	})
}

func TestBpsShare(t *testing.T) {
	v, err := BpsShare(10_000_000, 100) // 1%
	require.NoError(t, err)
	assert.Equal(t, uint64(100_000), v)

	v, err = BpsShare(999, 100) // floors to 9
	require.NoError(t, err)
	assert.Equal(t, uint64(9), v)

	v, err = BpsShare(12345, 10_000)
	require.NoError(t, err)
	assert.Equal(t, uint64(12345), v)
}

func TestSaturating(t *testing.T) {
	assert.Equal(t, maxUint64, SaturatingAdd(maxUint64, 1))
	assert.Equal(t, uint64(5), SaturatingAdd(2, 3))
	assert.Equal(t, uint64(0), SaturatingSub(3, 5))
	assert.Equal(t, uint64(2), SaturatingSub(5, 3))
}
