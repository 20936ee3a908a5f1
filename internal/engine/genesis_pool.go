package engine

import (
	"memelaunch/internal/models"
)

// CalculateClaimable returns what a backer can pull right now:
// floor(amount * total_fees / total_qualified_backing) minus what they have
// already claimed. The subtraction saturates so floor-rounding in earlier
// claims can never produce a negative.
func CalculateClaimable(pool *models.GenesisPool, backerAmount, alreadyClaimed uint64) (uint64, error) {
	if pool.TotalQualifiedBacking == 0 {
		return 0, nil
	}
	entitled, err := MulDivFloor(backerAmount, pool.TotalFees, pool.TotalQualifiedBacking)
	if err != nil {
		return 0, err
	}
	return SaturatingSub(entitled, alreadyClaimed), nil
}
