package engine

// SubmissionParams are the validated inputs of a meme submission.
type SubmissionParams struct {
	Name            string
	Symbol          string
	URI             string
	Description     string
	SolGoal         uint64
	MinBackers      uint32
	DurationSeconds int64
}

// ValidateSubmission enforces the metadata, goal and duration bounds.
// All checks happen before any state is touched.
func ValidateSubmission(p SubmissionParams) error {
	if len(p.Name) == 0 {
		return ErrEmptyName
	}
	if len(p.Name) > MaxNameLength {
		return ErrNameTooLong
	}
	if len(p.Symbol) == 0 {
		return ErrEmptySymbol
	}
	if len(p.Symbol) > MaxSymbolLength {
		return ErrSymbolTooLong
	}
	if len(p.URI) > MaxURILength {
		return ErrURITooLong
	}
	if len(p.Description) > MaxDescriptionLength {
		return ErrDescriptionTooLong
	}
	if p.SolGoal < MinSolGoal {
		return ErrGoalTooLow
	}
	if p.SolGoal > MaxSolGoal {
		return ErrGoalTooHigh
	}
	if p.MinBackers < MinBackers {
		return ErrMinBackersTooLow
	}
	if p.DurationSeconds < MinProvingDuration {
		return ErrDurationTooShort
	}
	if p.DurationSeconds > MaxProvingDuration {
		return ErrDurationTooLong
	}
	return nil
}

// MaxBackingFor returns the per-wallet cumulative cap: 10% of the goal.
func MaxBackingFor(solGoal uint64) (uint64, error) {
	return BpsShare(solGoal, MaxBackingPercentageBps)
}

// ValidateFeeSplits requires the three ratios to sum to exactly 10000 bps.
func ValidateFeeSplits(platformBps, genesisBps, burnBps uint16) error {
	if uint32(platformBps)+uint32(genesisBps)+uint32(burnBps) != uint32(BpsDenominator) {
		return ErrInvalidFeeConfig
	}
	return nil
}
