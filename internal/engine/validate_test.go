package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validParams() SubmissionParams {
	return SubmissionParams{
		Name:            "Proof of Doge",
		Symbol:          "PDOGE",
		URI:             "https://example.com/pdoge.json",
		Description:     "much community",
		SolGoal:         20_000_000_000,
		MinBackers:      30,
		DurationSeconds: 3 * 24 * 60 * 60,
	}
}

func TestValidateSubmission(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		assert.NoError(t, ValidateSubmission(validParams()))
	})

	cases := []struct {
		name   string
		mutate func(*SubmissionParams)
		want   error
	}{
		{"empty name", func(p *SubmissionParams) { p.Name = "" }, ErrEmptyName},
		{"name too long", func(p *SubmissionParams) { p.Name = strings.Repeat("x", 33) }, ErrNameTooLong},
		{"empty symbol", func(p *SubmissionParams) { p.Symbol = "" }, ErrEmptySymbol},
		{"symbol too long", func(p *SubmissionParams) { p.Symbol = strings.Repeat("x", 11) }, ErrSymbolTooLong},
		{"uri too long", func(p *SubmissionParams) { p.URI = strings.Repeat("x", 201) }, ErrURITooLong},
		{"description too long", func(p *SubmissionParams) { p.Description = strings.Repeat("x", 501) }, ErrDescriptionTooLong},
		{"goal too low", func(p *SubmissionParams) { p.SolGoal = MinSolGoal - 1 }, ErrGoalTooLow},
		{"goal too high", func(p *SubmissionParams) { p.SolGoal = MaxSolGoal + 1 }, ErrGoalTooHigh},
		{"min backers too low", func(p *SubmissionParams) { p.MinBackers = 29 }, ErrMinBackersTooLow},
		{"duration too short", func(p *SubmissionParams) { p.DurationSeconds = MinProvingDuration - 1 }, ErrDurationTooShort},
		{"duration too long", func(p *SubmissionParams) { p.DurationSeconds = MaxProvingDuration + 1 }, ErrDurationTooLong},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := validParams()
			tc.mutate(&p)
			assert.ErrorIs(t, ValidateSubmission(p), tc.want)
		})
	}

	t.Run("Boundary values pass", func(t *testing.T) {
		p := validParams()
		p.SolGoal = MinSolGoal
		p.DurationSeconds = MinProvingDuration
		assert.NoError(t, ValidateSubmission(p))

		p.SolGoal = MaxSolGoal
		p.DurationSeconds = MaxProvingDuration
		assert.NoError(t, ValidateSubmission(p))
	})
}

func TestMaxBackingFor(t *testing.T) {
	max, err := MaxBackingFor(20_000_000_000)
	require.NoError(t, err)
	assert.Equal(t, uint64(2_000_000_000), max) // 10% of a 20 SOL goal
}

func TestValidateFeeSplits(t *testing.T) {
	assert.NoError(t, ValidateFeeSplits(2_000, 7_000, 1_000))
	assert.ErrorIs(t, ValidateFeeSplits(2_000, 7_000, 999), ErrInvalidFeeConfig)
	assert.ErrorIs(t, ValidateFeeSplits(5_000, 5_000, 5_000), ErrInvalidFeeConfig)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(ErrGoalTooLow))
	assert.Equal(t, KindState, KindOf(ErrAlreadyLaunched))
	assert.Equal(t, KindArithmetic, KindOf(ErrMathOverflow))
	assert.Equal(t, KindNotFound, KindOf(ErrMemeNotFound))
}
