package engine

// Basis points (1 bp = 0.01%)
const BpsDenominator uint64 = 10_000

// Goal constraints
const (
	MinSolGoal uint64 = 20_000_000_000  // 20 SOL in lamports
	MaxSolGoal uint64 = 500_000_000_000 // 500 SOL in lamports
	MinBackers uint32 = 30

	// Max cumulative backing per wallet, as bps of the goal
	MaxBackingPercentageBps uint64 = 1_000 // 10%
)

// Time constraints
const (
	MinProvingDuration int64 = 24 * 60 * 60     // 24 hours
	MaxProvingDuration int64 = 7 * 24 * 60 * 60 // 7 days
)

// Minimum first backing for genesis fee eligibility
const MinBackingAmount uint64 = 500_000_000 // 0.5 SOL

// Token supply
const (
	TokenDecimals uint8  = 6
	TotalSupply   uint64 = 1_000_000_000_000_000 // 1 billion with 6 decimals
)

// Bonding curve
const (
	CurveCompletionSol   uint64 = 85_000_000_000 // ~85 SOL completes the curve
	GenesisAllocationBps uint64 = 2_000          // 20% of supply to genesis backers
	InitialVirtualSol    uint64 = 30_000_000_000 // 30 SOL virtual seed
)

// Fees
const (
	TradingFeeBps      uint64 = 100 // 1% of gross trade value
	MigrationFee       uint64 = 1_500_000_000
	DefaultPlatformBps uint16 = 2_000
	DefaultGenesisBps  uint16 = 7_000
	DefaultBurnBps     uint16 = 1_000
)

// Metadata length limits
const (
	MaxNameLength        = 32
	MaxSymbolLength      = 10
	MaxURILength         = 200
	MaxDescriptionLength = 500
)
