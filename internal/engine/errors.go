package engine

import "errors"

// Kind buckets every engine failure so the HTTP layer can map it to a
// status code without string matching.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindState
	KindArithmetic
	KindInsufficientFunds
	KindAuthorization
	KindNotFound
)

// Error is a typed engine failure. Code is stable and machine-readable.
type Error struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *Error) Error() string { return e.Message }

func newErr(kind Kind, code, msg string) *Error {
	return &Error{Kind: kind, Code: code, Message: msg}
}

// Submission errors
var (
	ErrEmptyName          = newErr(KindValidation, "EMPTY_NAME", "name cannot be empty")
	ErrNameTooLong        = newErr(KindValidation, "NAME_TOO_LONG", "name too long (max 32 characters)")
	ErrEmptySymbol        = newErr(KindValidation, "EMPTY_SYMBOL", "symbol cannot be empty")
	ErrSymbolTooLong      = newErr(KindValidation, "SYMBOL_TOO_LONG", "symbol too long (max 10 characters)")
	ErrURITooLong         = newErr(KindValidation, "URI_TOO_LONG", "uri too long (max 200 characters)")
	ErrDescriptionTooLong = newErr(KindValidation, "DESCRIPTION_TOO_LONG", "description too long (max 500 characters)")
	ErrGoalTooLow         = newErr(KindValidation, "GOAL_TOO_LOW", "SOL goal below minimum (20 SOL)")
	ErrGoalTooHigh        = newErr(KindValidation, "GOAL_TOO_HIGH", "SOL goal above maximum (500 SOL)")
	ErrMinBackersTooLow   = newErr(KindValidation, "MIN_BACKERS_TOO_LOW", "minimum backers below 30")
	ErrDurationTooShort   = newErr(KindValidation, "DURATION_TOO_SHORT", "duration below minimum (24 hours)")
	ErrDurationTooLong    = newErr(KindValidation, "DURATION_TOO_LONG", "duration above maximum (7 days)")
)

// Backing errors
var (
	ErrZeroAmount           = newErr(KindValidation, "ZERO_AMOUNT", "amount must be greater than zero")
	ErrBackingTooLow        = newErr(KindValidation, "BACKING_TOO_LOW", "backing amount below minimum (0.5 SOL for fee eligibility)")
	ErrBackingExceedsMax    = newErr(KindValidation, "BACKING_EXCEEDS_MAXIMUM", "backing would exceed maximum 10% per wallet")
	ErrProvingEnded         = newErr(KindState, "PROVING_ENDED", "proving period has ended")
	ErrProvingStillActive   = newErr(KindState, "PROVING_STILL_ACTIVE", "proving period still active")
	ErrAlreadyLaunched      = newErr(KindState, "ALREADY_LAUNCHED", "meme already launched")
	ErrAlreadyFailed        = newErr(KindState, "ALREADY_FAILED", "meme already failed")
	ErrNoBackingFound       = newErr(KindNotFound, "NO_BACKING_FOUND", "no backing found for this wallet")
	ErrBackingWithdrawn     = newErr(KindState, "BACKING_ALREADY_WITHDRAWN", "backing already withdrawn")
	ErrGoalNotReached       = newErr(KindState, "GOAL_NOT_REACHED", "SOL goal not reached")
	ErrGoalAlreadyReached   = newErr(KindState, "GOAL_REACHED", "goal reached, meme cannot be failed")
)

// Trading errors
var (
	ErrCurveNotActive     = newErr(KindState, "CURVE_NOT_ACTIVE", "curve not active")
	ErrCurveCompleted     = newErr(KindState, "CURVE_COMPLETED", "curve already completed")
	ErrCurveNotComplete   = newErr(KindState, "CURVE_NOT_COMPLETE", "curve not complete, cannot migrate yet")
	ErrAlreadyMigrated    = newErr(KindState, "ALREADY_MIGRATED", "already migrated")
	ErrSlippageExceeded   = newErr(KindValidation, "SLIPPAGE_EXCEEDED", "slippage exceeded")
	ErrInvalidTokenAmount = newErr(KindValidation, "INVALID_TOKEN_AMOUNT", "trade too small, zero output")
	ErrInsufficientTokens = newErr(KindInsufficientFunds, "INSUFFICIENT_TOKENS", "insufficient tokens in curve")
	ErrInsufficientSol    = newErr(KindInsufficientFunds, "INSUFFICIENT_SOL", "insufficient SOL in curve")
)

// Fee errors
var (
	ErrNoFeesToClaim    = newErr(KindState, "NO_FEES_TO_CLAIM", "no fees to claim")
	ErrNotGenesisBacker = newErr(KindAuthorization, "NOT_GENESIS_BACKER", "not a genesis backer")
	ErrInvalidFeeConfig = newErr(KindValidation, "INVALID_FEE_CONFIG", "fee splits must sum to 10000 bps")
)

// Math and account errors
var (
	ErrMathOverflow        = newErr(KindArithmetic, "MATH_OVERFLOW", "math overflow")
	ErrInsufficientBalance = newErr(KindInsufficientFunds, "INSUFFICIENT_BALANCE", "insufficient account balance")
	ErrInsufficientVault   = newErr(KindInsufficientFunds, "INSUFFICIENT_VAULT_BALANCE", "insufficient vault balance")
	ErrUnauthorized        = newErr(KindAuthorization, "UNAUTHORIZED", "unauthorized")
	ErrAccountMismatch     = newErr(KindAuthorization, "ACCOUNT_MISMATCH", "account mismatch")
	ErrInvalidAddress      = newErr(KindValidation, "INVALID_ADDRESS", "invalid base58 address")
	ErrMemeNotFound        = newErr(KindNotFound, "MEME_NOT_FOUND", "meme not found")
	ErrPlatformNotFound    = newErr(KindNotFound, "PLATFORM_NOT_INITIALIZED", "platform not initialized")
)

// KindOf extracts the failure bucket from any wrapped engine error.
// Unknown errors report as zero.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
