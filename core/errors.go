package core

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/holiman/uint256"
)

// ErrorCode int
type ErrorCode int

const (
	// ErrUnknown unkown
	ErrUnknown ErrorCode = 100000

	// ErrInvalidAmount amount must be more than zero
	ErrInvalidAmount ErrorCode = 100101
	// ErrUnsupportedAsset asset is not in the collateral list
	ErrUnsupportedAsset ErrorCode = 100102
	// ErrConfigMismatch collateral assets and price feeds differ in length
	ErrConfigMismatch ErrorCode = 100103
	// ErrInvalidAddress empty or malformed identity
	ErrInvalidAddress ErrorCode = 100104
	// ErrInsufficientCollateral redeem more than deposited
	ErrInsufficientCollateral ErrorCode = 100105
	// ErrInsufficientDebt burn more than minted
	ErrInsufficientDebt ErrorCode = 100106
	// ErrOverflow result does not fit 256 bits
	ErrOverflow ErrorCode = 100107

	// ErrTransferFailed token transfer returned false
	ErrTransferFailed ErrorCode = 100201
	// ErrMintFailed synthetic mint returned false
	ErrMintFailed ErrorCode = 100202
	// ErrBurnFailed synthetic burn rejected
	ErrBurnFailed ErrorCode = 100203

	// ErrBreaksHealthFactor health factor below minimum
	ErrBreaksHealthFactor ErrorCode = 100301

	// ErrHealthFactorOK target is not liquidatable
	ErrHealthFactorOK ErrorCode = 100401
	// ErrHealthFactorNotImproved liquidation did not improve the target
	ErrHealthFactorNotImproved ErrorCode = 100402

	// ErrReentrantCall mutating call while another one is in flight
	ErrReentrantCall ErrorCode = 100501
	// ErrNotOwner caller may not mint or burn
	ErrNotOwner ErrorCode = 100502

	// ErrInvalidPrice feed answer is zero or negative
	ErrInvalidPrice ErrorCode = 100601
	// ErrPriceNotFound feed has no round yet
	ErrPriceNotFound ErrorCode = 100602
	// ErrStalePrice feed round is too old
	ErrStalePrice ErrorCode = 100603
)

var errorMessages = map[ErrorCode]string{
	ErrUnknown:                 "unknown error",
	ErrInvalidAmount:           "amount must be more than zero",
	ErrUnsupportedAsset:        "asset not allowed as collateral",
	ErrConfigMismatch:          "collateral assets and price feeds must be the same length",
	ErrInvalidAddress:          "invalid address",
	ErrInsufficientCollateral:  "insufficient collateral",
	ErrInsufficientDebt:        "burn amount exceeds minted debt",
	ErrOverflow:                "arithmetic overflow",
	ErrTransferFailed:          "transfer failed",
	ErrMintFailed:              "mint failed",
	ErrBurnFailed:              "burn failed",
	ErrBreaksHealthFactor:      "health factor below minimum",
	ErrHealthFactorOK:          "health factor ok",
	ErrHealthFactorNotImproved: "health factor not improved",
	ErrReentrantCall:           "reentrant call",
	ErrNotOwner:                "caller is not the owner",
	ErrInvalidPrice:            "invalid oracle price",
	ErrPriceNotFound:           "oracle price not found",
	ErrStalePrice:              "stale oracle price",
}

func (e ErrorCode) String() string {
	return strconv.Itoa(int(e))
}

func (e ErrorCode) Error() string {
	if msg, ok := errorMessages[e]; ok {
		return msg
	}

	return e.String()
}

// Kind error category of the code
func (e ErrorCode) Kind() ErrorKind {
	switch int(e) / 100 {
	case 1001:
		return KindValidation
	case 1002:
		return KindTransfer
	case 1003:
		return KindSolvency
	case 1004:
		return KindLiquidation
	case 1005:
		return KindGuard
	case 1006:
		return KindOracle
	default:
		return KindUnknown
	}
}

// ErrorKind error category
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindValidation
	KindTransfer
	KindSolvency
	KindLiquidation
	KindGuard
	KindOracle
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindTransfer:
		return "transfer"
	case KindSolvency:
		return "solvency"
	case KindLiquidation:
		return "liquidation"
	case KindGuard:
		return "guard"
	case KindOracle:
		return "oracle"
	default:
		return "unknown"
	}
}

// KindOf resolve the category of err, KindUnknown if err carries no code
func KindOf(err error) ErrorKind {
	var code ErrorCode
	if errors.As(err, &code) {
		return code.Kind()
	}

	return KindUnknown
}

// CodeOf resolve the error code of err, ErrUnknown if err carries no code
func CodeOf(err error) ErrorCode {
	var code ErrorCode
	if errors.As(err, &code) {
		return code
	}

	return ErrUnknown
}

// HealthFactorError reports the account and health factor that broke the minimum
type HealthFactorError struct {
	User         string
	HealthFactor *uint256.Int
}

func (e *HealthFactorError) Error() string {
	return fmt.Sprintf("%s: user %s health factor %s", ErrBreaksHealthFactor.Error(), e.User, e.HealthFactor.Dec())
}

func (e *HealthFactorError) Unwrap() error {
	return ErrBreaksHealthFactor
}
