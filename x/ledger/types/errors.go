package types

import (
	"cosmossdk.io/errors"
)

// Ledger module sentinel errors
var (
	ErrInsufficientFunds     = errors.Register(ModuleName, 2, "insufficient funds")
	ErrInsufficientAllowance = errors.Register(ModuleName, 3, "insufficient allowance")
	ErrInvalidDenom          = errors.Register(ModuleName, 4, "invalid denomination")
	ErrInvalidAddress        = errors.Register(ModuleName, 5, "invalid address")
	ErrInvalidAmount         = errors.Register(ModuleName, 6, "invalid amount")
)
