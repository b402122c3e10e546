package types

import (
	"cosmossdk.io/errors"
)

// x/exchange module sentinel errors
var (
	ErrExpired                   = errors.Register(ModuleName, 2, "deadline expired")
	ErrInsufficientInputReserve  = errors.Register(ModuleName, 3, "insufficient input reserve")
	ErrInsufficientOutputReserve = errors.Register(ModuleName, 4, "insufficient output reserve")
	ErrInsufficientBought        = errors.Register(ModuleName, 5, "insufficient amount bought")
	ErrExceededSold              = errors.Register(ModuleName, 6, "exceeded maximum amount sold")
	ErrInsufficientMinted        = errors.Register(ModuleName, 7, "insufficient shares minted")
	ErrInsufficientDeposit       = errors.Register(ModuleName, 8, "initial deposit below minimum")
	ErrInsufficientLiquidity     = errors.Register(ModuleName, 9, "insufficient liquidity")
	ErrInsufficientShares        = errors.Register(ModuleName, 10, "insufficient shares")
	ErrInsufficientAllowance     = errors.Register(ModuleName, 11, "insufficient share allowance")
	ErrInvalidRecipient          = errors.Register(ModuleName, 12, "invalid recipient")
	ErrInvalidExchange           = errors.Register(ModuleName, 13, "invalid exchange")
	ErrInvalidToken              = errors.Register(ModuleName, 14, "invalid token")
	ErrInvalidAmount             = errors.Register(ModuleName, 15, "invalid amount")
	ErrInvalidParams             = errors.Register(ModuleName, 16, "invalid parameters")
	ErrAlreadyInitialized        = errors.Register(ModuleName, 17, "exchange already initialized")
	ErrNotInitialized            = errors.Register(ModuleName, 18, "exchange not initialized")
	ErrExchangeNotFound          = errors.Register(ModuleName, 19, "exchange not found")
	ErrArithmetic                = errors.Register(ModuleName, 20, "arithmetic error")
	ErrReentrancy                = errors.Register(ModuleName, 21, "reentrant exchange call")
)
