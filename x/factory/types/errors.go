package types

import (
	"cosmossdk.io/errors"
)

// x/factory module sentinel errors
var (
	ErrRegistryExists   = errors.Register(ModuleName, 2, "registry already exists")
	ErrRegistryNotFound = errors.Register(ModuleName, 3, "registry not found")
	ErrExchangeExists   = errors.Register(ModuleName, 4, "exchange already exists for token")
	ErrInvalidToken     = errors.Register(ModuleName, 5, "invalid token")
	ErrInvalidLabel     = errors.Register(ModuleName, 6, "invalid registry label")
)
