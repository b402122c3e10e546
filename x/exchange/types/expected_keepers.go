package types

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// LedgerKeeper defines the asset ledger the exchange settles against
type LedgerKeeper interface {
	BalanceOf(ctx context.Context, denom string, owner sdk.AccAddress) math.Int
	Transfer(ctx context.Context, denom string, from, to sdk.AccAddress, amount math.Int) error
	TransferFrom(ctx context.Context, denom string, spender, from, to sdk.AccAddress, amount math.Int) error
}

// RegistryKeeper defines the registry lookups an exchange relies on
type RegistryKeeper interface {
	GetExchange(ctx context.Context, registry sdk.AccAddress, token string) sdk.AccAddress
}
