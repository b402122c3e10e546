package types

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// ExchangeKeeper instantiates and sets up exchange instances
type ExchangeKeeper interface {
	Instantiate(ctx context.Context, derivationKeys ...[]byte) (sdk.AccAddress, error)
	Setup(ctx context.Context, exchange, registry sdk.AccAddress, token string) error
	NativeDenom() string
}
