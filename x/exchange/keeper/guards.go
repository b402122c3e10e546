package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/exchange/types"
)

// guard is a precondition evaluated at the top of an operation, before any
// state is touched.
type guard func(ctx sdk.Context) error

func runGuards(ctx sdk.Context, guards ...guard) error {
	for _, g := range guards {
		if err := g(ctx); err != nil {
			return err
		}
	}
	return nil
}

// blockTime returns the context's block time in unix seconds, clamped at zero.
func blockTime(ctx sdk.Context) uint64 {
	now := ctx.BlockTime().Unix()
	if now < 0 {
		return 0
	}
	return uint64(now)
}

// deadlineGuard fails once the block time has moved past deadline.
func deadlineGuard(deadline uint64) guard {
	return func(ctx sdk.Context) error {
		if now := blockTime(ctx); now > deadline {
			return types.ErrExpired.Wrapf("deadline %d, block time %d", deadline, now)
		}
		return nil
	}
}

// positiveGuard rejects nil, zero and negative amounts.
func positiveGuard(name string, amount math.Int) guard {
	return func(sdk.Context) error {
		if amount.IsNil() || !amount.IsPositive() {
			return types.ErrInvalidAmount.Wrapf("%s must be positive, got %s", name, amount)
		}
		return nil
	}
}

// recipientGuard rejects the null identity and the exchange itself.
func recipientGuard(exchange, recipient sdk.AccAddress) guard {
	return func(sdk.Context) error {
		if recipient.Empty() {
			return types.ErrInvalidRecipient.Wrap("recipient cannot be empty")
		}
		if recipient.Equals(exchange) {
			return types.ErrInvalidRecipient.Wrapf("recipient cannot be the exchange %s", exchange)
		}
		return nil
	}
}

// exchangeGuard rejects a routing target that is null or the initiating exchange.
func exchangeGuard(self, target sdk.AccAddress) guard {
	return func(sdk.Context) error {
		if target.Empty() {
			return types.ErrInvalidExchange.Wrap("target exchange cannot be empty")
		}
		if target.Equals(self) {
			return types.ErrInvalidExchange.Wrapf("target exchange %s is the initiating exchange", target)
		}
		return nil
	}
}
