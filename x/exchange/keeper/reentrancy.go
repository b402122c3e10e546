package keeper

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/exchange/types"
)

// lockExchange marks an exchange as moving assets. The marker lives in the
// store so that it is visible to every nested cache context a transfer hook
// may open.
func (k Keeper) lockExchange(ctx context.Context, exchange sdk.AccAddress) error {
	store := k.getStore(ctx)
	key := ReentrancyLockKey(exchange)
	if store.Has(key) {
		return types.ErrReentrancy.Wrapf("exchange %s is mid-operation", exchange)
	}
	store.Set(key, []byte{0x01})
	return nil
}

// unlockExchange releases the lock taken by lockExchange.
func (k Keeper) unlockExchange(ctx context.Context, exchange sdk.AccAddress) {
	k.getStore(ctx).Delete(ReentrancyLockKey(exchange))
}

// isLocked reports whether an operation on exchange is in flight.
func (k Keeper) isLocked(ctx context.Context, exchange sdk.AccAddress) bool {
	return k.getStore(ctx).Has(ReentrancyLockKey(exchange))
}
