package keeper

import (
	"context"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/ledger/types"
)

// Keeper of the asset ledger store. It holds fungible balances for the base
// asset and every token traded against it.
type Keeper struct {
	storeKey storetypes.StoreKey
	hooks    types.TransferHook
}

// NewKeeper creates a new ledger Keeper instance
func NewKeeper(key storetypes.StoreKey) *Keeper {
	return &Keeper{storeKey: key}
}

// SetHooks installs the transfer hooks. It panics if hooks were already set.
func (k *Keeper) SetHooks(hooks ...types.TransferHook) *Keeper {
	if k.hooks != nil {
		panic("cannot set ledger transfer hooks twice")
	}
	k.hooks = types.NewMultiTransferHooks(hooks...)
	return k
}

// Logger returns a module-specific logger.
func (k Keeper) Logger(ctx context.Context) log.Logger {
	return sdk.UnwrapSDKContext(ctx).Logger().With("module", "x/"+types.ModuleName)
}

// getStore returns the KVStore for the ledger module
func (k Keeper) getStore(ctx context.Context) storetypes.KVStore {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return sdkCtx.KVStore(k.storeKey)
}
