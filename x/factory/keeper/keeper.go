package keeper

import (
	"context"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/factory/types"
)

// Keeper of the factory store. It creates exchanges and indexes them per registry.
type Keeper struct {
	storeKey       storetypes.StoreKey
	exchangeKeeper types.ExchangeKeeper
	metrics        *FactoryMetrics
}

// NewKeeper creates a new factory Keeper instance
func NewKeeper(key storetypes.StoreKey, exchangeKeeper types.ExchangeKeeper) Keeper {
	return Keeper{
		storeKey:       key,
		exchangeKeeper: exchangeKeeper,
		metrics:        NewFactoryMetrics(),
	}
}

// Logger returns a module-specific logger.
func (k Keeper) Logger(ctx context.Context) log.Logger {
	return sdk.UnwrapSDKContext(ctx).Logger().With("module", "x/"+types.ModuleName)
}

// getStore returns the KVStore for the factory module
func (k Keeper) getStore(ctx context.Context) storetypes.KVStore {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return sdkCtx.KVStore(k.storeKey)
}

// atomic runs fn against a cached branch of ctx and commits only on success.
func (k Keeper) atomic(ctx context.Context, fn func(ctx sdk.Context) error) error {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	cacheCtx, writeFn := sdkCtx.CacheContext()
	em := sdk.NewEventManager()
	cacheCtx = cacheCtx.WithEventManager(em)

	if err := fn(cacheCtx); err != nil {
		return err
	}

	writeFn()
	sdkCtx.EventManager().EmitEvents(em.Events())
	return nil
}
