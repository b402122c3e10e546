package keeper

import (
	"context"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/exchange/types"
)

// Keeper of the exchange store. One keeper serves every exchange instance;
// each operation names the instance it acts on by address.
type Keeper struct {
	storeKey storetypes.StoreKey
	ledger   types.LedgerKeeper
	registry types.RegistryKeeper
	metrics  *ExchangeMetrics
}

// NewKeeper creates a new exchange Keeper instance. The registry keeper is
// wired afterwards with SetRegistryKeeper since the registry depends on the
// exchange keeper in turn.
func NewKeeper(key storetypes.StoreKey, ledger types.LedgerKeeper) *Keeper {
	return &Keeper{
		storeKey: key,
		ledger:   ledger,
		metrics:  NewExchangeMetrics(),
	}
}

// SetRegistryKeeper wires the registry. It panics if called twice.
func (k *Keeper) SetRegistryKeeper(registry types.RegistryKeeper) *Keeper {
	if k.registry != nil {
		panic("registry keeper already set")
	}
	k.registry = registry
	return k
}

// NativeDenom returns the base asset denom every exchange trades against.
func (k Keeper) NativeDenom() string {
	return types.NativeDenom
}

// Logger returns a module-specific logger.
func (k Keeper) Logger(ctx context.Context) log.Logger {
	return sdk.UnwrapSDKContext(ctx).Logger().With("module", "x/"+types.ModuleName)
}

// getStore returns the KVStore for the exchange module
func (k Keeper) getStore(ctx context.Context) storetypes.KVStore {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return sdkCtx.KVStore(k.storeKey)
}

// atomic runs fn against a cached branch of ctx. State and events reach the
// parent context only if fn returns nil.
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
