package keeper

import (
	"testing"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"
	"github.com/stretchr/testify/require"

	exchangekeeper "github.com/paw-chain/pawswap/x/exchange/keeper"
	exchangetypes "github.com/paw-chain/pawswap/x/exchange/types"
	factorykeeper "github.com/paw-chain/pawswap/x/factory/keeper"
	factorytypes "github.com/paw-chain/pawswap/x/factory/types"
	ledgerkeeper "github.com/paw-chain/pawswap/x/ledger/keeper"
	ledgertypes "github.com/paw-chain/pawswap/x/ledger/types"
)

// GenesisTime is the block time of every fixture context
var GenesisTime = time.Unix(1_700_000_000, 0).UTC()

// Deadline is a deadline comfortably after GenesisTime
var Deadline = uint64(GenesisTime.Unix()) + 300

// ExchangeFixture bundles the ledger, exchange and factory keepers over one store
type ExchangeFixture struct {
	Ctx            sdk.Context
	LedgerKeeper   *ledgerkeeper.Keeper
	ExchangeKeeper *exchangekeeper.Keeper
	FactoryKeeper  factorykeeper.Keeper
	Registry       sdk.AccAddress
}

// ExchangeKeepers creates wired test keepers backed by an in-memory store,
// with the default registry initialized.
func ExchangeKeepers(t testing.TB) *ExchangeFixture {
	ledgerKey := storetypes.NewKVStoreKey(ledgertypes.StoreKey)
	exchangeKey := storetypes.NewKVStoreKey(exchangetypes.StoreKey)
	factoryKey := storetypes.NewKVStoreKey(factorytypes.StoreKey)

	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(ledgerKey, storetypes.StoreTypeIAVL, db)
	stateStore.MountStoreWithDB(exchangeKey, storetypes.StoreTypeIAVL, db)
	stateStore.MountStoreWithDB(factoryKey, storetypes.StoreTypeIAVL, db)
	require.NoError(t, stateStore.LoadLatestVersion())

	ledgerKeeper := ledgerkeeper.NewKeeper(ledgerKey)
	exchangeKeeper := exchangekeeper.NewKeeper(exchangeKey, ledgerKeeper)
	factoryKeeper := factorykeeper.NewKeeper(factoryKey, exchangeKeeper)
	exchangeKeeper.SetRegistryKeeper(factoryKeeper)

	ctx := sdk.NewContext(stateStore, cmtproto.Header{Time: GenesisTime}, false, log.NewNopLogger()).
		WithBlockTime(GenesisTime)

	registry, err := factoryKeeper.InitDefaultRegistry(ctx)
	require.NoError(t, err)

	return &ExchangeFixture{
		Ctx:            ctx,
		LedgerKeeper:   ledgerKeeper,
		ExchangeKeeper: exchangeKeeper,
		FactoryKeeper:  factoryKeeper,
		Registry:       registry,
	}
}

// LedgerKeeper creates a standalone ledger keeper backed by an in-memory store
func LedgerKeeper(t testing.TB) (*ledgerkeeper.Keeper, sdk.Context) {
	f := ExchangeKeepers(t)
	return f.LedgerKeeper, f.Ctx
}

// Addr derives a deterministic test address from a name
func Addr(name string) sdk.AccAddress {
	return sdk.AccAddress(address.Hash("pawswap/test", []byte(name)))
}

// Fund mints amount of denom to owner
func (f *ExchangeFixture) Fund(t testing.TB, owner sdk.AccAddress, denom string, amount int64) {
	require.NoError(t, f.LedgerKeeper.Mint(f.Ctx, denom, owner, math.NewInt(amount)))
}

// Approve lets exchange pull up to amount of owner's token
func (f *ExchangeFixture) Approve(t testing.TB, owner, exchange sdk.AccAddress, token string, amount int64) {
	require.NoError(t, f.LedgerKeeper.Approve(f.Ctx, token, owner, exchange, math.NewInt(amount)))
}

// CreateExchange lists token in the default registry
func (f *ExchangeFixture) CreateExchange(t testing.TB, token string) sdk.AccAddress {
	exchange, err := f.FactoryKeeper.CreateExchange(f.Ctx, f.Registry, token)
	require.NoError(t, err)
	return exchange
}

// CreatePool creates an exchange for token and bootstraps it with the given
// reserves deposited by provider. The minimum initial deposit is lowered to
// one unit so small reserves can be used.
func (f *ExchangeFixture) CreatePool(t testing.TB, provider sdk.AccAddress, token string, ethReserve, tokenReserve int64) sdk.AccAddress {
	require.NoError(t, f.ExchangeKeeper.SetParams(f.Ctx, exchangetypes.Params{MinInitialDeposit: math.OneInt()}))

	exchange := f.CreateExchange(t, token)
	f.Fund(t, provider, exchangetypes.NativeDenom, ethReserve)
	f.Fund(t, provider, token, tokenReserve)
	f.Approve(t, provider, exchange, token, tokenReserve)

	_, err := f.ExchangeKeeper.AddLiquidity(f.Ctx, exchange, provider,
		math.NewInt(ethReserve), math.OneInt(), math.NewInt(tokenReserve), Deadline)
	require.NoError(t, err)
	return exchange
}

// Balance returns owner's ledger balance of denom
func (f *ExchangeFixture) Balance(owner sdk.AccAddress, denom string) math.Int {
	return f.LedgerKeeper.BalanceOf(f.Ctx, denom, owner)
}
