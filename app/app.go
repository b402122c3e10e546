// Package app mounts the pawswap stores, wires the ledger, exchange and
// factory keepers together and drives them one block at a time.
//
// Every mutation runs through Execute: the supplied function receives a
// branched context, and the branch is written and committed as a new store
// version only if the function and every registered invariant succeed.
// Queries run through Query over a branch that is always discarded.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"

	exchangekeeper "github.com/paw-chain/pawswap/x/exchange/keeper"
	exchangetypes "github.com/paw-chain/pawswap/x/exchange/types"
	factorykeeper "github.com/paw-chain/pawswap/x/factory/keeper"
	factorytypes "github.com/paw-chain/pawswap/x/factory/types"
	ledgerkeeper "github.com/paw-chain/pawswap/x/ledger/keeper"
	ledgertypes "github.com/paw-chain/pawswap/x/ledger/types"
)

const (
	// Name is the application name
	Name = "pawswap"

	// ChainID is the chain id stamped on every block header
	ChainID = "pawswap-sandbox-1"
)

// DefaultNodeHome is the default home directory for the application daemon.
var DefaultNodeHome string

func init() {
	userHomeDir, err := os.UserHomeDir()
	if err != nil {
		panic(err)
	}
	DefaultNodeHome = filepath.Join(userHomeDir, "."+Name)
}

// App is the pawswap state machine.
type App struct {
	mu sync.RWMutex

	logger log.Logger
	db     dbm.DB
	cms    storetypes.CommitMultiStore
	keys   map[string]*storetypes.KVStoreKey

	invariants *invariantRegistry

	LedgerKeeper   *ledgerkeeper.Keeper
	ExchangeKeeper *exchangekeeper.Keeper
	FactoryKeeper  factorykeeper.Keeper
}

// New mounts the module stores on db, loads the latest committed version and
// wires the keepers.
func New(logger log.Logger, db dbm.DB) (*App, error) {
	keys := storetypes.NewKVStoreKeys(ledgertypes.StoreKey, exchangetypes.StoreKey, factorytypes.StoreKey)

	cms := store.NewCommitMultiStore(db, logger, metrics.NewNoOpMetrics())
	for _, key := range keys {
		cms.MountStoreWithDB(key, storetypes.StoreTypeIAVL, nil)
	}
	if err := cms.LoadLatestVersion(); err != nil {
		return nil, fmt.Errorf("failed to load state: %w", err)
	}

	app := &App{
		logger:     logger,
		db:         db,
		cms:        cms,
		keys:       keys,
		invariants: newInvariantRegistry(),
	}

	app.LedgerKeeper = ledgerkeeper.NewKeeper(keys[ledgertypes.StoreKey])
	app.ExchangeKeeper = exchangekeeper.NewKeeper(keys[exchangetypes.StoreKey], app.LedgerKeeper)
	app.FactoryKeeper = factorykeeper.NewKeeper(keys[factorytypes.StoreKey], app.ExchangeKeeper)
	app.ExchangeKeeper.SetRegistryKeeper(app.FactoryKeeper)

	ledgerkeeper.RegisterInvariants(app.invariants, *app.LedgerKeeper)
	exchangekeeper.RegisterInvariants(app.invariants, *app.ExchangeKeeper)
	factorykeeper.RegisterInvariants(app.invariants, app.FactoryKeeper)

	return app, nil
}

// Logger returns the application logger.
func (app *App) Logger() log.Logger {
	return app.logger
}

// Height returns the height of the last committed block.
func (app *App) Height() int64 {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.height()
}

func (app *App) height() int64 {
	return app.cms.LastCommitID().Version
}

// Initialized reports whether InitChain has been committed.
func (app *App) Initialized() bool {
	return app.Height() > 0
}

// InitChain creates the default registry and stores the exchange params as
// the first block.
func (app *App) InitChain(genesisTime time.Time, minInitialDeposit math.Int) error {
	if app.Initialized() {
		return fmt.Errorf("state already initialized at height %d", app.Height())
	}

	params := exchangetypes.DefaultParams()
	if !minInitialDeposit.IsNil() {
		params.MinInitialDeposit = minInitialDeposit
	}

	return app.Execute(genesisTime, func(ctx sdk.Context) error {
		if err := app.ExchangeKeeper.SetParams(ctx, params); err != nil {
			return err
		}
		_, err := app.FactoryKeeper.InitDefaultRegistry(ctx)
		return err
	})
}

// Execute runs fn as the next block at blockTime. State changes and events
// are kept only when fn returns nil and all invariants hold afterwards.
func (app *App) Execute(blockTime time.Time, fn func(ctx sdk.Context) error) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	ctx := app.newContext(blockTime)
	cacheCtx, write := ctx.CacheContext()

	if err := fn(cacheCtx); err != nil {
		return err
	}
	if err := app.AssertInvariants(cacheCtx); err != nil {
		return err
	}

	write()
	commitID := app.cms.Commit()
	app.logger.Debug("committed block", "height", commitID.Version, "events", len(cacheCtx.EventManager().Events()))
	return nil
}

// Query runs fn against the latest state. Writes made by fn are discarded.
func (app *App) Query(fn func(ctx sdk.Context) error) error {
	app.mu.RLock()
	defer app.mu.RUnlock()

	ctx := app.newContext(time.Now().UTC())
	cacheCtx, _ := ctx.CacheContext()
	return fn(cacheCtx)
}

// AssertInvariants runs every registered invariant and fails on the first
// broken one.
func (app *App) AssertInvariants(ctx sdk.Context) error {
	for _, route := range app.invariants.routes {
		if msg, broken := route.invariant(ctx); broken {
			return fmt.Errorf("invariant broken: %s/%s: %s", route.module, route.route, msg)
		}
	}
	return nil
}

// Close releases the underlying database.
func (app *App) Close() error {
	return app.db.Close()
}

func (app *App) newContext(blockTime time.Time) sdk.Context {
	header := cmtproto.Header{
		ChainID: ChainID,
		Height:  app.height() + 1,
		Time:    blockTime,
	}
	return sdk.NewContext(app.cms, header, false, app.logger).WithBlockTime(blockTime)
}
