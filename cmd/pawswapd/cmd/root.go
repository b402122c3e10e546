package cmd

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"cosmossdk.io/log"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/paw-chain/pawswap/app"
)

const (
	flagBlockTime = "block-time"
	flagDeadline  = "deadline"
	flagRecipient = "recipient"

	// defaultTTL is how far past the block time a trade stays valid when no
	// --deadline is given.
	defaultTTL = 5 * time.Minute
)

var sdkConfigOnce sync.Once

func initSDKConfig() {
	sdkConfigOnce.Do(app.SetConfig)
}

// node carries the resolved configuration shared by every subcommand.
type node struct {
	v      *viper.Viper
	cfg    app.Config
	logger log.Logger
}

// NewRootCmd creates the pawswapd root command.
func NewRootCmd() *cobra.Command {
	initSDKConfig()

	n := &node{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "pawswapd",
		Short: "PAW Swap sandbox node",
		Long: `pawswapd runs constant-product exchanges between the native asset and
registered tokens against a local state database, and serves a read-only API
over that state.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SetOut(cmd.OutOrStdout())
			cmd.SetErr(cmd.ErrOrStderr())
			return n.load(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String(app.KeyHome, app.DefaultNodeHome, "directory for config and data")
	flags.String(app.KeyLogLevel, "info", "log level (trace|debug|info|warn|error)")
	flags.String(app.KeyLogFormat, app.LogFormatPlain, "log format (plain|json)")
	flags.String(app.KeyDBBackend, "goleveldb", "state database backend (goleveldb|memdb)")
	flags.Int64(flagBlockTime, 0, "unix time of the executed block; 0 uses the wall clock")
	for _, key := range []string{app.KeyHome, app.KeyLogLevel, app.KeyLogFormat, app.KeyDBBackend} {
		if err := n.v.BindPFlag(key, flags.Lookup(key)); err != nil {
			panic(err)
		}
	}
	if err := n.v.BindPFlag(flagBlockTime, flags.Lookup(flagBlockTime)); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(
		InitCmd(n),
		MintCmd(n),
		ApproveCmd(n),
		CreateRegistryCmd(n),
		CreateExchangeCmd(n),
		AddLiquidityCmd(n),
		RemoveLiquidityCmd(n),
		SwapCmd(n),
		RouteCmd(n),
		QueryCmd(n),
		ServeCmd(n),
	)

	return rootCmd
}

func (n *node) load(cmd *cobra.Command) error {
	cfg, err := app.ReadConfig(n.v)
	if err != nil {
		return err
	}
	logger, err := app.NewLogger(cmd.ErrOrStderr(), cfg)
	if err != nil {
		return err
	}
	n.cfg = cfg
	n.logger = logger
	return nil
}

// blockTime returns the time of the block the command executes in.
func (n *node) blockTime() (time.Time, error) {
	unix, err := cast.ToInt64E(n.v.Get(flagBlockTime))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s: %w", flagBlockTime, err)
	}
	if unix <= 0 {
		return time.Now().UTC(), nil
	}
	return time.Unix(unix, 0).UTC(), nil
}

// openApp opens the state database. Unless allowFresh is set the state must
// have been initialized with `pawswapd init`.
func (n *node) openApp(allowFresh bool) (*app.App, error) {
	db, err := app.OpenDB(n.cfg)
	if err != nil {
		return nil, err
	}
	a, err := app.New(n.logger, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if !allowFresh && !a.Initialized() {
		_ = a.Close()
		return nil, fmt.Errorf("state at %s is not initialized, run `pawswapd init` first", n.cfg.Home)
	}
	return a, nil
}

// execute runs fn as one block and prints its result.
func (n *node) execute(cmd *cobra.Command, fn func(ctx sdk.Context, a *app.App) (any, error)) error {
	blockTime, err := n.blockTime()
	if err != nil {
		return err
	}

	a, err := n.openApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	var result any
	err = a.Execute(blockTime, func(ctx sdk.Context) error {
		var err error
		result, err = fn(ctx, a)
		return err
	})
	if err != nil {
		return err
	}
	return printJSON(cmd, result)
}

// query runs fn against the latest state and prints its result.
func (n *node) query(cmd *cobra.Command, fn func(ctx sdk.Context, a *app.App) (any, error)) error {
	a, err := n.openApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	var result any
	err = a.Query(func(ctx sdk.Context) error {
		var err error
		result, err = fn(ctx, a)
		return err
	})
	if err != nil {
		return err
	}
	return printJSON(cmd, result)
}

// deadline resolves --deadline, defaulting to the block time plus defaultTTL.
func deadline(cmd *cobra.Command, ctx sdk.Context) (uint64, error) {
	d, err := cmd.Flags().GetUint64(flagDeadline)
	if err != nil {
		return 0, err
	}
	if d == 0 {
		d = uint64(ctx.BlockTime().Add(defaultTTL).Unix())
	}
	return d, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
