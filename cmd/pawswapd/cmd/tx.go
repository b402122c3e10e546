package cmd

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cobra"

	"github.com/paw-chain/pawswap/app"
)

const (
	flagMinInitialDeposit = "min-initial-deposit"
	flagRegistry          = "registry"
	flagMinShares         = "min-shares"
	flagMinEth            = "min-eth"
	flagMinTokens         = "min-tokens"
)

// InitCmd creates the default registry and writes config.toml.
func InitCmd(n *node) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the sandbox state and write the default config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			blockTime, err := n.blockTime()
			if err != nil {
				return err
			}

			a, err := n.openApp(true)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.InitChain(blockTime, n.cfg.Exchange.MinInitialDeposit); err != nil {
				return err
			}

			if err := app.WriteConfig(n.cfg); err != nil {
				return err
			}

			return printJSON(cmd, map[string]any{
				"home":                n.cfg.Home,
				"height":              a.Height(),
				"min_initial_deposit": n.cfg.Exchange.MinInitialDeposit.String(),
			})
		},
	}

	cmd.Flags().String(flagMinInitialDeposit, "", "minimum base deposit that bootstraps an exchange")
	if err := n.v.BindPFlag(app.KeyMinInitialDeposit, cmd.Flags().Lookup(flagMinInitialDeposit)); err != nil {
		panic(err)
	}
	return cmd
}

// MintCmd credits new units of a denom to an account.
func MintCmd(n *node) *cobra.Command {
	return &cobra.Command{
		Use:   "mint [denom] [account] [amount]",
		Short: "Mint units of a denom to an account",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := parseAccount(args[1])
			if err != nil {
				return err
			}
			amount, err := parseAmount("amount", args[2])
			if err != nil {
				return err
			}

			return n.execute(cmd, func(ctx sdk.Context, a *app.App) (any, error) {
				if err := a.LedgerKeeper.Mint(ctx, args[0], owner, amount); err != nil {
					return nil, err
				}
				return map[string]any{
					"account": owner.String(),
					"denom":   args[0],
					"balance": a.LedgerKeeper.BalanceOf(ctx, args[0], owner).String(),
				}, nil
			})
		},
	}
}

// ApproveCmd lets a spender, usually an exchange, move an owner's tokens.
func ApproveCmd(n *node) *cobra.Command {
	return &cobra.Command{
		Use:   "approve [owner] [spender] [denom] [amount]",
		Short: "Allow a spender to transfer up to amount of the owner's denom",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := parseAccount(args[0])
			if err != nil {
				return err
			}
			amount, err := parseAmount("amount", args[3])
			if err != nil {
				return err
			}

			return n.execute(cmd, func(ctx sdk.Context, a *app.App) (any, error) {
				spender, err := parseSpender(ctx, a, args[1])
				if err != nil {
					return nil, err
				}
				if err := a.LedgerKeeper.Approve(ctx, args[2], owner, spender, amount); err != nil {
					return nil, err
				}
				return map[string]any{
					"owner":     owner.String(),
					"spender":   spender.String(),
					"denom":     args[2],
					"allowance": amount.String(),
				}, nil
			})
		},
	}
}

// parseSpender resolves an account or, for a listed token, its exchange.
func parseSpender(ctx sdk.Context, a *app.App, arg string) (sdk.AccAddress, error) {
	if exchange, err := parseExchange(ctx, a, arg); err == nil {
		return exchange, nil
	}
	return parseAccount(arg)
}

// CreateRegistryCmd creates an additional registry.
func CreateRegistryCmd(n *node) *cobra.Command {
	return &cobra.Command{
		Use:   "create-registry [label]",
		Short: "Create a registry addressed by its label",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return n.execute(cmd, func(ctx sdk.Context, a *app.App) (any, error) {
				registry, err := a.FactoryKeeper.CreateRegistry(ctx, args[0])
				if err != nil {
					return nil, err
				}
				return map[string]any{"registry": registry.String(), "label": args[0]}, nil
			})
		},
	}
}

// CreateExchangeCmd lists a token in a registry.
func CreateExchangeCmd(n *node) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-exchange [token]",
		Short: "Create the exchange for a token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			label, _ := cmd.Flags().GetString(flagRegistry)
			registry, err := parseRegistry(label)
			if err != nil {
				return err
			}

			return n.execute(cmd, func(ctx sdk.Context, a *app.App) (any, error) {
				exchange, err := a.FactoryKeeper.CreateExchange(ctx, registry, args[0])
				if err != nil {
					return nil, err
				}
				return map[string]any{
					"registry": registry.String(),
					"token":    args[0],
					"exchange": exchange.String(),
					"token_id": a.FactoryKeeper.TokenCount(ctx, registry),
				}, nil
			})
		},
	}
	cmd.Flags().String(flagRegistry, "default", "registry label or address")
	return cmd
}

// AddLiquidityCmd deposits into an exchange.
func AddLiquidityCmd(n *node) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add-liquidity [exchange|token] [provider] [eth-amount] [max-tokens]",
		Short: "Deposit base asset and tokens in proportion to the reserves",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, err := parseAccount(args[1])
			if err != nil {
				return err
			}
			minShares, _ := cmd.Flags().GetString(flagMinShares)
			amounts, err := parseAmounts("eth-amount", args[2], "max-tokens", args[3], flagMinShares, minShares)
			if err != nil {
				return err
			}

			return n.execute(cmd, func(ctx sdk.Context, a *app.App) (any, error) {
				exchange, err := parseExchange(ctx, a, args[0])
				if err != nil {
					return nil, err
				}
				d, err := deadline(cmd, ctx)
				if err != nil {
					return nil, err
				}
				minted, err := a.ExchangeKeeper.AddLiquidity(ctx, exchange, provider, amounts[0], amounts[2], amounts[1], d)
				if err != nil {
					return nil, err
				}
				return map[string]any{
					"exchange": exchange.String(),
					"provider": provider.String(),
					"minted":   minted.String(),
					"shares":   a.ExchangeKeeper.ShareBalanceOf(ctx, exchange, provider).String(),
				}, nil
			})
		},
	}
	cmd.Flags().String(flagMinShares, "1", "minimum shares to mint; ignored on the first deposit")
	cmd.Flags().Uint64(flagDeadline, 0, "unix deadline; defaults to block time plus five minutes")
	return cmd
}

// RemoveLiquidityCmd burns shares for both reserves.
func RemoveLiquidityCmd(n *node) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove-liquidity [exchange|token] [provider] [shares]",
		Short: "Burn shares for the matching fraction of both reserves",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, err := parseAccount(args[1])
			if err != nil {
				return err
			}
			minEth, _ := cmd.Flags().GetString(flagMinEth)
			minTokens, _ := cmd.Flags().GetString(flagMinTokens)
			amounts, err := parseAmounts("shares", args[2], flagMinEth, minEth, flagMinTokens, minTokens)
			if err != nil {
				return err
			}

			return n.execute(cmd, func(ctx sdk.Context, a *app.App) (any, error) {
				exchange, err := parseExchange(ctx, a, args[0])
				if err != nil {
					return nil, err
				}
				d, err := deadline(cmd, ctx)
				if err != nil {
					return nil, err
				}
				ethOut, tokenOut, err := a.ExchangeKeeper.RemoveLiquidity(ctx, exchange, provider, amounts[0], amounts[1], amounts[2], d)
				if err != nil {
					return nil, err
				}
				return map[string]any{
					"exchange":     exchange.String(),
					"provider":     provider.String(),
					"eth_amount":   ethOut.String(),
					"token_amount": tokenOut.String(),
				}, nil
			})
		},
	}
	cmd.Flags().String(flagMinEth, "1", "minimum base asset to receive")
	cmd.Flags().String(flagMinTokens, "1", "minimum tokens to receive")
	cmd.Flags().Uint64(flagDeadline, 0, "unix deadline; defaults to block time plus five minutes")
	return cmd
}
