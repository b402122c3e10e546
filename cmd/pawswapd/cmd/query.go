package cmd

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cobra"

	"github.com/paw-chain/pawswap/api"
	"github.com/paw-chain/pawswap/app"
	factorytypes "github.com/paw-chain/pawswap/x/factory/types"
)

// QueryCmd groups the read-only subcommands.
func QueryCmd(n *node) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "query",
		Aliases: []string{"q"},
		Short:   "Query exchanges, prices, balances and registries",
	}
	cmd.AddCommand(
		queryExchangeCmd(n),
		queryPriceCmd(n),
		queryBalanceCmd(n),
		querySharesCmd(n),
		queryRegistryCmd(n),
	)
	return cmd
}

func queryExchangeCmd(n *node) *cobra.Command {
	return &cobra.Command{
		Use:   "exchange [exchange|token]",
		Short: "Show an exchange with its reserves and share supply",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return n.query(cmd, func(ctx sdk.Context, a *app.App) (any, error) {
				exchange, err := parseExchange(ctx, a, args[0])
				if err != nil {
					return nil, err
				}
				return a.ExchangeKeeper.GetExchangeInfo(ctx, exchange)
			})
		},
	}
}

func queryPriceCmd(n *node) *cobra.Command {
	return &cobra.Command{
		Use: fmt.Sprintf("price [exchange|token] [%s|%s|%s|%s] [amount]",
			api.PriceEthToTokenInput, api.PriceEthToTokenOutput, api.PriceTokenToEthInput, api.PriceTokenToEthOutput),
		Short: "Quote a trade against current reserves",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount("amount", args[2])
			if err != nil {
				return err
			}
			return n.query(cmd, func(ctx sdk.Context, a *app.App) (any, error) {
				exchange, err := parseExchange(ctx, a, args[0])
				if err != nil {
					return nil, err
				}

				k := a.ExchangeKeeper
				var price math.Int
				switch args[1] {
				case api.PriceEthToTokenInput:
					price, err = k.GetEthToTokenInputPrice(ctx, exchange, amount)
				case api.PriceEthToTokenOutput:
					price, err = k.GetEthToTokenOutputPrice(ctx, exchange, amount)
				case api.PriceTokenToEthInput:
					price, err = k.GetTokenToEthInputPrice(ctx, exchange, amount)
				case api.PriceTokenToEthOutput:
					price, err = k.GetTokenToEthOutputPrice(ctx, exchange, amount)
				default:
					return nil, fmt.Errorf("unknown price kind %q", args[1])
				}
				if err != nil {
					return nil, err
				}
				return api.PriceResponse{
					Exchange: exchange.String(),
					Kind:     args[1],
					Amount:   amount.String(),
					Price:    price.String(),
				}, nil
			})
		},
	}
}

func queryBalanceCmd(n *node) *cobra.Command {
	return &cobra.Command{
		Use:   "balance [account] [denom]",
		Short: "Show a ledger balance",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := parseAccount(args[0])
			if err != nil {
				return err
			}
			return n.query(cmd, func(ctx sdk.Context, a *app.App) (any, error) {
				return api.BalanceResponse{
					Owner:   owner.String(),
					Denom:   args[1],
					Balance: a.LedgerKeeper.BalanceOf(ctx, args[1], owner).String(),
				}, nil
			})
		},
	}
}

func querySharesCmd(n *node) *cobra.Command {
	return &cobra.Command{
		Use:   "shares [exchange|token] [account]",
		Short: "Show an account's liquidity shares",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := parseAccount(args[1])
			if err != nil {
				return err
			}
			return n.query(cmd, func(ctx sdk.Context, a *app.App) (any, error) {
				exchange, err := parseExchange(ctx, a, args[0])
				if err != nil {
					return nil, err
				}
				return map[string]any{
					"exchange":     exchange.String(),
					"account":      owner.String(),
					"shares":       a.ExchangeKeeper.ShareBalanceOf(ctx, exchange, owner).String(),
					"total_shares": a.ExchangeKeeper.TotalShares(ctx, exchange).String(),
				}, nil
			})
		},
	}
}

func queryRegistryCmd(n *node) *cobra.Command {
	return &cobra.Command{
		Use:   "registry [label|address]",
		Short: "List the exchanges of a registry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := parseRegistry(args[0])
			if err != nil {
				return err
			}
			return n.query(cmd, func(ctx sdk.Context, a *app.App) (any, error) {
				fk := a.FactoryKeeper
				if !fk.HasRegistry(ctx, registry) {
					return nil, factorytypes.ErrRegistryNotFound.Wrapf("registry %s", args[0])
				}
				resp := api.RegistryExchangesResponse{
					Registry:   registry.String(),
					Label:      fk.RegistryLabel(ctx, registry),
					TokenCount: fk.TokenCount(ctx, registry),
					Exchanges:  []api.RegistryExchange{},
				}
				var iterErr error
				fk.IterateExchanges(ctx, registry, func(record factorytypes.ExchangeRecord) bool {
					info, err := a.ExchangeKeeper.GetExchangeInfo(ctx, record.Exchange)
					if err != nil {
						iterErr = err
						return true
					}
					resp.Exchanges = append(resp.Exchanges, api.RegistryExchange{ID: record.ID, ExchangeInfo: info})
					return false
				})
				return resp, iterErr
			})
		},
	}
}
