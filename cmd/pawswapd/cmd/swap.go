package cmd

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cobra"

	"github.com/paw-chain/pawswap/app"
	exchangekeeper "github.com/paw-chain/pawswap/x/exchange/keeper"
)

const (
	directionEthToToken = "eth-to-token"
	directionTokenToEth = "token-to-eth"
	modeInput           = "input"
	modeOutput          = "output"
)

// tradeFunc is one swap variant, with amount the exact side and limit the
// bound on the other side.
type tradeFunc func(ctx context.Context, exchange, trader sdk.AccAddress, amount, limit math.Int, deadline uint64, recipient sdk.AccAddress) (math.Int, error)

func swapFuncs(k *exchangekeeper.Keeper) map[string]tradeFunc {
	return map[string]tradeFunc{
		directionEthToToken + "/" + modeInput: func(ctx context.Context, exchange, trader sdk.AccAddress, value, minTokens math.Int, deadline uint64, recipient sdk.AccAddress) (math.Int, error) {
			if recipient == nil {
				return k.EthToTokenSwapInput(ctx, exchange, trader, value, minTokens, deadline)
			}
			return k.EthToTokenTransferInput(ctx, exchange, trader, value, minTokens, deadline, recipient)
		},
		directionEthToToken + "/" + modeOutput: func(ctx context.Context, exchange, trader sdk.AccAddress, tokensBought, maxEth math.Int, deadline uint64, recipient sdk.AccAddress) (math.Int, error) {
			if recipient == nil {
				return k.EthToTokenSwapOutput(ctx, exchange, trader, maxEth, tokensBought, deadline)
			}
			return k.EthToTokenTransferOutput(ctx, exchange, trader, maxEth, tokensBought, deadline, recipient)
		},
		directionTokenToEth + "/" + modeInput: func(ctx context.Context, exchange, trader sdk.AccAddress, tokensSold, minEth math.Int, deadline uint64, recipient sdk.AccAddress) (math.Int, error) {
			if recipient == nil {
				return k.TokenToEthSwapInput(ctx, exchange, trader, tokensSold, minEth, deadline)
			}
			return k.TokenToEthTransferInput(ctx, exchange, trader, tokensSold, minEth, deadline, recipient)
		},
		directionTokenToEth + "/" + modeOutput: func(ctx context.Context, exchange, trader sdk.AccAddress, ethBought, maxTokens math.Int, deadline uint64, recipient sdk.AccAddress) (math.Int, error) {
			if recipient == nil {
				return k.TokenToEthSwapOutput(ctx, exchange, trader, ethBought, maxTokens, deadline)
			}
			return k.TokenToEthTransferOutput(ctx, exchange, trader, ethBought, maxTokens, deadline, recipient)
		},
	}
}

// SwapCmd trades between the base asset and an exchange's token.
func SwapCmd(n *node) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "swap [eth-to-token|token-to-eth] [input|output] [exchange|token] [trader] [amount] [limit]",
		Short: "Swap between the base asset and a token",
		Long: `Swap between the base asset and a token.

In input mode amount is exactly what the trader sells and limit is the minimum
bought. In output mode amount is exactly what the trader buys and limit is the
maximum sold. With --recipient the bought asset is paid to another account.`,
		Args: cobra.ExactArgs(6),
		RunE: func(cmd *cobra.Command, args []string) error {
			direction, mode := args[0], args[1]
			trader, err := parseAccount(args[3])
			if err != nil {
				return err
			}
			amounts, err := parseAmounts("amount", args[4], "limit", args[5])
			if err != nil {
				return err
			}
			recipient, err := recipientFlag(cmd)
			if err != nil {
				return err
			}

			return n.execute(cmd, func(ctx sdk.Context, a *app.App) (any, error) {
				trade, ok := swapFuncs(a.ExchangeKeeper)[direction+"/"+mode]
				if !ok {
					return nil, fmt.Errorf("unknown swap %s %s", direction, mode)
				}
				exchange, err := parseExchange(ctx, a, args[2])
				if err != nil {
					return nil, err
				}
				d, err := deadline(cmd, ctx)
				if err != nil {
					return nil, err
				}
				result, err := trade(ctx, exchange, trader, amounts[0], amounts[1], d, recipient)
				if err != nil {
					return nil, err
				}
				return tradeResult(exchange, direction, mode, amounts[0], result), nil
			})
		},
	}
	cmd.Flags().String(flagRecipient, "", "account paid the bought asset; defaults to the trader")
	cmd.Flags().Uint64(flagDeadline, 0, "unix deadline; defaults to block time plus five minutes")
	return cmd
}

// RouteCmd sells one exchange's token for another token through the base asset.
func RouteCmd(n *node) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "route [input|output] [exchange|token] [trader] [target-token|target-exchange] [amount] [token-limit] [eth-limit]",
		Short: "Trade one token for another through the base asset",
		Long: `Trade the token of the first exchange for the token of the target.

A target given as a token is resolved in the first exchange's registry; a
target given as an exchange address is used as is and may belong to another
registry. In input mode amount is the exact tokens sold, token-limit the
minimum tokens bought and eth-limit the minimum intermediate base asset. In
output mode amount is the exact tokens bought, token-limit the maximum tokens
sold and eth-limit the maximum intermediate base asset.`,
		Args: cobra.ExactArgs(7),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := args[0]
			if mode != modeInput && mode != modeOutput {
				return fmt.Errorf("unknown route mode %q", mode)
			}
			trader, err := parseAccount(args[2])
			if err != nil {
				return err
			}
			amounts, err := parseAmounts("amount", args[4], "token-limit", args[5], "eth-limit", args[6])
			if err != nil {
				return err
			}
			recipient, err := recipientFlag(cmd)
			if err != nil {
				return err
			}
			if recipient == nil {
				recipient = trader
			}

			return n.execute(cmd, func(ctx sdk.Context, a *app.App) (any, error) {
				k := a.ExchangeKeeper
				exchange, err := parseExchange(ctx, a, args[1])
				if err != nil {
					return nil, err
				}
				d, err := deadline(cmd, ctx)
				if err != nil {
					return nil, err
				}

				target, byAddress := args[3], false
				var targetAddr sdk.AccAddress
				if addr, err := sdk.AccAddressFromBech32(target); err == nil {
					targetAddr, byAddress = addr, true
				}

				var result math.Int
				switch {
				case mode == modeInput && byAddress:
					result, err = k.TokenToExchangeTransferInput(ctx, exchange, trader, amounts[0], amounts[1], amounts[2], d, recipient, targetAddr)
				case mode == modeInput:
					result, err = k.TokenToTokenTransferInput(ctx, exchange, trader, amounts[0], amounts[1], amounts[2], d, recipient, target)
				case byAddress:
					result, err = k.TokenToExchangeTransferOutput(ctx, exchange, trader, amounts[0], amounts[1], amounts[2], d, recipient, targetAddr)
				default:
					result, err = k.TokenToTokenTransferOutput(ctx, exchange, trader, amounts[0], amounts[1], amounts[2], d, recipient, target)
				}
				if err != nil {
					return nil, err
				}
				return tradeResult(exchange, "token-to-token", mode, amounts[0], result), nil
			})
		},
	}
	cmd.Flags().String(flagRecipient, "", "account paid the bought tokens; defaults to the trader")
	cmd.Flags().Uint64(flagDeadline, 0, "unix deadline; defaults to block time plus five minutes")
	return cmd
}

func recipientFlag(cmd *cobra.Command) (sdk.AccAddress, error) {
	raw, err := cmd.Flags().GetString(flagRecipient)
	if err != nil || raw == "" {
		return nil, err
	}
	return parseAccount(raw)
}

func tradeResult(exchange sdk.AccAddress, direction, mode string, amount, result math.Int) map[string]any {
	out := map[string]any{
		"exchange":  exchange.String(),
		"direction": direction,
		"mode":      mode,
	}
	if mode == modeInput {
		out["sold"], out["bought"] = amount.String(), result.String()
	} else {
		out["sold"], out["bought"] = result.String(), amount.String()
	}
	return out
}
