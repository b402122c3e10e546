package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/exchange/types"
)

// AddLiquidity deposits ethIn of the base asset, together with a matching
// amount of the exchange's token, and mints liquidity shares to provider.
//
// The first deposit into an empty pool sets the price: it pulls exactly
// maxTokens and mints shares equal to ethIn. Later deposits pull tokens in
// proportion to the reserves and mint shares in proportion to the supply.
// The exchange must be approved to pull the provider's tokens.
func (k Keeper) AddLiquidity(
	ctx context.Context,
	exchange, provider sdk.AccAddress,
	ethIn, minShares, maxTokens math.Int,
	deadline uint64,
) (math.Int, error) {
	var minted math.Int
	err := k.atomic(ctx, func(ctx sdk.Context) error {
		token, err := k.mustBeReady(ctx, exchange)
		if err != nil {
			return err
		}
		if err := runGuards(ctx,
			deadlineGuard(deadline),
			positiveGuard("max tokens", maxTokens),
			positiveGuard("base amount", ethIn),
		); err != nil {
			return err
		}

		if err := k.lockExchange(ctx, exchange); err != nil {
			return err
		}
		defer k.unlockExchange(ctx, exchange)

		// payable: the base asset is credited before the pool math runs
		if err := k.ledger.Transfer(ctx, types.NativeDenom, provider, exchange, ethIn); err != nil {
			return err
		}

		totalShares := k.TotalShares(ctx, exchange)
		var tokenAmount math.Int
		if totalShares.IsPositive() {
			if err := positiveGuard("min shares", minShares)(ctx); err != nil {
				return err
			}

			ethReserve := k.ledger.BalanceOf(ctx, types.NativeDenom, exchange).Sub(ethIn)
			tokenReserve := k.ledger.BalanceOf(ctx, token, exchange)

			if tokenAmount, err = types.MulDiv(ethIn, tokenReserve, ethReserve); err != nil {
				return err
			}
			if minted, err = types.MulDiv(ethIn, totalShares, ethReserve); err != nil {
				return err
			}
			if tokenAmount.GT(maxTokens) {
				return types.ErrExceededSold.Wrapf("deposit requires %s%s, max %s", tokenAmount, token, maxTokens)
			}
			if minted.LT(minShares) {
				return types.ErrInsufficientMinted.Wrapf("deposit mints %s shares, min %s", minted, minShares)
			}
		} else {
			minDeposit := k.GetParams(ctx).MinInitialDeposit
			if ethIn.LT(minDeposit) {
				return types.ErrInsufficientDeposit.Wrapf("initial deposit %s%s, min %s", ethIn, types.NativeDenom, minDeposit)
			}

			registry := k.FactoryAddress(ctx, exchange)
			if registered := k.registry.GetExchange(ctx, registry, token); !registered.Equals(exchange) {
				panic(fmt.Sprintf("registry %s maps token %s to %s, not to exchange %s", registry, token, registered, exchange))
			}

			tokenAmount = maxTokens
			minted = ethIn
		}

		// shares are minted before tokens are pulled
		if err := k.mintShares(ctx, exchange, provider, minted); err != nil {
			return err
		}
		if err := k.ledger.TransferFrom(ctx, token, exchange, provider, exchange, tokenAmount); err != nil {
			return err
		}

		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeAddLiquidity,
				sdk.NewAttribute(types.AttributeKeyExchange, exchange.String()),
				sdk.NewAttribute(types.AttributeKeyProvider, provider.String()),
				sdk.NewAttribute(types.AttributeKeyEthAmount, ethIn.String()),
				sdk.NewAttribute(types.AttributeKeyTokenAmount, tokenAmount.String()),
			),
		)
		k.metrics.LiquidityAdded.WithLabelValues(token).Inc()
		k.recordReserves(ctx, exchange, token)
		return nil
	})
	if err != nil {
		return math.Int{}, err
	}

	return minted, nil
}

// RemoveLiquidity burns shares and pays the provider the matching fraction of
// both reserves.
func (k Keeper) RemoveLiquidity(
	ctx context.Context,
	exchange, provider sdk.AccAddress,
	shares, minEth, minTokens math.Int,
	deadline uint64,
) (math.Int, math.Int, error) {
	var ethOut, tokenOut math.Int
	err := k.atomic(ctx, func(ctx sdk.Context) error {
		token, err := k.mustBeReady(ctx, exchange)
		if err != nil {
			return err
		}
		if err := runGuards(ctx,
			deadlineGuard(deadline),
			positiveGuard("shares", shares),
			positiveGuard("min base amount", minEth),
			positiveGuard("min tokens", minTokens),
		); err != nil {
			return err
		}

		if err := k.lockExchange(ctx, exchange); err != nil {
			return err
		}
		defer k.unlockExchange(ctx, exchange)

		totalShares := k.TotalShares(ctx, exchange)
		if !totalShares.IsPositive() {
			return types.ErrInsufficientLiquidity.Wrapf("exchange %s has no shares outstanding", exchange)
		}

		ethReserve := k.ledger.BalanceOf(ctx, types.NativeDenom, exchange)
		tokenReserve := k.ledger.BalanceOf(ctx, token, exchange)

		if ethOut, err = types.MulDiv(shares, ethReserve, totalShares); err != nil {
			return err
		}
		if tokenOut, err = types.MulDiv(shares, tokenReserve, totalShares); err != nil {
			return err
		}
		if ethOut.LT(minEth) {
			return types.ErrInsufficientBought.Wrapf("withdrawal pays %s%s, min %s", ethOut, types.NativeDenom, minEth)
		}
		if tokenOut.LT(minTokens) {
			return types.ErrInsufficientBought.Wrapf("withdrawal pays %s%s, min %s", tokenOut, token, minTokens)
		}

		// burn-then-pay
		if err := k.burnShares(ctx, exchange, provider, shares); err != nil {
			return err
		}
		if err := k.ledger.Transfer(ctx, types.NativeDenom, exchange, provider, ethOut); err != nil {
			return err
		}
		if err := k.ledger.Transfer(ctx, token, exchange, provider, tokenOut); err != nil {
			return err
		}

		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeRemoveLiquidity,
				sdk.NewAttribute(types.AttributeKeyExchange, exchange.String()),
				sdk.NewAttribute(types.AttributeKeyProvider, provider.String()),
				sdk.NewAttribute(types.AttributeKeyEthAmount, ethOut.String()),
				sdk.NewAttribute(types.AttributeKeyTokenAmount, tokenOut.String()),
			),
		)
		k.metrics.LiquidityRemoved.WithLabelValues(token).Inc()
		k.recordReserves(ctx, exchange, token)
		return nil
	})
	if err != nil {
		return math.Int{}, math.Int{}, err
	}

	return ethOut, tokenOut, nil
}
