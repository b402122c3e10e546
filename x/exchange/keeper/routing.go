package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/exchange/types"
)

// Token to token trades route through the base asset: exchange A sells its
// token for the base asset, which it then spends on exchange B.

// TokenToTokenSwapInput sells exactly tokensSold of A's token for the token
// tokenAddr, routed through the exchange A's registry lists for it.
func (k Keeper) TokenToTokenSwapInput(
	ctx context.Context,
	exchange, buyer sdk.AccAddress,
	tokensSold, minTokensBought, minEthBought math.Int,
	deadline uint64,
	tokenAddr string,
) (math.Int, error) {
	return k.routeInputAtomic(ctx, exchange, buyer, tokensSold, minTokensBought, minEthBought, deadline, buyer, nil, tokenAddr)
}

// TokenToTokenTransferInput is TokenToTokenSwapInput paying recipient.
func (k Keeper) TokenToTokenTransferInput(
	ctx context.Context,
	exchange, buyer sdk.AccAddress,
	tokensSold, minTokensBought, minEthBought math.Int,
	deadline uint64,
	recipient sdk.AccAddress,
	tokenAddr string,
) (math.Int, error) {
	return k.routeInputAtomic(ctx, exchange, buyer, tokensSold, minTokensBought, minEthBought, deadline, recipient, nil, tokenAddr)
}

// TokenToTokenSwapOutput buys exactly tokensBought of tokenAddr for at most
// maxTokensSold of A's token. Returns the tokens sold.
func (k Keeper) TokenToTokenSwapOutput(
	ctx context.Context,
	exchange, buyer sdk.AccAddress,
	tokensBought, maxTokensSold, maxEthSold math.Int,
	deadline uint64,
	tokenAddr string,
) (math.Int, error) {
	return k.routeOutputAtomic(ctx, exchange, buyer, tokensBought, maxTokensSold, maxEthSold, deadline, buyer, nil, tokenAddr)
}

// TokenToTokenTransferOutput is TokenToTokenSwapOutput paying recipient.
func (k Keeper) TokenToTokenTransferOutput(
	ctx context.Context,
	exchange, buyer sdk.AccAddress,
	tokensBought, maxTokensSold, maxEthSold math.Int,
	deadline uint64,
	recipient sdk.AccAddress,
	tokenAddr string,
) (math.Int, error) {
	return k.routeOutputAtomic(ctx, exchange, buyer, tokensBought, maxTokensSold, maxEthSold, deadline, recipient, nil, tokenAddr)
}

// TokenToExchangeSwapInput routes through an explicit target exchange, which
// need not belong to A's registry.
func (k Keeper) TokenToExchangeSwapInput(
	ctx context.Context,
	exchange, buyer sdk.AccAddress,
	tokensSold, minTokensBought, minEthBought math.Int,
	deadline uint64,
	target sdk.AccAddress,
) (math.Int, error) {
	return k.routeInputAtomic(ctx, exchange, buyer, tokensSold, minTokensBought, minEthBought, deadline, buyer, target, "")
}

// TokenToExchangeTransferInput is TokenToExchangeSwapInput paying recipient.
func (k Keeper) TokenToExchangeTransferInput(
	ctx context.Context,
	exchange, buyer sdk.AccAddress,
	tokensSold, minTokensBought, minEthBought math.Int,
	deadline uint64,
	recipient, target sdk.AccAddress,
) (math.Int, error) {
	return k.routeInputAtomic(ctx, exchange, buyer, tokensSold, minTokensBought, minEthBought, deadline, recipient, target, "")
}

// TokenToExchangeSwapOutput routes an exact output trade through an explicit target exchange.
func (k Keeper) TokenToExchangeSwapOutput(
	ctx context.Context,
	exchange, buyer sdk.AccAddress,
	tokensBought, maxTokensSold, maxEthSold math.Int,
	deadline uint64,
	target sdk.AccAddress,
) (math.Int, error) {
	return k.routeOutputAtomic(ctx, exchange, buyer, tokensBought, maxTokensSold, maxEthSold, deadline, buyer, target, "")
}

// TokenToExchangeTransferOutput is TokenToExchangeSwapOutput paying recipient.
func (k Keeper) TokenToExchangeTransferOutput(
	ctx context.Context,
	exchange, buyer sdk.AccAddress,
	tokensBought, maxTokensSold, maxEthSold math.Int,
	deadline uint64,
	recipient, target sdk.AccAddress,
) (math.Int, error) {
	return k.routeOutputAtomic(ctx, exchange, buyer, tokensBought, maxTokensSold, maxEthSold, deadline, recipient, target, "")
}

// resolveTarget returns target, or the exchange A's registry lists for tokenAddr when target is nil.
func (k Keeper) resolveTarget(ctx context.Context, exchange, target sdk.AccAddress, tokenAddr string) sdk.AccAddress {
	if target != nil {
		return target
	}
	return k.registry.GetExchange(ctx, k.FactoryAddress(ctx, exchange), tokenAddr)
}

func (k Keeper) routeInputAtomic(
	ctx context.Context,
	exchange, buyer sdk.AccAddress,
	tokensSold, minTokensBought, minEthBought math.Int,
	deadline uint64,
	recipient, target sdk.AccAddress,
	tokenAddr string,
) (math.Int, error) {
	var tokensBought math.Int
	err := k.atomic(ctx, func(ctx sdk.Context) (err error) {
		tokensBought, err = k.tokenToTokenInput(ctx, exchange, buyer, tokensSold, minTokensBought, minEthBought, deadline, recipient, k.resolveTarget(ctx, exchange, target, tokenAddr))
		return err
	})
	k.observeRoute(modeInput, err)
	if err != nil {
		return math.Int{}, err
	}
	return tokensBought, nil
}

func (k Keeper) routeOutputAtomic(
	ctx context.Context,
	exchange, buyer sdk.AccAddress,
	tokensBought, maxTokensSold, maxEthSold math.Int,
	deadline uint64,
	recipient, target sdk.AccAddress,
	tokenAddr string,
) (math.Int, error) {
	var tokensSold math.Int
	err := k.atomic(ctx, func(ctx sdk.Context) (err error) {
		tokensSold, err = k.tokenToTokenOutput(ctx, exchange, buyer, tokensBought, maxTokensSold, maxEthSold, deadline, recipient, k.resolveTarget(ctx, exchange, target, tokenAddr))
		return err
	})
	k.observeRoute(modeOutput, err)
	if err != nil {
		return math.Int{}, err
	}
	return tokensSold, nil
}

// tokenToTokenInput prices the base asset leg on A, spends the proceeds
// unmodified on B and then pulls the input tokens into A.
func (k Keeper) tokenToTokenInput(
	ctx sdk.Context,
	exchange, buyer sdk.AccAddress,
	tokensSold, minTokensBought, minEthBought math.Int,
	deadline uint64,
	recipient, target sdk.AccAddress,
) (math.Int, error) {
	token, err := k.mustBeReady(ctx, exchange)
	if err != nil {
		return math.Int{}, err
	}
	if err := runGuards(ctx,
		deadlineGuard(deadline),
		positiveGuard("tokens sold", tokensSold),
		positiveGuard("min tokens bought", minTokensBought),
		positiveGuard("min base amount bought", minEthBought),
		recipientGuard(exchange, recipient),
		exchangeGuard(exchange, target),
	); err != nil {
		return math.Int{}, err
	}

	if err := k.lockExchange(ctx, exchange); err != nil {
		return math.Int{}, err
	}
	defer k.unlockExchange(ctx, exchange)

	tokenReserve := k.ledger.BalanceOf(ctx, token, exchange)
	ethReserve := k.ledger.BalanceOf(ctx, types.NativeDenom, exchange)

	ethBought, err := types.GetInputPrice(tokensSold, tokenReserve, ethReserve)
	if err != nil {
		return math.Int{}, err
	}
	if ethBought.LT(minEthBought) {
		return math.Int{}, types.ErrInsufficientBought.Wrapf("%s%s intermediate, min %s", ethBought, types.NativeDenom, minEthBought)
	}

	tokensBought, err := k.ethToTokenInput(ctx, target, exchange, ethBought, minTokensBought, deadline, recipient)
	if err != nil {
		return math.Int{}, err
	}
	if err := k.ledger.TransferFrom(ctx, token, exchange, buyer, exchange, tokensSold); err != nil {
		return math.Int{}, err
	}

	emitEthPurchase(ctx, exchange, buyer, tokensSold, ethBought)
	k.recordSwap(ctx, exchange, token, tokensSold, directionTokenToEth)
	return tokensBought, nil
}

// tokenToTokenOutput asks B for the base asset cost of tokensBought, prices
// that cost on A, buys on B and then pulls the input tokens into A.
func (k Keeper) tokenToTokenOutput(
	ctx sdk.Context,
	exchange, buyer sdk.AccAddress,
	tokensBought, maxTokensSold, maxEthSold math.Int,
	deadline uint64,
	recipient, target sdk.AccAddress,
) (math.Int, error) {
	token, err := k.mustBeReady(ctx, exchange)
	if err != nil {
		return math.Int{}, err
	}
	if err := runGuards(ctx,
		deadlineGuard(deadline),
		positiveGuard("tokens bought", tokensBought),
		positiveGuard("max tokens sold", maxTokensSold),
		positiveGuard("max base amount sold", maxEthSold),
		recipientGuard(exchange, recipient),
		exchangeGuard(exchange, target),
	); err != nil {
		return math.Int{}, err
	}

	if err := k.lockExchange(ctx, exchange); err != nil {
		return math.Int{}, err
	}
	defer k.unlockExchange(ctx, exchange)

	ethBought, err := k.GetEthToTokenOutputPrice(ctx, target, tokensBought)
	if err != nil {
		return math.Int{}, err
	}

	tokenReserve := k.ledger.BalanceOf(ctx, token, exchange)
	ethReserve := k.ledger.BalanceOf(ctx, types.NativeDenom, exchange)

	tokensSold, err := types.GetOutputPrice(ethBought, tokenReserve, ethReserve)
	if err != nil {
		return math.Int{}, err
	}
	if tokensSold.GT(maxTokensSold) {
		return math.Int{}, types.ErrExceededSold.Wrapf("%s%s required, max %s", tokensSold, token, maxTokensSold)
	}
	if ethBought.GT(maxEthSold) {
		return math.Int{}, types.ErrExceededSold.Wrapf("%s%s intermediate, max %s", ethBought, types.NativeDenom, maxEthSold)
	}

	if _, err := k.ethToTokenOutput(ctx, target, exchange, ethBought, tokensBought, deadline, recipient); err != nil {
		return math.Int{}, err
	}
	if err := k.ledger.TransferFrom(ctx, token, exchange, buyer, exchange, tokensSold); err != nil {
		return math.Int{}, err
	}

	emitEthPurchase(ctx, exchange, buyer, tokensSold, ethBought)
	k.recordSwap(ctx, exchange, token, tokensSold, directionTokenToEth)
	return tokensSold, nil
}
