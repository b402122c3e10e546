package keeper

import (
	"context"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/exchange/types"
)

const (
	directionEthToToken = "eth_to_token"
	directionTokenToEth = "token_to_eth"
	modeInput           = "input"
	modeOutput          = "output"
)

// Receive is the default entry point for base asset sent to an exchange with
// no instructions: an input swap with a minimum of one token and a deadline
// of the current block.
func (k Keeper) Receive(ctx context.Context, exchange, sender sdk.AccAddress, value math.Int) (math.Int, error) {
	now := blockTime(sdk.UnwrapSDKContext(ctx))
	return k.EthToTokenSwapInput(ctx, exchange, sender, value, math.OneInt(), now)
}

// EthToTokenSwapInput sells exactly value of the base asset for tokens, paid to the buyer.
func (k Keeper) EthToTokenSwapInput(ctx context.Context, exchange, buyer sdk.AccAddress, value, minTokens math.Int, deadline uint64) (math.Int, error) {
	return k.ethToTokenInputAtomic(ctx, exchange, buyer, value, minTokens, deadline, buyer)
}

// EthToTokenTransferInput sells exactly value of the base asset for tokens, paid to recipient.
func (k Keeper) EthToTokenTransferInput(ctx context.Context, exchange, buyer sdk.AccAddress, value, minTokens math.Int, deadline uint64, recipient sdk.AccAddress) (math.Int, error) {
	return k.ethToTokenInputAtomic(ctx, exchange, buyer, value, minTokens, deadline, recipient)
}

// EthToTokenSwapOutput buys exactly tokensBought for at most value of the
// base asset; the unspent part of value is refunded. Returns the base amount sold.
func (k Keeper) EthToTokenSwapOutput(ctx context.Context, exchange, buyer sdk.AccAddress, value, tokensBought math.Int, deadline uint64) (math.Int, error) {
	return k.ethToTokenOutputAtomic(ctx, exchange, buyer, value, tokensBought, deadline, buyer)
}

// EthToTokenTransferOutput is EthToTokenSwapOutput paying the tokens to recipient.
func (k Keeper) EthToTokenTransferOutput(ctx context.Context, exchange, buyer sdk.AccAddress, value, tokensBought math.Int, deadline uint64, recipient sdk.AccAddress) (math.Int, error) {
	return k.ethToTokenOutputAtomic(ctx, exchange, buyer, value, tokensBought, deadline, recipient)
}

// TokenToEthSwapInput sells exactly tokensSold for the base asset, paid to the buyer.
func (k Keeper) TokenToEthSwapInput(ctx context.Context, exchange, buyer sdk.AccAddress, tokensSold, minEth math.Int, deadline uint64) (math.Int, error) {
	return k.tokenToEthInputAtomic(ctx, exchange, buyer, tokensSold, minEth, deadline, buyer)
}

// TokenToEthTransferInput sells exactly tokensSold for the base asset, paid to recipient.
func (k Keeper) TokenToEthTransferInput(ctx context.Context, exchange, buyer sdk.AccAddress, tokensSold, minEth math.Int, deadline uint64, recipient sdk.AccAddress) (math.Int, error) {
	return k.tokenToEthInputAtomic(ctx, exchange, buyer, tokensSold, minEth, deadline, recipient)
}

// TokenToEthSwapOutput buys exactly ethBought for at most maxTokens. Returns the tokens sold.
func (k Keeper) TokenToEthSwapOutput(ctx context.Context, exchange, buyer sdk.AccAddress, ethBought, maxTokens math.Int, deadline uint64) (math.Int, error) {
	return k.tokenToEthOutputAtomic(ctx, exchange, buyer, ethBought, maxTokens, deadline, buyer)
}

// TokenToEthTransferOutput is TokenToEthSwapOutput paying the base asset to recipient.
func (k Keeper) TokenToEthTransferOutput(ctx context.Context, exchange, buyer sdk.AccAddress, ethBought, maxTokens math.Int, deadline uint64, recipient sdk.AccAddress) (math.Int, error) {
	return k.tokenToEthOutputAtomic(ctx, exchange, buyer, ethBought, maxTokens, deadline, recipient)
}

func (k Keeper) ethToTokenInputAtomic(ctx context.Context, exchange, buyer sdk.AccAddress, value, minTokens math.Int, deadline uint64, recipient sdk.AccAddress) (math.Int, error) {
	start := time.Now()
	var tokensBought math.Int
	err := k.atomic(ctx, func(ctx sdk.Context) (err error) {
		tokensBought, err = k.ethToTokenInput(ctx, exchange, buyer, value, minTokens, deadline, recipient)
		return err
	})
	k.observeSwap(directionEthToToken, modeInput, start, err)
	if err != nil {
		return math.Int{}, err
	}
	return tokensBought, nil
}

func (k Keeper) ethToTokenOutputAtomic(ctx context.Context, exchange, buyer sdk.AccAddress, value, tokensBought math.Int, deadline uint64, recipient sdk.AccAddress) (math.Int, error) {
	start := time.Now()
	var ethSold math.Int
	err := k.atomic(ctx, func(ctx sdk.Context) (err error) {
		ethSold, err = k.ethToTokenOutput(ctx, exchange, buyer, value, tokensBought, deadline, recipient)
		return err
	})
	k.observeSwap(directionEthToToken, modeOutput, start, err)
	if err != nil {
		return math.Int{}, err
	}
	return ethSold, nil
}

func (k Keeper) tokenToEthInputAtomic(ctx context.Context, exchange, buyer sdk.AccAddress, tokensSold, minEth math.Int, deadline uint64, recipient sdk.AccAddress) (math.Int, error) {
	start := time.Now()
	var ethBought math.Int
	err := k.atomic(ctx, func(ctx sdk.Context) (err error) {
		ethBought, err = k.tokenToEthInput(ctx, exchange, buyer, tokensSold, minEth, deadline, recipient)
		return err
	})
	k.observeSwap(directionTokenToEth, modeInput, start, err)
	if err != nil {
		return math.Int{}, err
	}
	return ethBought, nil
}

func (k Keeper) tokenToEthOutputAtomic(ctx context.Context, exchange, buyer sdk.AccAddress, ethBought, maxTokens math.Int, deadline uint64, recipient sdk.AccAddress) (math.Int, error) {
	start := time.Now()
	var tokensSold math.Int
	err := k.atomic(ctx, func(ctx sdk.Context) (err error) {
		tokensSold, err = k.tokenToEthOutput(ctx, exchange, buyer, ethBought, maxTokens, deadline, recipient)
		return err
	})
	k.observeSwap(directionTokenToEth, modeOutput, start, err)
	if err != nil {
		return math.Int{}, err
	}
	return tokensSold, nil
}

// ethToTokenInput credits ethSold from buyer, then pays out the tokens it buys.
// It must run inside an atomic context.
func (k Keeper) ethToTokenInput(
	ctx sdk.Context,
	exchange, buyer sdk.AccAddress,
	ethSold, minTokens math.Int,
	deadline uint64,
	recipient sdk.AccAddress,
) (math.Int, error) {
	token, err := k.mustBeReady(ctx, exchange)
	if err != nil {
		return math.Int{}, err
	}
	if err := runGuards(ctx,
		deadlineGuard(deadline),
		positiveGuard("base amount sold", ethSold),
		positiveGuard("min tokens", minTokens),
		recipientGuard(exchange, recipient),
	); err != nil {
		return math.Int{}, err
	}

	if err := k.lockExchange(ctx, exchange); err != nil {
		return math.Int{}, err
	}
	defer k.unlockExchange(ctx, exchange)

	if err := k.ledger.Transfer(ctx, types.NativeDenom, buyer, exchange, ethSold); err != nil {
		return math.Int{}, err
	}

	// the base reserve already includes the payment
	ethReserve := k.ledger.BalanceOf(ctx, types.NativeDenom, exchange).Sub(ethSold)
	tokenReserve := k.ledger.BalanceOf(ctx, token, exchange)

	tokensBought, err := types.GetInputPrice(ethSold, ethReserve, tokenReserve)
	if err != nil {
		return math.Int{}, err
	}
	if tokensBought.LT(minTokens) {
		return math.Int{}, types.ErrInsufficientBought.Wrapf("%s%s bought, min %s", tokensBought, token, minTokens)
	}

	if err := k.ledger.Transfer(ctx, token, exchange, recipient, tokensBought); err != nil {
		return math.Int{}, err
	}

	emitTokenPurchase(ctx, exchange, buyer, ethSold, tokensBought)
	k.recordSwap(ctx, exchange, token, ethSold, directionEthToToken)
	return tokensBought, nil
}

// ethToTokenOutput credits maxEth from buyer, pays out exactly tokensBought
// and then refunds the unspent base asset. It must run inside an atomic context.
func (k Keeper) ethToTokenOutput(
	ctx sdk.Context,
	exchange, buyer sdk.AccAddress,
	maxEth, tokensBought math.Int,
	deadline uint64,
	recipient sdk.AccAddress,
) (math.Int, error) {
	token, err := k.mustBeReady(ctx, exchange)
	if err != nil {
		return math.Int{}, err
	}
	if err := runGuards(ctx,
		deadlineGuard(deadline),
		positiveGuard("tokens bought", tokensBought),
		positiveGuard("max base amount", maxEth),
		recipientGuard(exchange, recipient),
	); err != nil {
		return math.Int{}, err
	}

	if err := k.lockExchange(ctx, exchange); err != nil {
		return math.Int{}, err
	}
	defer k.unlockExchange(ctx, exchange)

	if err := k.ledger.Transfer(ctx, types.NativeDenom, buyer, exchange, maxEth); err != nil {
		return math.Int{}, err
	}

	ethReserve := k.ledger.BalanceOf(ctx, types.NativeDenom, exchange).Sub(maxEth)
	tokenReserve := k.ledger.BalanceOf(ctx, token, exchange)

	ethSold, err := types.GetOutputPrice(tokensBought, ethReserve, tokenReserve)
	if err != nil {
		return math.Int{}, err
	}
	if ethSold.GT(maxEth) {
		return math.Int{}, types.ErrExceededSold.Wrapf("%s%s required, max %s", ethSold, types.NativeDenom, maxEth)
	}

	// the refund goes last so its hook sees the settled reserves
	if err := k.ledger.Transfer(ctx, token, exchange, recipient, tokensBought); err != nil {
		return math.Int{}, err
	}
	if refund := maxEth.Sub(ethSold); refund.IsPositive() {
		if err := k.ledger.Transfer(ctx, types.NativeDenom, exchange, buyer, refund); err != nil {
			return math.Int{}, err
		}
	}

	emitTokenPurchase(ctx, exchange, buyer, ethSold, tokensBought)
	k.recordSwap(ctx, exchange, token, ethSold, directionEthToToken)
	return ethSold, nil
}

// tokenToEthInput pays out the base asset tokensSold buys, then pulls the
// tokens from buyer. It must run inside an atomic context.
func (k Keeper) tokenToEthInput(
	ctx sdk.Context,
	exchange, buyer sdk.AccAddress,
	tokensSold, minEth math.Int,
	deadline uint64,
	recipient sdk.AccAddress,
) (math.Int, error) {
	token, err := k.mustBeReady(ctx, exchange)
	if err != nil {
		return math.Int{}, err
	}
	if err := runGuards(ctx,
		deadlineGuard(deadline),
		positiveGuard("tokens sold", tokensSold),
		positiveGuard("min base amount", minEth),
		recipientGuard(exchange, recipient),
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
	if ethBought.LT(minEth) {
		return math.Int{}, types.ErrInsufficientBought.Wrapf("%s%s bought, min %s", ethBought, types.NativeDenom, minEth)
	}

	// pay out first, so the hook on the final pull sees the settled reserves
	if err := k.ledger.Transfer(ctx, types.NativeDenom, exchange, recipient, ethBought); err != nil {
		return math.Int{}, err
	}
	if err := k.ledger.TransferFrom(ctx, token, exchange, buyer, exchange, tokensSold); err != nil {
		return math.Int{}, err
	}

	emitEthPurchase(ctx, exchange, buyer, tokensSold, ethBought)
	k.recordSwap(ctx, exchange, token, tokensSold, directionTokenToEth)
	return ethBought, nil
}

// tokenToEthOutput pays out exactly ethBought, then pulls the tokens it costs.
// It must run inside an atomic context.
func (k Keeper) tokenToEthOutput(
	ctx sdk.Context,
	exchange, buyer sdk.AccAddress,
	ethBought, maxTokens math.Int,
	deadline uint64,
	recipient sdk.AccAddress,
) (math.Int, error) {
	token, err := k.mustBeReady(ctx, exchange)
	if err != nil {
		return math.Int{}, err
	}
	if err := runGuards(ctx,
		deadlineGuard(deadline),
		positiveGuard("base amount bought", ethBought),
		positiveGuard("max tokens", maxTokens),
		recipientGuard(exchange, recipient),
	); err != nil {
		return math.Int{}, err
	}

	if err := k.lockExchange(ctx, exchange); err != nil {
		return math.Int{}, err
	}
	defer k.unlockExchange(ctx, exchange)

	tokenReserve := k.ledger.BalanceOf(ctx, token, exchange)
	ethReserve := k.ledger.BalanceOf(ctx, types.NativeDenom, exchange)

	tokensSold, err := types.GetOutputPrice(ethBought, tokenReserve, ethReserve)
	if err != nil {
		return math.Int{}, err
	}
	if tokensSold.GT(maxTokens) {
		return math.Int{}, types.ErrExceededSold.Wrapf("%s%s required, max %s", tokensSold, token, maxTokens)
	}

	if err := k.ledger.Transfer(ctx, types.NativeDenom, exchange, recipient, ethBought); err != nil {
		return math.Int{}, err
	}
	if err := k.ledger.TransferFrom(ctx, token, exchange, buyer, exchange, tokensSold); err != nil {
		return math.Int{}, err
	}

	emitEthPurchase(ctx, exchange, buyer, tokensSold, ethBought)
	k.recordSwap(ctx, exchange, token, tokensSold, directionTokenToEth)
	return tokensSold, nil
}

func emitTokenPurchase(ctx sdk.Context, exchange, buyer sdk.AccAddress, ethSold, tokensBought math.Int) {
	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeTokenPurchase,
			sdk.NewAttribute(types.AttributeKeyExchange, exchange.String()),
			sdk.NewAttribute(types.AttributeKeyBuyer, buyer.String()),
			sdk.NewAttribute(types.AttributeKeyEthSold, ethSold.String()),
			sdk.NewAttribute(types.AttributeKeyTokensBought, tokensBought.String()),
		),
	)
}

func emitEthPurchase(ctx sdk.Context, exchange, buyer sdk.AccAddress, tokensSold, ethBought math.Int) {
	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeEthPurchase,
			sdk.NewAttribute(types.AttributeKeyExchange, exchange.String()),
			sdk.NewAttribute(types.AttributeKeyBuyer, buyer.String()),
			sdk.NewAttribute(types.AttributeKeyTokensSold, tokensSold.String()),
			sdk.NewAttribute(types.AttributeKeyEthBought, ethBought.String()),
		),
	)
}
