package keeper

import (
	"context"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/exchange/types"
)

// GetEthToTokenInputPrice returns the tokens ethSold would buy.
func (k Keeper) GetEthToTokenInputPrice(ctx context.Context, exchange sdk.AccAddress, ethSold math.Int) (math.Int, error) {
	ethReserve, tokenReserve, err := k.priceReserves(ctx, exchange, "base amount sold", ethSold)
	if err != nil {
		return math.Int{}, err
	}
	return types.GetInputPrice(ethSold, ethReserve, tokenReserve)
}

// GetEthToTokenOutputPrice returns the base asset needed to buy tokensBought.
func (k Keeper) GetEthToTokenOutputPrice(ctx context.Context, exchange sdk.AccAddress, tokensBought math.Int) (math.Int, error) {
	ethReserve, tokenReserve, err := k.priceReserves(ctx, exchange, "tokens bought", tokensBought)
	if err != nil {
		return math.Int{}, err
	}
	return types.GetOutputPrice(tokensBought, ethReserve, tokenReserve)
}

// GetTokenToEthInputPrice returns the base asset tokensSold would buy.
func (k Keeper) GetTokenToEthInputPrice(ctx context.Context, exchange sdk.AccAddress, tokensSold math.Int) (math.Int, error) {
	ethReserve, tokenReserve, err := k.priceReserves(ctx, exchange, "tokens sold", tokensSold)
	if err != nil {
		return math.Int{}, err
	}
	return types.GetInputPrice(tokensSold, tokenReserve, ethReserve)
}

// GetTokenToEthOutputPrice returns the tokens needed to buy ethBought.
func (k Keeper) GetTokenToEthOutputPrice(ctx context.Context, exchange sdk.AccAddress, ethBought math.Int) (math.Int, error) {
	ethReserve, tokenReserve, err := k.priceReserves(ctx, exchange, "base amount bought", ethBought)
	if err != nil {
		return math.Int{}, err
	}
	return types.GetOutputPrice(ethBought, tokenReserve, ethReserve)
}

func (k Keeper) priceReserves(ctx context.Context, exchange sdk.AccAddress, name string, amount math.Int) (math.Int, math.Int, error) {
	token, err := k.mustBeReady(ctx, exchange)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	if err := positiveGuard(name, amount)(sdk.UnwrapSDKContext(ctx)); err != nil {
		return math.Int{}, math.Int{}, err
	}
	if k.isLocked(ctx, exchange) {
		return math.Int{}, math.Int{}, types.ErrReentrancy.Wrapf("exchange %s is mid-operation, reserves are unsettled", exchange)
	}
	ethReserve, tokenReserve := k.Reserves(ctx, exchange, token)
	return ethReserve, tokenReserve, nil
}

// Reserves returns the base asset and token balances held by the exchange.
func (k Keeper) Reserves(ctx context.Context, exchange sdk.AccAddress, token string) (math.Int, math.Int) {
	return k.ledger.BalanceOf(ctx, types.NativeDenom, exchange), k.ledger.BalanceOf(ctx, token, exchange)
}

// GetExchangeInfo returns a snapshot of an exchange.
func (k Keeper) GetExchangeInfo(ctx context.Context, exchange sdk.AccAddress) (types.ExchangeInfo, error) {
	status := k.getStatus(ctx, exchange)
	if status == types.StatusUnspecified {
		return types.ExchangeInfo{}, types.ErrExchangeNotFound.Wrapf("exchange %s", exchange)
	}

	token := k.TokenAddress(ctx, exchange)
	info := types.ExchangeInfo{
		Address:      exchange,
		Registry:     k.FactoryAddress(ctx, exchange),
		Token:        token,
		Status:       status.String(),
		EthReserve:   k.ledger.BalanceOf(ctx, types.NativeDenom, exchange),
		TokenReserve: math.ZeroInt(),
		TotalShares:  k.TotalShares(ctx, exchange),
		ShareToken:   types.DefaultShareToken(),
	}
	if token != "" {
		info.TokenReserve = k.ledger.BalanceOf(ctx, token, exchange)
	}
	return info, nil
}

// IterateExchanges iterates over every exchange that has been instantiated.
func (k Keeper) IterateExchanges(ctx context.Context, cb func(exchange sdk.AccAddress, status types.Status) (stop bool)) {
	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), StatusKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		exchange := sdk.AccAddress(iterator.Key()[len(StatusKeyPrefix)+1:])
		var status types.Status
		if v := iterator.Value(); len(v) == 1 {
			status = types.Status(v[0])
		}
		if cb(exchange, status) {
			break
		}
	}
}
