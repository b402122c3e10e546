package keeper

import (
	"context"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/exchange/types"
)

// Each exchange issues its own fungible liquidity share token.

// TotalShares returns the outstanding liquidity shares of an exchange.
func (k Keeper) TotalShares(ctx context.Context, exchange sdk.AccAddress) math.Int {
	return k.getInt(ctx, ShareSupplyKey(exchange))
}

// ShareBalanceOf returns the shares owner holds in an exchange.
func (k Keeper) ShareBalanceOf(ctx context.Context, exchange, owner sdk.AccAddress) math.Int {
	return k.getInt(ctx, ShareBalanceKey(exchange, owner))
}

// ShareAllowance returns the shares spender may still move for owner.
func (k Keeper) ShareAllowance(ctx context.Context, exchange, owner, spender sdk.AccAddress) math.Int {
	return k.getInt(ctx, ShareAllowanceKey(exchange, owner, spender))
}

// TransferShares moves liquidity shares between holders.
func (k Keeper) TransferShares(ctx context.Context, exchange, from, to sdk.AccAddress, amount math.Int) error {
	return k.atomic(ctx, func(ctx sdk.Context) error {
		if _, err := k.mustBeReady(ctx, exchange); err != nil {
			return err
		}
		return k.transferShares(ctx, exchange, from, to, amount)
	})
}

// TransferSharesFrom moves shares out of from's balance on behalf of spender.
func (k Keeper) TransferSharesFrom(ctx context.Context, exchange, spender, from, to sdk.AccAddress, amount math.Int) error {
	return k.atomic(ctx, func(ctx sdk.Context) error {
		if _, err := k.mustBeReady(ctx, exchange); err != nil {
			return err
		}
		if amount.IsNil() || amount.IsNegative() {
			return types.ErrInvalidAmount.Wrapf("share amount cannot be negative, got %s", amount)
		}

		allowance := k.ShareAllowance(ctx, exchange, from, spender)
		if allowance.LT(amount) {
			return types.ErrInsufficientAllowance.Wrapf("%s may move %s shares of %s, needs %s", spender, allowance, from, amount)
		}
		k.setInt(ctx, ShareAllowanceKey(exchange, from, spender), allowance.Sub(amount))
		return k.transferShares(ctx, exchange, from, to, amount)
	})
}

// ApproveShares sets the shares spender may move on behalf of owner.
func (k Keeper) ApproveShares(ctx context.Context, exchange, owner, spender sdk.AccAddress, amount math.Int) error {
	if _, err := k.mustBeReady(ctx, exchange); err != nil {
		return err
	}
	if owner.Empty() || spender.Empty() {
		return types.ErrInvalidRecipient.Wrap("approval parties cannot be empty")
	}
	if amount.IsNil() || amount.IsNegative() {
		return types.ErrInvalidAmount.Wrapf("allowance cannot be negative, got %s", amount)
	}

	k.setInt(ctx, ShareAllowanceKey(exchange, owner, spender), amount)

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeShareApproval,
			sdk.NewAttribute(types.AttributeKeyExchange, exchange.String()),
			sdk.NewAttribute(types.AttributeKeyOwner, owner.String()),
			sdk.NewAttribute(types.AttributeKeySpender, spender.String()),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
		),
	)
	return nil
}

func (k Keeper) transferShares(ctx context.Context, exchange, from, to sdk.AccAddress, amount math.Int) error {
	if from.Empty() || to.Empty() {
		return types.ErrInvalidRecipient.Wrap("share transfer parties cannot be empty")
	}
	if amount.IsNil() || amount.IsNegative() {
		return types.ErrInvalidAmount.Wrapf("share amount cannot be negative, got %s", amount)
	}

	fromBalance := k.ShareBalanceOf(ctx, exchange, from)
	if fromBalance.LT(amount) {
		return types.ErrInsufficientShares.Wrapf("%s holds %s shares, needs %s", from, fromBalance, amount)
	}
	k.setInt(ctx, ShareBalanceKey(exchange, from), fromBalance.Sub(amount))
	k.setInt(ctx, ShareBalanceKey(exchange, to), k.ShareBalanceOf(ctx, exchange, to).Add(amount))

	k.emitShareTransfer(ctx, exchange, from, to, amount)
	return nil
}

// mintShares credits new shares to owner and grows the supply.
func (k Keeper) mintShares(ctx context.Context, exchange, owner sdk.AccAddress, amount math.Int) error {
	supply, err := k.TotalShares(ctx, exchange).SafeAdd(amount)
	if err != nil {
		return types.ErrArithmetic.Wrapf("share supply overflow: %v", err)
	}
	k.setInt(ctx, ShareSupplyKey(exchange), supply)
	k.setInt(ctx, ShareBalanceKey(exchange, owner), k.ShareBalanceOf(ctx, exchange, owner).Add(amount))

	k.emitShareTransfer(ctx, exchange, nil, owner, amount)
	return nil
}

// burnShares destroys shares held by owner and shrinks the supply.
func (k Keeper) burnShares(ctx context.Context, exchange, owner sdk.AccAddress, amount math.Int) error {
	balance := k.ShareBalanceOf(ctx, exchange, owner)
	if balance.LT(amount) {
		return types.ErrInsufficientShares.Wrapf("%s holds %s shares, burning %s", owner, balance, amount)
	}
	k.setInt(ctx, ShareBalanceKey(exchange, owner), balance.Sub(amount))
	k.setInt(ctx, ShareSupplyKey(exchange), k.TotalShares(ctx, exchange).Sub(amount))

	k.emitShareTransfer(ctx, exchange, owner, nil, amount)
	return nil
}

// IterateShareHolders iterates over every non-zero share balance of an exchange.
func (k Keeper) IterateShareHolders(ctx context.Context, exchange sdk.AccAddress, cb func(owner sdk.AccAddress, shares math.Int) (stop bool)) error {
	prefix := ShareBalanceExchangePrefix(exchange)
	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), prefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var shares math.Int
		if err := shares.Unmarshal(iterator.Value()); err != nil {
			return err
		}
		owner := sdk.AccAddress(iterator.Key()[len(prefix)+1:])
		if cb(owner, shares) {
			break
		}
	}
	return nil
}

func (k Keeper) emitShareTransfer(ctx context.Context, exchange, from, to sdk.AccAddress, amount math.Int) {
	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeShareTransfer,
			sdk.NewAttribute(types.AttributeKeyExchange, exchange.String()),
			sdk.NewAttribute(types.AttributeKeySender, from.String()),
			sdk.NewAttribute(types.AttributeKeyRecipient, to.String()),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
		),
	)
}

func (k Keeper) getInt(ctx context.Context, key []byte) math.Int {
	bz := k.getStore(ctx).Get(key)
	if bz == nil {
		return math.ZeroInt()
	}

	var amount math.Int
	if err := amount.Unmarshal(bz); err != nil {
		panic(err)
	}
	return amount
}

func (k Keeper) setInt(ctx context.Context, key []byte, amount math.Int) {
	store := k.getStore(ctx)
	if amount.IsZero() {
		store.Delete(key)
		return
	}

	bz, err := amount.Marshal()
	if err != nil {
		panic(err)
	}
	store.Set(key, bz)
}
