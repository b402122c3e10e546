package keeper

import (
	"context"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/ledger/types"
)

// BalanceOf returns the balance of owner in denom. Unknown accounts hold zero.
func (k Keeper) BalanceOf(ctx context.Context, denom string, owner sdk.AccAddress) math.Int {
	return k.getInt(ctx, BalanceKey(denom, owner))
}

// TotalSupply returns the amount of denom in existence.
func (k Keeper) TotalSupply(ctx context.Context, denom string) math.Int {
	return k.getInt(ctx, SupplyKey(denom))
}

// Mint creates amount of denom and credits it to the recipient.
func (k Keeper) Mint(ctx context.Context, denom string, to sdk.AccAddress, amount math.Int) error {
	if err := validateDenom(denom); err != nil {
		return err
	}
	if to.Empty() {
		return types.ErrInvalidAddress.Wrap("mint recipient cannot be empty")
	}
	if amount.IsNil() || !amount.IsPositive() {
		return types.ErrInvalidAmount.Wrapf("mint amount must be positive, got %s", amount)
	}

	supply, err := k.TotalSupply(ctx, denom).SafeAdd(amount)
	if err != nil {
		return types.ErrInvalidAmount.Wrapf("supply of %s overflows: %v", denom, err)
	}
	k.setInt(ctx, SupplyKey(denom), supply)
	k.setInt(ctx, BalanceKey(denom, to), k.BalanceOf(ctx, denom, to).Add(amount))

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeMint,
			sdk.NewAttribute(types.AttributeKeyDenom, denom),
			sdk.NewAttribute(types.AttributeKeyRecipient, to.String()),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
		),
	)
	return nil
}

// Transfer moves amount of denom from one account to another. A zero amount
// is accepted and moves nothing.
func (k Keeper) Transfer(ctx context.Context, denom string, from, to sdk.AccAddress, amount math.Int) error {
	if err := validateDenom(denom); err != nil {
		return err
	}
	if from.Empty() || to.Empty() {
		return types.ErrInvalidAddress.Wrap("transfer parties cannot be empty")
	}
	if amount.IsNil() || amount.IsNegative() {
		return types.ErrInvalidAmount.Wrapf("transfer amount cannot be negative, got %s", amount)
	}

	fromBalance := k.BalanceOf(ctx, denom, from)
	if fromBalance.LT(amount) {
		return types.ErrInsufficientFunds.Wrapf("%s has %s%s, needs %s%s", from, fromBalance, denom, amount, denom)
	}
	k.setInt(ctx, BalanceKey(denom, from), fromBalance.Sub(amount))
	k.setInt(ctx, BalanceKey(denom, to), k.BalanceOf(ctx, denom, to).Add(amount))

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeTransfer,
			sdk.NewAttribute(types.AttributeKeyDenom, denom),
			sdk.NewAttribute(types.AttributeKeySender, from.String()),
			sdk.NewAttribute(types.AttributeKeyRecipient, to.String()),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
		),
	)

	if k.hooks != nil {
		return k.hooks.AfterTransfer(ctx, denom, from, to, amount)
	}
	return nil
}

// TransferFrom moves amount of denom out of from's balance on behalf of
// spender, consuming spender's allowance.
func (k Keeper) TransferFrom(ctx context.Context, denom string, spender, from, to sdk.AccAddress, amount math.Int) error {
	if spender.Empty() {
		return types.ErrInvalidAddress.Wrap("spender cannot be empty")
	}
	if amount.IsNil() || amount.IsNegative() {
		return types.ErrInvalidAmount.Wrapf("transfer amount cannot be negative, got %s", amount)
	}

	allowance := k.Allowance(ctx, denom, from, spender)
	if allowance.LT(amount) {
		return types.ErrInsufficientAllowance.Wrapf("%s may spend %s%s of %s, needs %s%s", spender, allowance, denom, from, amount, denom)
	}
	k.setInt(ctx, AllowanceKey(denom, from, spender), allowance.Sub(amount))

	return k.Transfer(ctx, denom, from, to, amount)
}

// Approve sets the amount of denom spender may move out of owner's balance.
func (k Keeper) Approve(ctx context.Context, denom string, owner, spender sdk.AccAddress, amount math.Int) error {
	if err := validateDenom(denom); err != nil {
		return err
	}
	if owner.Empty() || spender.Empty() {
		return types.ErrInvalidAddress.Wrap("approval parties cannot be empty")
	}
	if amount.IsNil() || amount.IsNegative() {
		return types.ErrInvalidAmount.Wrapf("allowance cannot be negative, got %s", amount)
	}

	k.setInt(ctx, AllowanceKey(denom, owner, spender), amount)

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeApproval,
			sdk.NewAttribute(types.AttributeKeyDenom, denom),
			sdk.NewAttribute(types.AttributeKeyOwner, owner.String()),
			sdk.NewAttribute(types.AttributeKeySpender, spender.String()),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
		),
	)
	return nil
}

// Allowance returns how much of owner's denom spender may still move.
func (k Keeper) Allowance(ctx context.Context, denom string, owner, spender sdk.AccAddress) math.Int {
	return k.getInt(ctx, AllowanceKey(denom, owner, spender))
}

// IterateDenoms iterates over every denom with a recorded supply.
func (k Keeper) IterateDenoms(ctx context.Context, cb func(denom string, supply math.Int) (stop bool)) error {
	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), SupplyKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var supply math.Int
		if err := supply.Unmarshal(iterator.Value()); err != nil {
			return err
		}
		if cb(string(iterator.Key()[len(SupplyKeyPrefix):]), supply) {
			break
		}
	}
	return nil
}

// IterateBalances iterates over every non-zero balance of a denom.
func (k Keeper) IterateBalances(ctx context.Context, denom string, cb func(owner sdk.AccAddress, balance math.Int) (stop bool)) error {
	prefix := BalanceKeyDenomPrefix(denom)
	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), prefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var balance math.Int
		if err := balance.Unmarshal(iterator.Value()); err != nil {
			return err
		}
		// strip the one byte length prefix of the owner
		owner := sdk.AccAddress(iterator.Key()[len(prefix)+1:])
		if cb(owner, balance) {
			break
		}
	}
	return nil
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

func validateDenom(denom string) error {
	if err := sdk.ValidateDenom(denom); err != nil {
		return types.ErrInvalidDenom.Wrapf("%q: %v", denom, err)
	}
	return nil
}
