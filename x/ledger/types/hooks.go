package types

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// TransferHook is called after every balance movement has been written.
// Receivers are untrusted: a hook may call back into any module, and a
// returned error aborts the enclosing operation.
type TransferHook interface {
	AfterTransfer(ctx context.Context, denom string, from, to sdk.AccAddress, amount math.Int) error
}

// MultiTransferHooks runs a list of hooks in order.
type MultiTransferHooks []TransferHook

var _ TransferHook = MultiTransferHooks{}

// NewMultiTransferHooks combines hooks into a single TransferHook.
func NewMultiTransferHooks(hooks ...TransferHook) MultiTransferHooks {
	return hooks
}

// AfterTransfer implements TransferHook and stops at the first error.
func (h MultiTransferHooks) AfterTransfer(ctx context.Context, denom string, from, to sdk.AccAddress, amount math.Int) error {
	for _, hook := range h {
		if err := hook.AfterTransfer(ctx, denom, from, to, amount); err != nil {
			return err
		}
	}
	return nil
}

// TransferHookFunc adapts a function to the TransferHook interface.
type TransferHookFunc func(ctx context.Context, denom string, from, to sdk.AccAddress, amount math.Int) error

// AfterTransfer implements TransferHook.
func (f TransferHookFunc) AfterTransfer(ctx context.Context, denom string, from, to sdk.AccAddress, amount math.Int) error {
	return f(ctx, denom, from, to, amount)
}
