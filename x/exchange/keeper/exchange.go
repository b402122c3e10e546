package keeper

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"

	"github.com/paw-chain/pawswap/x/exchange/types"
)

// Instantiate creates a new exchange in the uninitialized state. Its address
// is derived from the module name and the given derivation keys, which must
// be unique per exchange.
func (k Keeper) Instantiate(ctx context.Context, derivationKeys ...[]byte) (sdk.AccAddress, error) {
	exchange := sdk.AccAddress(address.Module(types.ModuleName, derivationKeys...))
	if k.getStatus(ctx, exchange) != types.StatusUnspecified {
		return nil, types.ErrInvalidExchange.Wrapf("exchange %s already exists", exchange)
	}

	k.setStatus(ctx, exchange, types.StatusUninitialized)
	return exchange, nil
}

// Setup binds an uninitialized exchange to its token and registry. It
// succeeds exactly once per exchange.
func (k Keeper) Setup(ctx context.Context, exchange, registry sdk.AccAddress, token string) error {
	switch k.getStatus(ctx, exchange) {
	case types.StatusUnspecified:
		return types.ErrExchangeNotFound.Wrapf("exchange %s", exchange)
	case types.StatusReady:
		return types.ErrAlreadyInitialized.Wrapf("exchange %s trades %s", exchange, k.TokenAddress(ctx, exchange))
	}

	if registry.Empty() {
		return types.ErrInvalidExchange.Wrap("registry cannot be empty")
	}
	if err := ValidateToken(token); err != nil {
		return err
	}

	store := k.getStore(ctx)
	store.Set(TokenKey(exchange), []byte(token))
	store.Set(RegistryKey(exchange), registry)
	k.setStatus(ctx, exchange, types.StatusReady)

	k.Logger(ctx).Debug("exchange setup", "exchange", exchange.String(), "token", token, "registry", registry.String())
	return nil
}

// ValidateToken rejects the null token, malformed denoms and the base asset.
func ValidateToken(token string) error {
	if token == "" {
		return types.ErrInvalidToken.Wrap("token cannot be empty")
	}
	if err := sdk.ValidateDenom(token); err != nil {
		return types.ErrInvalidToken.Wrapf("%q: %v", token, err)
	}
	if token == types.NativeDenom {
		return types.ErrInvalidToken.Wrapf("%s is the base asset", token)
	}
	return nil
}

// IsReady reports whether the exchange exists and has been set up.
func (k Keeper) IsReady(ctx context.Context, exchange sdk.AccAddress) bool {
	return k.getStatus(ctx, exchange) == types.StatusReady
}

// TokenAddress returns the token the exchange trades, or "" if it has none.
func (k Keeper) TokenAddress(ctx context.Context, exchange sdk.AccAddress) string {
	return string(k.getStore(ctx).Get(TokenKey(exchange)))
}

// FactoryAddress returns the registry that set up the exchange, or nil.
func (k Keeper) FactoryAddress(ctx context.Context, exchange sdk.AccAddress) sdk.AccAddress {
	bz := k.getStore(ctx).Get(RegistryKey(exchange))
	if bz == nil {
		return nil
	}
	return sdk.AccAddress(bz)
}

// mustBeReady returns the exchange's token, failing if the exchange was never set up.
func (k Keeper) mustBeReady(ctx context.Context, exchange sdk.AccAddress) (string, error) {
	switch k.getStatus(ctx, exchange) {
	case types.StatusReady:
		return k.TokenAddress(ctx, exchange), nil
	case types.StatusUninitialized:
		return "", types.ErrNotInitialized.Wrapf("exchange %s", exchange)
	default:
		return "", types.ErrExchangeNotFound.Wrapf("exchange %s", exchange)
	}
}

func (k Keeper) getStatus(ctx context.Context, exchange sdk.AccAddress) types.Status {
	bz := k.getStore(ctx).Get(StatusKey(exchange))
	if len(bz) != 1 {
		return types.StatusUnspecified
	}
	return types.Status(bz[0])
}

func (k Keeper) setStatus(ctx context.Context, exchange sdk.AccAddress, status types.Status) {
	k.getStore(ctx).Set(StatusKey(exchange), []byte{byte(status)})
}
