package keeper

import (
	"context"
	"strconv"
	"strings"

	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"

	"github.com/paw-chain/pawswap/x/factory/types"
)

// DefaultRegistryLabel names the registry at the module address
const DefaultRegistryLabel = "default"

// DefaultRegistryAddress returns the address of the default registry.
func DefaultRegistryAddress() sdk.AccAddress {
	return sdk.AccAddress(address.Module(types.ModuleName))
}

// RegistryAddress returns the address of the registry with the given label.
func RegistryAddress(label string) sdk.AccAddress {
	if label == DefaultRegistryLabel {
		return DefaultRegistryAddress()
	}
	return sdk.AccAddress(address.Module(types.ModuleName, []byte(label)))
}

// InitDefaultRegistry creates the default registry if it does not exist yet.
func (k Keeper) InitDefaultRegistry(ctx context.Context) (sdk.AccAddress, error) {
	registry := DefaultRegistryAddress()
	if k.HasRegistry(ctx, registry) {
		return registry, nil
	}
	return k.CreateRegistry(ctx, DefaultRegistryLabel)
}

// CreateRegistry creates an empty registry addressed by its label.
func (k Keeper) CreateRegistry(ctx context.Context, label string) (sdk.AccAddress, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, types.ErrInvalidLabel.Wrap("label cannot be empty")
	}

	registry := RegistryAddress(label)
	if k.HasRegistry(ctx, registry) {
		return nil, types.ErrRegistryExists.Wrapf("registry %q at %s", label, registry)
	}

	k.getStore(ctx).Set(RegistryKey(registry), []byte(label))

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeNewRegistry,
			sdk.NewAttribute(types.AttributeKeyRegistry, registry.String()),
			sdk.NewAttribute(types.AttributeKeyLabel, label),
		),
	)
	k.Logger(ctx).Info("registry created", "label", label, "registry", registry.String())
	return registry, nil
}

// HasRegistry reports whether the registry exists.
func (k Keeper) HasRegistry(ctx context.Context, registry sdk.AccAddress) bool {
	return k.getStore(ctx).Has(RegistryKey(registry))
}

// RegistryLabel returns the label of a registry, or "" if it does not exist.
func (k Keeper) RegistryLabel(ctx context.Context, registry sdk.AccAddress) string {
	return string(k.getStore(ctx).Get(RegistryKey(registry)))
}

// CreateExchange instantiates an exchange for token, sets it up and lists it
// in the registry under the next token id.
func (k Keeper) CreateExchange(ctx context.Context, registry sdk.AccAddress, token string) (sdk.AccAddress, error) {
	var exchange sdk.AccAddress
	err := k.atomic(ctx, func(ctx sdk.Context) error {
		if !k.HasRegistry(ctx, registry) {
			return types.ErrRegistryNotFound.Wrapf("registry %s", registry)
		}
		if token == "" {
			return types.ErrInvalidToken.Wrap("token cannot be empty")
		}
		if token == k.exchangeKeeper.NativeDenom() {
			return types.ErrInvalidToken.Wrapf("%s is the base asset", token)
		}
		if existing := k.GetExchange(ctx, registry, token); existing != nil {
			return types.ErrExchangeExists.Wrapf("token %s is traded by %s", token, existing)
		}

		id := k.TokenCount(ctx, registry) + 1

		var err error
		if exchange, err = k.exchangeKeeper.Instantiate(ctx, registry, sdk.Uint64ToBigEndian(id)); err != nil {
			return err
		}
		if err := k.exchangeKeeper.Setup(ctx, exchange, registry, token); err != nil {
			return err
		}

		store := k.getStore(ctx)
		store.Set(ExchangeByTokenKey(registry, token), exchange)
		store.Set(TokenByExchangeKey(registry, exchange), []byte(token))
		store.Set(TokenByIDKey(registry, id), []byte(token))
		store.Set(TokenCountKey(registry), sdk.Uint64ToBigEndian(id))

		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeNewExchange,
				sdk.NewAttribute(types.AttributeKeyRegistry, registry.String()),
				sdk.NewAttribute(types.AttributeKeyToken, token),
				sdk.NewAttribute(types.AttributeKeyExchange, exchange.String()),
				sdk.NewAttribute(types.AttributeKeyTokenID, strconv.FormatUint(id, 10)),
			),
		)
		return nil
	})
	if err != nil {
		return nil, err
	}

	k.metrics.ExchangesCreated.Inc()
	k.Logger(ctx).Info("exchange created", "token", token, "exchange", exchange.String())
	return exchange, nil
}

// GetExchange returns the exchange listed for token, or nil.
func (k Keeper) GetExchange(ctx context.Context, registry sdk.AccAddress, token string) sdk.AccAddress {
	bz := k.getStore(ctx).Get(ExchangeByTokenKey(registry, token))
	if bz == nil {
		return nil
	}
	return sdk.AccAddress(bz)
}

// GetToken returns the token traded by a listed exchange, or "".
func (k Keeper) GetToken(ctx context.Context, registry, exchange sdk.AccAddress) string {
	return string(k.getStore(ctx).Get(TokenByExchangeKey(registry, exchange)))
}

// GetTokenWithID returns the token listed under id, or "".
func (k Keeper) GetTokenWithID(ctx context.Context, registry sdk.AccAddress, id uint64) string {
	return string(k.getStore(ctx).Get(TokenByIDKey(registry, id)))
}

// TokenCount returns the number of tokens listed in the registry.
func (k Keeper) TokenCount(ctx context.Context, registry sdk.AccAddress) uint64 {
	bz := k.getStore(ctx).Get(TokenCountKey(registry))
	if bz == nil {
		return 0
	}
	return sdk.BigEndianToUint64(bz)
}

// IterateExchanges iterates over a registry's listings in id order.
func (k Keeper) IterateExchanges(ctx context.Context, registry sdk.AccAddress, cb func(record types.ExchangeRecord) (stop bool)) {
	prefix := TokenByIDKeyRegistryPrefix(registry)
	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), prefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		token := string(iterator.Value())
		record := types.ExchangeRecord{
			ID:       sdk.BigEndianToUint64(iterator.Key()[len(prefix):]),
			Token:    token,
			Exchange: k.GetExchange(ctx, registry, token),
		}
		if cb(record) {
			break
		}
	}
}

// IterateRegistries iterates over every registry.
func (k Keeper) IterateRegistries(ctx context.Context, cb func(registry sdk.AccAddress, label string) (stop bool)) {
	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), RegistryKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		registry := sdk.AccAddress(iterator.Key()[len(RegistryKeyPrefix)+1:])
		if cb(registry, string(iterator.Value())) {
			break
		}
	}
}
