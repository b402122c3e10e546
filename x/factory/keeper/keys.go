package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"
)

var (
	// RegistryKeyPrefix is the prefix for registry labels
	RegistryKeyPrefix = []byte{0x01}

	// TokenCountKeyPrefix is the prefix for the number of tokens in each registry
	TokenCountKeyPrefix = []byte{0x02}

	// ExchangeByTokenKeyPrefix is the prefix for the token to exchange index
	ExchangeByTokenKeyPrefix = []byte{0x03}

	// TokenByExchangeKeyPrefix is the prefix for the exchange to token index
	TokenByExchangeKeyPrefix = []byte{0x04}

	// TokenByIDKeyPrefix is the prefix for the id to token index
	TokenByIDKeyPrefix = []byte{0x05}
)

func registryKey(prefix []byte, registry sdk.AccAddress) []byte {
	return append(append([]byte{}, prefix...), address.MustLengthPrefix(registry)...)
}

// RegistryKey returns the store key for a registry's label
func RegistryKey(registry sdk.AccAddress) []byte {
	return registryKey(RegistryKeyPrefix, registry)
}

// TokenCountKey returns the store key for a registry's token count
func TokenCountKey(registry sdk.AccAddress) []byte {
	return registryKey(TokenCountKeyPrefix, registry)
}

// ExchangeByTokenKey returns the store key for the exchange listed for token
func ExchangeByTokenKey(registry sdk.AccAddress, token string) []byte {
	return append(registryKey(ExchangeByTokenKeyPrefix, registry), []byte(token)...)
}

// TokenByExchangeKey returns the store key for the token an exchange trades
func TokenByExchangeKey(registry, exchange sdk.AccAddress) []byte {
	return append(registryKey(TokenByExchangeKeyPrefix, registry), exchange...)
}

// TokenByIDKeyRegistryPrefix returns the prefix of a registry's id index
func TokenByIDKeyRegistryPrefix(registry sdk.AccAddress) []byte {
	return registryKey(TokenByIDKeyPrefix, registry)
}

// TokenByIDKey returns the store key for the token listed under id
func TokenByIDKey(registry sdk.AccAddress, id uint64) []byte {
	return append(TokenByIDKeyRegistryPrefix(registry), sdk.Uint64ToBigEndian(id)...)
}
