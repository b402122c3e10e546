package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"
)

var (
	// StatusKeyPrefix is the prefix for the lifecycle tag of each exchange
	StatusKeyPrefix = []byte{0x01}

	// TokenKeyPrefix is the prefix for the token denom of each exchange
	TokenKeyPrefix = []byte{0x02}

	// RegistryKeyPrefix is the prefix for the registry that set up each exchange
	RegistryKeyPrefix = []byte{0x03}

	// ShareSupplyKeyPrefix is the prefix for the liquidity share supply
	ShareSupplyKeyPrefix = []byte{0x04}

	// ShareBalanceKeyPrefix is the prefix for liquidity share balances
	ShareBalanceKeyPrefix = []byte{0x05}

	// ShareAllowanceKeyPrefix is the prefix for liquidity share allowances
	ShareAllowanceKeyPrefix = []byte{0x06}

	// ParamsKey is the key for module parameters
	ParamsKey = []byte{0x07}

	// ReentrancyLockKeyPrefix is the prefix for the lock held while an exchange moves assets
	ReentrancyLockKeyPrefix = []byte{0x08}
)

func exchangeKey(prefix []byte, exchange sdk.AccAddress) []byte {
	return append(append([]byte{}, prefix...), address.MustLengthPrefix(exchange)...)
}

// StatusKey returns the store key for an exchange's lifecycle tag
func StatusKey(exchange sdk.AccAddress) []byte {
	return exchangeKey(StatusKeyPrefix, exchange)
}

// TokenKey returns the store key for an exchange's token
func TokenKey(exchange sdk.AccAddress) []byte {
	return exchangeKey(TokenKeyPrefix, exchange)
}

// RegistryKey returns the store key for an exchange's registry
func RegistryKey(exchange sdk.AccAddress) []byte {
	return exchangeKey(RegistryKeyPrefix, exchange)
}

// ShareSupplyKey returns the store key for an exchange's share supply
func ShareSupplyKey(exchange sdk.AccAddress) []byte {
	return exchangeKey(ShareSupplyKeyPrefix, exchange)
}

// ShareBalanceExchangePrefix returns the prefix for all share balances of an exchange
func ShareBalanceExchangePrefix(exchange sdk.AccAddress) []byte {
	return exchangeKey(ShareBalanceKeyPrefix, exchange)
}

// ShareBalanceKey returns the store key for an owner's shares in an exchange
func ShareBalanceKey(exchange, owner sdk.AccAddress) []byte {
	return append(ShareBalanceExchangePrefix(exchange), address.MustLengthPrefix(owner)...)
}

// ShareAllowanceKey returns the store key for the shares spender may move for owner
func ShareAllowanceKey(exchange, owner, spender sdk.AccAddress) []byte {
	key := append(exchangeKey(ShareAllowanceKeyPrefix, exchange), address.MustLengthPrefix(owner)...)
	return append(key, address.MustLengthPrefix(spender)...)
}

// ReentrancyLockKey returns the store key for an exchange's reentrancy lock
func ReentrancyLockKey(exchange sdk.AccAddress) []byte {
	return exchangeKey(ReentrancyLockKeyPrefix, exchange)
}
