package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"
)

var (
	// BalanceKeyPrefix is the prefix for account balances, keyed by denom then owner
	BalanceKeyPrefix = []byte{0x01}

	// SupplyKeyPrefix is the prefix for the total supply of each denom
	SupplyKeyPrefix = []byte{0x02}

	// AllowanceKeyPrefix is the prefix for spending allowances
	AllowanceKeyPrefix = []byte{0x03}
)

// BalanceKeyDenomPrefix returns the prefix for all balances of a denom
func BalanceKeyDenomPrefix(denom string) []byte {
	return append(append([]byte{}, BalanceKeyPrefix...), address.MustLengthPrefix([]byte(denom))...)
}

// BalanceKey returns the store key for an owner's balance of a denom
func BalanceKey(denom string, owner sdk.AccAddress) []byte {
	return append(BalanceKeyDenomPrefix(denom), address.MustLengthPrefix(owner)...)
}

// SupplyKey returns the store key for the total supply of a denom
func SupplyKey(denom string) []byte {
	return append(append([]byte{}, SupplyKeyPrefix...), []byte(denom)...)
}

// AllowanceKey returns the store key for the amount spender may move on behalf of owner
func AllowanceKey(denom string, owner, spender sdk.AccAddress) []byte {
	key := append(append([]byte{}, AllowanceKeyPrefix...), address.MustLengthPrefix([]byte(denom))...)
	key = append(key, address.MustLengthPrefix(owner)...)
	return append(key, address.MustLengthPrefix(spender)...)
}
