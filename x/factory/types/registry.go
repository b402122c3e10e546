package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// ExchangeRecord is one token listed in a registry
type ExchangeRecord struct {
	ID       uint64         `json:"id"`
	Token    string         `json:"token"`
	Exchange sdk.AccAddress `json:"exchange"`
}
