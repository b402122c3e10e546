package types

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Status tags the lifecycle of an exchange instance
type Status byte

const (
	StatusUnspecified Status = iota
	StatusUninitialized
	StatusReady
)

func (s Status) String() string {
	switch s {
	case StatusUninitialized:
		return "uninitialized"
	case StatusReady:
		return "ready"
	default:
		return "unspecified"
	}
}

// ShareToken describes the liquidity share token every exchange issues
type ShareToken struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals uint32 `json:"decimals"`
}

// DefaultShareToken returns the share token metadata common to all exchanges
func DefaultShareToken() ShareToken {
	return ShareToken{Name: ShareName, Symbol: ShareSymbol, Decimals: ShareDecimals}
}

// ExchangeInfo is a point-in-time view of an exchange and its reserves
type ExchangeInfo struct {
	Address      sdk.AccAddress `json:"address"`
	Registry     sdk.AccAddress `json:"registry"`
	Token        string         `json:"token"`
	Status       string         `json:"status"`
	EthReserve   math.Int       `json:"eth_reserve"`
	TokenReserve math.Int       `json:"token_reserve"`
	TotalShares  math.Int       `json:"total_shares"`
	ShareToken   ShareToken     `json:"share_token"`
}
