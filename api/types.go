package api

import (
	exchangetypes "github.com/paw-chain/pawswap/x/exchange/types"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// RegistryExchangesResponse lists the exchanges of one registry
type RegistryExchangesResponse struct {
	Registry   string             `json:"registry"`
	Label      string             `json:"label"`
	TokenCount uint64             `json:"token_count"`
	Exchanges  []RegistryExchange `json:"exchanges"`
}

// RegistryExchange is one listed token with its exchange snapshot
type RegistryExchange struct {
	ID uint64 `json:"id"`
	exchangetypes.ExchangeInfo
}

// PriceResponse is a price quote against current reserves
type PriceResponse struct {
	Exchange string `json:"exchange"`
	Kind     string `json:"kind"`
	Amount   string `json:"amount"`
	Price    string `json:"price"`
}

// BalanceResponse is a ledger balance
type BalanceResponse struct {
	Owner   string `json:"owner"`
	Denom   string `json:"denom"`
	Balance string `json:"balance"`
}
