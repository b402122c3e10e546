package types

const (
	// ModuleName defines the asset ledger module name
	ModuleName = "ledger"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName
)
