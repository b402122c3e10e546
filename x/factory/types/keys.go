package types

const (
	// ModuleName defines the module name
	ModuleName = "factory"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName
)
