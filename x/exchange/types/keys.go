package types

const (
	// ModuleName defines the module name
	ModuleName = "exchange"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// NativeDenom is the base asset every exchange trades its token against
	NativeDenom = "apaw"
)

// Liquidity share token metadata
const (
	ShareName     = "PAW Swap V1"
	ShareSymbol   = "PSWP-V1"
	ShareDecimals = 18
)
