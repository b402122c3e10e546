package types

import (
	"fmt"

	"cosmossdk.io/math"
)

// DefaultMinInitialDeposit is one gwei-equivalent of an 18 decimal base asset
var DefaultMinInitialDeposit = math.NewInt(1_000_000_000)

// Params holds the exchange module parameters
type Params struct {
	// MinInitialDeposit is the smallest base asset amount that may bootstrap an empty pool
	MinInitialDeposit math.Int `json:"min_initial_deposit" mapstructure:"min_initial_deposit"`
}

// DefaultParams returns the default exchange parameters
func DefaultParams() Params {
	return Params{MinInitialDeposit: DefaultMinInitialDeposit}
}

// Validate checks that the parameters are well formed
func (p Params) Validate() error {
	if p.MinInitialDeposit.IsNil() || !p.MinInitialDeposit.IsPositive() {
		return ErrInvalidParams.Wrapf("min initial deposit must be positive, got %s", p.MinInitialDeposit)
	}
	return nil
}

func (p Params) String() string {
	return fmt.Sprintf("min_initial_deposit: %s", p.MinInitialDeposit)
}
