package keeper

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/ledger/types"
)

// RegisterInvariants registers the ledger module invariants
func RegisterInvariants(ir sdk.InvariantRegistry, k Keeper) {
	ir.RegisterRoute(types.ModuleName, "total-supply", TotalSupplyInvariant(k))
}

// TotalSupplyInvariant checks that the supply of every denom equals the sum
// of its balances.
func TotalSupplyInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg    string
			broken bool
		)

		err := k.IterateDenoms(ctx, func(denom string, supply math.Int) bool {
			sum := math.ZeroInt()
			if err := k.IterateBalances(ctx, denom, func(_ sdk.AccAddress, balance math.Int) bool {
				sum = sum.Add(balance)
				return false
			}); err != nil {
				msg += fmt.Sprintf("\tfailed to iterate balances of %s: %v\n", denom, err)
				broken = true
				return false
			}
			if !sum.Equal(supply) {
				msg += fmt.Sprintf("\t%s supply %s does not match balances %s\n", denom, supply, sum)
				broken = true
			}
			return false
		})
		if err != nil {
			msg += fmt.Sprintf("\tfailed to iterate supplies: %v\n", err)
			broken = true
		}

		return sdk.FormatInvariant(types.ModuleName, "total-supply", msg), broken
	}
}
