package keeper

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/factory/types"
)

// RegisterInvariants registers the factory module invariants
func RegisterInvariants(ir sdk.InvariantRegistry, k Keeper) {
	ir.RegisterRoute(types.ModuleName, "registry-index", RegistryIndexInvariant(k))
}

// RegistryIndexInvariant checks that every registry lists ids 1..count and
// that its token and exchange indexes agree in both directions.
func RegistryIndexInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg    string
			broken bool
		)

		k.IterateRegistries(ctx, func(registry sdk.AccAddress, label string) bool {
			var listed uint64
			k.IterateExchanges(ctx, registry, func(record types.ExchangeRecord) bool {
				listed++
				if record.ID != listed {
					msg += fmt.Sprintf("\tregistry %q: expected id %d, found %d\n", label, listed, record.ID)
					broken = true
				}
				if record.Exchange == nil {
					msg += fmt.Sprintf("\tregistry %q: token %s has no exchange\n", label, record.Token)
					broken = true
					return false
				}
				if token := k.GetToken(ctx, registry, record.Exchange); token != record.Token {
					msg += fmt.Sprintf("\tregistry %q: exchange %s maps back to %q, not %q\n", label, record.Exchange, token, record.Token)
					broken = true
				}
				return false
			})

			if count := k.TokenCount(ctx, registry); count != listed {
				msg += fmt.Sprintf("\tregistry %q: token count %d, listed %d\n", label, count, listed)
				broken = true
			}
			return false
		})

		return sdk.FormatInvariant(types.ModuleName, "registry-index", msg), broken
	}
}
