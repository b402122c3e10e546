package keeper

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/exchange/types"
)

// RegisterInvariants registers all exchange module invariants
func RegisterInvariants(ir sdk.InvariantRegistry, k Keeper) {
	ir.RegisterRoute(types.ModuleName, "share-supply", ShareSupplyInvariant(k))
	ir.RegisterRoute(types.ModuleName, "reserve-coverage", ReserveCoverageInvariant(k))
}

// AllInvariants runs all invariants of the exchange module
func AllInvariants(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		res, stop := ShareSupplyInvariant(k)(ctx)
		if stop {
			return res, stop
		}
		return ReserveCoverageInvariant(k)(ctx)
	}
}

// ShareSupplyInvariant checks that each exchange's share supply equals the
// sum of its holders' balances.
func ShareSupplyInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg    string
			broken bool
		)

		k.IterateExchanges(ctx, func(exchange sdk.AccAddress, _ types.Status) bool {
			sum := math.ZeroInt()
			if err := k.IterateShareHolders(ctx, exchange, func(_ sdk.AccAddress, shares math.Int) bool {
				sum = sum.Add(shares)
				return false
			}); err != nil {
				msg += fmt.Sprintf("\tfailed to iterate shares of %s: %v\n", exchange, err)
				broken = true
				return false
			}

			if supply := k.TotalShares(ctx, exchange); !sum.Equal(supply) {
				msg += fmt.Sprintf("\texchange %s: share supply %s != sum of balances %s\n", exchange, supply, sum)
				broken = true
			}
			return false
		})

		return sdk.FormatInvariant(types.ModuleName, "share-supply", msg), broken
	}
}

// ReserveCoverageInvariant checks that an exchange with outstanding shares
// holds both assets, and that redeeming every holder's shares would not pay
// out more than the reserves.
func ReserveCoverageInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg    string
			broken bool
		)

		k.IterateExchanges(ctx, func(exchange sdk.AccAddress, status types.Status) bool {
			total := k.TotalShares(ctx, exchange)
			if status != types.StatusReady || !total.IsPositive() {
				return false
			}

			ethReserve, tokenReserve := k.Reserves(ctx, exchange, k.TokenAddress(ctx, exchange))
			if !ethReserve.IsPositive() || !tokenReserve.IsPositive() {
				msg += fmt.Sprintf("\texchange %s: %s shares outstanding against reserves (%s, %s)\n", exchange, total, ethReserve, tokenReserve)
				broken = true
				return false
			}

			ethClaims, tokenClaims := math.ZeroInt(), math.ZeroInt()
			err := k.IterateShareHolders(ctx, exchange, func(_ sdk.AccAddress, shares math.Int) bool {
				ethOut, err := types.MulDiv(shares, ethReserve, total)
				if err != nil {
					return true
				}
				tokenOut, err := types.MulDiv(shares, tokenReserve, total)
				if err != nil {
					return true
				}
				ethClaims = ethClaims.Add(ethOut)
				tokenClaims = tokenClaims.Add(tokenOut)
				return false
			})
			if err != nil {
				msg += fmt.Sprintf("\tfailed to iterate shares of %s: %v\n", exchange, err)
				broken = true
				return false
			}

			if ethClaims.GT(ethReserve) || tokenClaims.GT(tokenReserve) {
				msg += fmt.Sprintf("\texchange %s: claims (%s, %s) exceed reserves (%s, %s)\n", exchange, ethClaims, tokenClaims, ethReserve, tokenReserve)
				broken = true
			}
			return false
		})

		return sdk.FormatInvariant(types.ModuleName, "reserve-coverage", msg), broken
	}
}
