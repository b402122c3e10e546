package cmd

import (
	"fmt"
	"regexp"
	"strings"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"

	"github.com/paw-chain/pawswap/app"
	exchangetypes "github.com/paw-chain/pawswap/x/exchange/types"
	factorykeeper "github.com/paw-chain/pawswap/x/factory/keeper"
)

var accountNameRe = regexp.MustCompile(`^[a-z][a-z0-9_-]{0,31}$`)

// AccountAddress returns the sandbox address of a named account.
func AccountAddress(name string) sdk.AccAddress {
	return sdk.AccAddress(address.Hash("pawswap/account", []byte(name)))
}

// parseAccount accepts a bech32 address or a sandbox account name.
func parseAccount(arg string) (sdk.AccAddress, error) {
	if strings.HasPrefix(arg, app.Bech32PrefixAccAddr+"1") {
		return sdk.AccAddressFromBech32(arg)
	}
	if !accountNameRe.MatchString(arg) {
		return nil, fmt.Errorf("%q is neither a bech32 address nor an account name", arg)
	}
	return AccountAddress(arg), nil
}

// parseExchange accepts an exchange address or a token listed in the default
// registry.
func parseExchange(ctx sdk.Context, a *app.App, arg string) (sdk.AccAddress, error) {
	if strings.HasPrefix(arg, app.Bech32PrefixAccAddr+"1") {
		return sdk.AccAddressFromBech32(arg)
	}
	exchange := a.FactoryKeeper.GetExchange(ctx, factorykeeper.DefaultRegistryAddress(), arg)
	if exchange == nil {
		return nil, exchangetypes.ErrExchangeNotFound.Wrapf("no exchange for token %q in the default registry", arg)
	}
	return exchange, nil
}

// parseRegistry accepts a registry address or label.
func parseRegistry(arg string) (sdk.AccAddress, error) {
	if strings.HasPrefix(arg, app.Bech32PrefixAccAddr+"1") {
		return sdk.AccAddressFromBech32(arg)
	}
	return factorykeeper.RegistryAddress(arg), nil
}

// parseAmount parses a non-negative integer amount.
func parseAmount(name, arg string) (math.Int, error) {
	amount, ok := math.NewIntFromString(arg)
	if !ok || amount.IsNegative() {
		return math.Int{}, fmt.Errorf("invalid %s %q", name, arg)
	}
	return amount, nil
}

// parseAmounts parses pairs of (name, arg) in order.
func parseAmounts(pairs ...string) ([]math.Int, error) {
	amounts := make([]math.Int, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		amount, err := parseAmount(pairs[i], pairs[i+1])
		if err != nil {
			return nil, err
		}
		amounts = append(amounts, amount)
	}
	return amounts, nil
}
