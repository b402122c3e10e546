package app

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
)

type invariantRoute struct {
	module    string
	route     string
	invariant sdk.Invariant
}

// invariantRegistry collects module invariants in registration order.
type invariantRegistry struct {
	routes []invariantRoute
}

var _ sdk.InvariantRegistry = (*invariantRegistry)(nil)

func newInvariantRegistry() *invariantRegistry {
	return &invariantRegistry{}
}

// RegisterRoute implements sdk.InvariantRegistry.
func (r *invariantRegistry) RegisterRoute(moduleName, route string, invar sdk.Invariant) {
	r.routes = append(r.routes, invariantRoute{module: moduleName, route: route, invariant: invar})
}
