/*
Package keeper implements the exchange module: constant-product pools that
trade one token against the base asset.

Every exchange is an address with its own token, registry and liquidity
share ledger. Reserves are not stored here; they are the exchange's balances
in the asset ledger, read fresh on every call.

Pricing charges a 0.3% fee on the input side:

	output = floor(in*997*outRes / (inRes*1000 + in*997))
	input  = floor(inRes*out*1000 / ((outRes-out)*997)) + 1

All public mutating operations run in a cached context and commit only on
success. Ledger transfer hooks may call back into the keeper, so every
operation that moves an exchange's assets holds a store lock on that
exchange until it settles. A re-entrant call that reads a locked exchange's
reserves fails with ErrReentrancy. Share bookkeeping is written before any
ledger transfer, and each primitive orders its transfers so that the last
hook to fire sees both reserves settled.

Token to token trades are two legs through the base asset: exchange A sells
its token for the base asset and spends it, unmodified, on exchange B.
*/
package keeper
