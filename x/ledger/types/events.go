package types

// Event types for the ledger module
const (
	EventTypeTransfer = "ledger_transfer"
	EventTypeApproval = "ledger_approval"
	EventTypeMint     = "ledger_mint"

	AttributeKeyDenom     = "denom"
	AttributeKeySender    = "sender"
	AttributeKeyRecipient = "recipient"
	AttributeKeyOwner     = "owner"
	AttributeKeySpender   = "spender"
	AttributeKeyAmount    = "amount"
)
