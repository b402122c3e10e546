package types

// Exchange module event types
const (
	EventTypeAddLiquidity    = "add_liquidity"
	EventTypeRemoveLiquidity = "remove_liquidity"
	EventTypeTokenPurchase   = "token_purchase"
	EventTypeEthPurchase     = "eth_purchase"
	EventTypeShareTransfer   = "share_transfer"
	EventTypeShareApproval   = "share_approval"
)

// Exchange module event attribute keys
const (
	AttributeKeyExchange     = "exchange"
	AttributeKeyProvider     = "provider"
	AttributeKeyBuyer        = "buyer"
	AttributeKeyEthAmount    = "eth_amount"
	AttributeKeyTokenAmount  = "token_amount"
	AttributeKeyEthSold      = "eth_sold"
	AttributeKeyTokensSold   = "tokens_sold"
	AttributeKeyEthBought    = "eth_bought"
	AttributeKeyTokensBought = "tokens_bought"
	AttributeKeySender       = "sender"
	AttributeKeyRecipient    = "recipient"
	AttributeKeyOwner        = "owner"
	AttributeKeySpender      = "spender"
	AttributeKeyAmount       = "amount"
)
