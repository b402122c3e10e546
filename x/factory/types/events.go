package types

// Factory module event types
const (
	EventTypeNewExchange = "new_exchange"
	EventTypeNewRegistry = "new_registry"
)

// Factory module event attribute keys
const (
	AttributeKeyRegistry = "registry"
	AttributeKeyLabel    = "label"
	AttributeKeyToken    = "token"
	AttributeKeyExchange = "exchange"
	AttributeKeyTokenID  = "token_id"
)
