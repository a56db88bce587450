package constant

type ContextKey string

const (
	// IdentityKey holds the resolved *model.Identity of the caller.
	IdentityKey ContextKey = "identity"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Notification event types published to the dispatcher.
const (
	EventOrderCreated       = "order_created"
	EventOrderStatusUpdated = "order_status_updated"
	EventPaymentConfirmed   = "payment_confirmed"
	EventCartUpdated        = "cart_updated"
	EventReturnRequested    = "return_requested"
	EventReturnResponded    = "return_responded"
	EventReplacementSent    = "replacement_sent"
	EventDefectiveReceived  = "defective_received"
	EventExchangeValidated  = "exchange_validated"
	EventExchangeResolved   = "exchange_resolved"
)
