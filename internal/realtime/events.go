package realtime

// Server-originated event types. Names are part of the wire protocol the
// customer and admin frontends listen on.
const (
	EventNewOrder         = "new_cod_order"
	EventNewOrderAdmin    = "new_cod_order_admin"
	EventOrderUpdated     = "order_updated"
	EventOrdersUpdated    = "orders_updated"
	EventPaymentReceived  = "cod_payment_received"
	EventPaymentConfirmed = "cod_payment_confirmed"
	EventNewMessage       = "new_message"
)
