package notify

import (
	"context"

	"homewares/internal/model"
)

// Template keys for order lifecycle notifications.
const (
	TemplateOrderConfirmed = "order_confirmed"
	TemplateOrderShipped   = "order_shipped"
	TemplateOrderDelivered = "order_delivered"
)

// templateFor maps the order statuses that notify customers to a template
// key. Transitions outside this table emit no notification.
var templateFor = map[model.OrderStatus]string{
	model.OrderConfirmed: TemplateOrderConfirmed,
	model.OrderShipped:   TemplateOrderShipped,
	model.OrderDelivered: TemplateOrderDelivered,
}

// TemplateFor returns the notification template for a status and whether the
// status notifies at all.
func TemplateFor(status model.OrderStatus) (string, bool) {
	t, ok := templateFor[status]
	return t, ok
}

// Notifier is the trigger contract the lifecycle controller fires on key
// transitions. Implementations are best-effort: a returned error is logged
// by the caller and never rolls back the transition that produced it.
type Notifier interface {
	Notify(ctx context.Context, recipient, template string, data map[string]string) error
}

// Event is a committed order transition handed to the dispatcher. Recipient
// is resolved by the emitter; an empty recipient suppresses the
// notification.
type Event struct {
	OrderID     string
	OrderNumber string
	Status      model.OrderStatus
	Recipient   string
	Template    string
}
