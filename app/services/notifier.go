package services

import (
	"fmt"

	"go.uber.org/zap"
)

// Notifier is the user-facing side of committed cart transitions.
type Notifier interface {
	Notify(cartID string, change Change)
}

type LogNotifier struct {
	log *zap.SugaredLogger
}

func NewLogNotifier(log *zap.SugaredLogger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(cartID string, change Change) {
	msg := ChangeMessage(change)
	if msg == "" {
		return
	}
	n.log.Infow(msg, "cart_id", cartID, "transition", change.Kind, "lines", len(change.Lines))
}

// ChangeMessage renders the confirmation shown to the shopper. Loads have
// none.
func ChangeMessage(change Change) string {
	name := change.Line.Name
	if name == "" {
		name = "Item"
	}

	switch change.Kind {
	case TransitionAdd:
		return fmt.Sprintf("%s added to cart (quantity: %d)", name, change.Line.Quantity)
	case TransitionRemove:
		return fmt.Sprintf("%s removed from cart", name)
	case TransitionUpdateQuantity:
		return fmt.Sprintf("%s quantity updated to %d", name, change.Line.Quantity)
	case TransitionClear:
		if change.Reason == ClearReasonOrder {
			if len(change.Lines) > 0 {
				return "Order placed successfully, ordered items were removed from your cart"
			}
			return "Order placed successfully, your cart has been cleared"
		}
		return "Cart cleared"
	default:
		return ""
	}
}
