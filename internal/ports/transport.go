package ports

import (
	"context"

	"github.com/roslog/rerunros/internal/domain"
)

// MessageHandler is invoked by the transport with one message per delivered
// wire message. The transport owns the scheduling model; handlers must be
// safe to invoke concurrently for different topics.
type MessageHandler func(msg domain.Message)

// Transport delivers messages from the messaging middleware to the bridge.
//
// The bridge registers exactly one handler per unique topic present in the
// routing table, before any traffic flows. Subscription setup, QoS and
// executor scheduling are the transport's concern.
type Transport interface {
	// Subscribe registers the handler for a topic carrying messages of the
	// given shape. It returns an error if the subscription cannot be
	// established.
	Subscribe(ctx context.Context, topic, shape string, handler MessageHandler) error

	// Close tears down all subscriptions and stops delivery.
	Close() error
}
