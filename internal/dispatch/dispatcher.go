// Package dispatch contains the per-message routing engine of the bridge.
package dispatch

import (
	"context"

	"github.com/roslog/rerunros/internal/convert"
	"github.com/roslog/rerunros/internal/domain"
	"github.com/roslog/rerunros/internal/ports"
	"github.com/roslog/rerunros/internal/route"
	"github.com/roslog/rerunros/pkg/log"
)

// EventEmitter receives per-message failure events. Both conditions are
// recoverable: dispatch continues and nothing is retried.
type EventEmitter interface {
	// OnConversionError is called when a payload matching a registered
	// shape cannot be converted.
	OnConversionError(shape, topic string, err error)

	// OnDeliveryError is called when the sink rejects a converted record.
	OnDeliveryError(entityPath string, err error)
}

// Dispatcher routes incoming messages through the routing table and the
// converter registry to the sink.
//
// The table and registry are immutable, so Dispatch is safe to invoke
// concurrently from multiple transport workers. The sink is the one shared
// collaborator; see ports.Sink for its synchronization contract.
type Dispatcher struct {
	table    *route.Table
	registry *convert.Registry
	sink     ports.Sink
	logger   log.Logger
	emitter  EventEmitter
}

// New creates a dispatcher. The table must have been built against the same
// registry, so every rule's shape is known to resolve. A nil emitter
// disables event callbacks.
func New(table *route.Table, registry *convert.Registry, sink ports.Sink, logger log.Logger, emitter EventEmitter) *Dispatcher {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Dispatcher{
		table:    table,
		registry: registry,
		sink:     sink,
		logger:   logger,
		emitter:  emitter,
	}
}

// Dispatch routes one message. Messages on unconfigured topics are dropped
// silently by policy. Per-message failures are reported through the emitter
// and never propagate: one bad message must not halt the stream.
func (d *Dispatcher) Dispatch(ctx context.Context, msg domain.Message) {
	rules := d.table.RulesFor(msg.Topic)
	if len(rules) == 0 {
		return
	}

	// One shape per topic, validated at table construction.
	shape, _ := d.table.ShapeFor(msg.Topic)
	conv, err := d.registry.Resolve(shape)
	if err != nil {
		d.logger.Error("shape vanished from registry", log.String("shape", shape), log.Err(err))
		return
	}

	frameID := msg.FrameID
	if frameID == "" {
		if fc, ok := conv.(convert.FrameCarrier); ok {
			frameID, _ = fc.FrameID(msg.Payload)
		}
	}

	for _, rule := range rules {
		if !rule.Matches(frameID) {
			// Routing miss, expected and frequent with frame fan-out.
			continue
		}

		records, err := conv.Convert(msg.Payload)
		if err != nil {
			d.logger.Debug("conversion failed",
				log.String("shape", shape),
				log.String("topic", msg.Topic),
				log.Err(err))
			if d.emitter != nil {
				d.emitter.OnConversionError(shape, msg.Topic, err)
			}
			continue
		}

		for _, rec := range records {
			stamp := rec.Stamp
			if stamp.IsZero() {
				stamp = msg.Received
			}
			if err := d.sink.Log(ctx, rule.EntityPath, stamp, rec.Entity); err != nil {
				d.logger.Debug("record dropped",
					log.String("entity_path", rule.EntityPath),
					log.Err(err))
				if d.emitter != nil {
					d.emitter.OnDeliveryError(rule.EntityPath, err)
				}
			}
		}
	}
}
