package bridge

import (
	"net/http"

	"github.com/roslog/rerunros/internal/ports"
	"github.com/roslog/rerunros/pkg/log"
)

// Re-export the interfaces a caller needs to inject custom implementations.
type (
	// Logger is the structured logging interface from pkg/log.
	Logger = log.Logger

	// Field is the structured log field type from pkg/log.
	Field = log.Field

	// HTTPClient is the interface for making HTTP requests.
	// *http.Client satisfies it.
	HTTPClient = ports.HTTPClient

	// Sink receives converted records.
	Sink = ports.Sink

	// Transport delivers raw messages to the bridge.
	Transport = ports.Transport
)

// Option configures optional behavior of a Bridge.
type Option func(*options)

type options struct {
	httpClient   ports.HTTPClient
	logger       log.Logger
	sink         ports.Sink
	transport    ports.Transport
	eventHandler EventHandler
	plugins      []Plugin
}

func defaultOptions(client *http.Client) options {
	return options{
		httpClient: client,
		logger:     log.NewNoopLogger(),
	}
}

// WithHTTPClient sets a custom HTTP client for sink communication.
// If not provided, a default client with the configured timeout is used.
func WithHTTPClient(client HTTPClient) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithLogger sets a custom logger for structured logging.
// If not provided, a no-op logger is used.
func WithLogger(logger Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithSink replaces the HTTP sink with a custom implementation.
// Config.SinkURL and Config.Dump are ignored when set.
func WithSink(sink Sink) Option {
	return func(o *options) {
		o.sink = sink
	}
}

// WithTransport replaces the TCP ingest transport with a custom
// implementation. Config.Listen is ignored when set.
func WithTransport(transport Transport) Option {
	return func(o *options) {
		o.transport = transport
	}
}

// WithEventHandler sets a handler for bridge events.
// Events are called synchronously from dispatch goroutines.
// If not provided, no events are emitted.
func WithEventHandler(handler EventHandler) Option {
	return func(o *options) {
		o.eventHandler = handler
	}
}

// WithPlugin registers a plugin to be initialized when the bridge starts.
// Plugins are initialized in registration order and shut down in reverse
// order.
func WithPlugin(plugin Plugin) Option {
	return func(o *options) {
		o.plugins = append(o.plugins, plugin)
	}
}
