package bridge

import (
	"context"
	"net/http"
	"sync"

	"github.com/roslog/rerunros/internal/adapters/sinkhttp"
	"github.com/roslog/rerunros/internal/adapters/sinklog"
	"github.com/roslog/rerunros/internal/adapters/tcptransport"
	"github.com/roslog/rerunros/internal/app"
	"github.com/roslog/rerunros/internal/convert"
	"github.com/roslog/rerunros/internal/dispatch"
	"github.com/roslog/rerunros/internal/domain"
	"github.com/roslog/rerunros/internal/ports"
	"github.com/roslog/rerunros/internal/route"
	"github.com/roslog/rerunros/pkg/log"
)

// Bridge relays ROS messages to a visualization sink. Use New to create an
// instance, then Start to begin accepting publisher connections.
type Bridge struct {
	config     Config
	opts       options
	lifecycle  *app.Lifecycle
	registry   *convert.Registry
	table      *route.Table
	dispatcher *dispatch.Dispatcher
	transport  ports.Transport
	sink       ports.Sink
	logger     log.Logger
	emitter    eventEmitterWrapper

	plugins []Plugin

	mu     sync.RWMutex
	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a Bridge with the given configuration.
// Every conversion is validated against the built-in converter set here, so
// an unroutable configuration fails before any publisher can connect.
// The instance is created in StateStopped; call Start to begin relaying.
func New(cfg Config, opts ...Option) (*Bridge, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	registry := convert.Builtins()

	rules := make([]domain.Rule, 0, len(cfg.Conversions))
	for _, conv := range cfg.Conversions {
		rules = append(rules, domain.Rule{
			Topic:      conv.Topic,
			Shape:      conv.ROSType,
			EntityPath: conv.EntityPath,
			FrameID:    conv.FrameID,
		})
	}
	table, err := route.NewTable(rules, registry)
	if err != nil {
		return nil, err
	}

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	o := defaultOptions(httpClient)
	for _, opt := range opts {
		opt(&o)
	}

	logger := o.logger
	if logger == nil {
		logger = log.NewNoopLogger()
	}

	emitter := eventEmitterWrapper{handler: o.eventHandler}

	b := &Bridge{
		config:   cfg,
		opts:     o,
		registry: registry,
		table:    table,
		logger:   logger,
		emitter:  emitter,
		plugins:  o.plugins,
	}
	b.lifecycle = app.NewLifecycle(logger, &b.emitter)

	switch {
	case o.sink != nil:
		b.sink = o.sink
	case cfg.Dump:
		b.sink = sinklog.New(logger)
	default:
		b.sink = sinkhttp.New(o.httpClient, cfg.SinkURL, cfg.AuthKey, cfg.AppID, logger)
	}

	b.dispatcher = dispatch.New(table, registry, b.sink, logger, &b.emitter)

	return b, nil
}

// Start begins accepting publisher connections in the background.
// Returns immediately after the transport is listening and every configured
// topic is subscribed. Returns an error if already running or if startup
// fails. The provided context bounds the lifetime of the relay.
func (b *Bridge) Start(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.lifecycle.CanStart() {
		return domain.ErrAlreadyRunning
	}

	if err := b.lifecycle.TransitionTo(app.StateStarting, "Start() called"); err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	b.ctx = runCtx
	b.cancel = cancel
	b.lifecycle.SetCancel(cancel)

	pluginCfg := PluginConfig{
		ConfigPath: b.config.ConfigPath,
		Listen:     b.config.Listen,
		SinkURL:    b.config.SinkURL,
		AppID:      b.config.AppID,
		AuthKey:    b.config.AuthKey,
		Logger:     b.logger,
	}
	for _, p := range b.plugins {
		if err := p.Initialize(runCtx, pluginCfg); err != nil {
			b.logger.Error("plugin initialization failed",
				log.String("plugin", p.Name()),
				log.Err(err))
			cancel()
			_ = b.lifecycle.TransitionTo(app.StateCrashed, "plugin init failed: "+p.Name())
			return err
		}
		b.logger.Info("plugin initialized", log.String("plugin", p.Name()))
	}

	transport := b.opts.transport
	if transport == nil {
		var err error
		transport, err = tcptransport.New(b.config.Listen, b.logger)
		if err != nil {
			cancel()
			_ = b.lifecycle.TransitionTo(app.StateCrashed, "transport listen failed")
			return err
		}
	}
	b.transport = transport

	for _, topic := range b.table.Topics() {
		shape, _ := b.table.ShapeFor(topic)
		err := transport.Subscribe(runCtx, topic, shape, func(msg domain.Message) {
			b.dispatcher.Dispatch(runCtx, msg)
		})
		if err != nil {
			cancel()
			_ = transport.Close()
			_ = b.lifecycle.TransitionTo(app.StateCrashed, "subscribe failed: "+topic)
			return err
		}
	}

	b.lifecycle.AddWorker()
	go func() {
		defer b.lifecycle.WorkerDone()

		if err := b.lifecycle.TransitionTo(app.StateRunning, "transport subscribed"); err != nil {
			b.logger.Error("failed to transition to running", log.Err(err))
			return
		}

		<-runCtx.Done()
	}()

	return nil
}

// Stop gracefully shuts down the bridge. Active publisher connections are
// closed and plugins are shut down in reverse registration order. Waits up
// to 30 seconds before forcing shutdown. Returns nil on graceful shutdown,
// ErrShutdownTimeout if forced.
func (b *Bridge) Stop() error {
	b.mu.Lock()

	if !b.lifecycle.CanStop() {
		b.mu.Unlock()
		return domain.ErrNotRunning
	}

	if err := b.lifecycle.TransitionTo(app.StateStopping, "Stop() called"); err != nil {
		b.mu.Unlock()
		return err
	}

	if b.cancel != nil {
		b.cancel()
	}
	transport := b.transport

	b.mu.Unlock()

	if transport != nil {
		if err := transport.Close(); err != nil {
			b.logger.Warn("transport close failed", log.Err(err))
		}
	}

	err := b.lifecycle.WaitWithTimeout(app.ShutdownTimeout)

	shutdownCtx := context.Background()
	for i := len(b.plugins) - 1; i >= 0; i-- {
		p := b.plugins[i]
		if shutdownErr := p.Shutdown(shutdownCtx); shutdownErr != nil {
			b.logger.Error("plugin shutdown failed",
				log.String("plugin", p.Name()),
				log.Err(shutdownErr))
		} else {
			b.logger.Info("plugin shutdown complete", log.String("plugin", p.Name()))
		}
	}

	if err != nil {
		_ = b.lifecycle.TransitionTo(app.StateCrashed, "shutdown timeout")
	} else {
		_ = b.lifecycle.TransitionTo(app.StateStopped, "graceful shutdown")
	}

	return err
}

// Status returns the current lifecycle state.
// Safe to call concurrently from any goroutine.
func (b *Bridge) Status() State {
	return convertState(b.lifecycle.State())
}

// Topics returns the configured topics in sorted order.
func (b *Bridge) Topics() []string {
	return b.table.Topics()
}

// eventEmitterWrapper adapts EventHandler to the internal emitter interfaces.
type eventEmitterWrapper struct {
	handler EventHandler
}

func (e *eventEmitterWrapper) OnStateChange(previous, current app.State, reason string) {
	if e.handler == nil {
		return
	}
	e.handler.OnStateChange(StateChangeEvent{
		Previous: convertState(previous),
		Current:  convertState(current),
		Reason:   reason,
	})
}

func (e *eventEmitterWrapper) OnConversionError(shape, topic string, err error) {
	if e.handler == nil {
		return
	}
	e.handler.OnConversionError(ConversionErrorEvent{
		Shape: shape,
		Topic: topic,
		Err:   err,
	})
}

func (e *eventEmitterWrapper) OnDeliveryError(entityPath string, err error) {
	if e.handler == nil {
		return
	}
	e.handler.OnDeliveryError(DeliveryErrorEvent{
		EntityPath: entityPath,
		Err:        err,
	})
}

func convertState(s app.State) State {
	switch s {
	case app.StateStopped:
		return StateStopped
	case app.StateStarting:
		return StateStarting
	case app.StateRunning:
		return StateRunning
	case app.StateStopping:
		return StateStopping
	case app.StateCrashed:
		return StateCrashed
	default:
		return StateStopped
	}
}
