// Package bridge provides an embeddable ROS-to-visualization relay.
//
// A Bridge accepts serialized ROS 2 messages over a TCP ingest socket,
// decodes them with built-in converters keyed by ROS type name, and logs
// the resulting records to a sink backend under configured entity paths.
// It can be used as a standalone CLI application or embedded as a library
// in other Go programs.
//
// # Basic Usage
//
// To embed the bridge in your application:
//
//	cfg := bridge.Config{
//	    SinkURL: "http://127.0.0.1:9876",
//	    Conversions: []bridge.Conversion{
//	        {Topic: "/cpu_temp", ROSType: "std_msgs/msg/Float64", EntityPath: "/sensors/cpu_temp"},
//	    },
//	}
//
//	b, err := bridge.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ctx := context.Background()
//	if err := b.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
//	// ... run until shutdown signal ...
//
//	if err := b.Stop(); err != nil {
//	    log.Printf("shutdown error: %v", err)
//	}
//
// # Configuration
//
// Create a [Config] with at minimum one [Conversion]. All other fields have
// defaults set via [Config.SetDefaults]. Conversions are validated against
// the built-in converter set in [New], so a rule naming an unknown ROS type
// fails before any message flows.
//
// # Event Handling
//
// To receive notifications about bridge operations, implement [EventHandler]
// and pass it via [WithEventHandler]:
//
//	handler := &myEventHandler{}
//	b, err := bridge.New(cfg, bridge.WithEventHandler(handler))
//
// Events are called synchronously from dispatch goroutines. Implementations
// should return quickly to avoid blocking message flow.
//
// # Dependency Injection
//
// For testing, you can inject custom implementations of external
// dependencies:
//
//	b, err := bridge.New(cfg,
//	    bridge.WithHTTPClient(mockClient),
//	    bridge.WithSink(recordingSink),
//	    bridge.WithTransport(fakeTransport),
//	)
//
// # Lifecycle States
//
// A Bridge can be in one of five states: [StateStopped], [StateStarting],
// [StateRunning], [StateStopping], or [StateCrashed]. Use [Bridge.Status]
// to query the current state.
//
// # Plugins
//
// The bridge supports optional plugins for extended functionality:
//
//	import "github.com/roslog/rerunros/plugins/configwatcher"
//
//	b, err := bridge.New(cfg,
//	    configwatcher.WithConfigWatcher(configwatcher.DefaultConfig()),
//	)
package bridge
