// Package ports defines the interfaces (ports) that connect the bridge core
// to infrastructure adapters.
//
// In Clean Architecture / Hexagonal Architecture, ports are the boundaries
// between the application core and the outside world. They define what the
// bridge needs from external systems without specifying how those needs are
// fulfilled.
//
// # Port Interfaces
//
//   - [Sink]: Delivers converted records to the logging backend
//   - [Transport]: Subscribes to topics on the messaging middleware
//
// The dispatch core (internal/dispatch) depends only on these interfaces.
// Infrastructure adapters (internal/adapters) implement them with concrete
// implementations (HTTP, TCP ingest, structured logging).
package ports
