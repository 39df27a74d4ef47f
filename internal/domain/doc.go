// Package domain contains the core domain entities and value objects for
// rerunros.
//
// This package represents the innermost layer of the Clean Architecture. It
// has no dependencies on infrastructure concerns (networking, file system,
// logging) and contains only pure business logic.
//
// # Entities
//
//   - [Rule]: A single routing rule binding a topic to an entity path
//   - [Message]: An incoming wire message tagged with its source topic
//   - [Record]: A converted, timestamped record bound for the sink
//   - [Entity]: The backend-native payload of a record (scalar, text, transform)
//
// # Design Principles
//
// Domain entities are:
//   - Immutable after construction (where practical)
//   - Free of infrastructure dependencies
//   - Testable without mocks or external systems
package domain
