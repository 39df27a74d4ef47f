// Package log provides the structured logging abstraction used throughout
// rerunros.
//
// The [Logger] interface decouples the bridge from any particular logging
// library. [NewZerologAdapter] wraps zerolog for production use;
// [NewNoopLogger] discards everything and is the default for embedded use.
package log
