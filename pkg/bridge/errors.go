package bridge

import "github.com/roslog/rerunros/internal/domain"

// Sentinel errors returned by Bridge operations. Use errors.Is to test.
var (
	// ErrInvalidConfig is returned by New for configuration errors.
	ErrInvalidConfig = domain.ErrInvalidConfig

	// ErrUnresolvedConverter is returned by New when a conversion names
	// a ROS type with no registered converter.
	ErrUnresolvedConverter = domain.ErrUnresolvedConverter

	// ErrAlreadyRunning is returned by Start when the bridge is not
	// stopped.
	ErrAlreadyRunning = domain.ErrAlreadyRunning

	// ErrNotRunning is returned by Stop when the bridge is not running.
	ErrNotRunning = domain.ErrNotRunning

	// ErrShutdownTimeout is returned by Stop when workers do not exit
	// within the shutdown window.
	ErrShutdownTimeout = domain.ErrShutdownTimeout
)
