package bridge

// State represents the lifecycle state of a Bridge instance.
type State int

const (
	StateStopped State = iota
	StateStarting
	StateRunning
	StateStopping
	StateCrashed
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateStopped:
		return "Stopped"
	case StateStarting:
		return "Starting"
	case StateRunning:
		return "Running"
	case StateStopping:
		return "Stopping"
	case StateCrashed:
		return "Crashed"
	default:
		return "Unknown"
	}
}

// StateChangeEvent describes a lifecycle transition.
type StateChangeEvent struct {
	Previous State
	Current  State
	Reason   string
}

// ConversionErrorEvent describes a payload that matched a configured topic
// but could not be decoded. The message was dropped; the stream continues.
type ConversionErrorEvent struct {
	Shape string
	Topic string
	Err   error
}

// DeliveryErrorEvent describes a converted record the sink rejected.
// The record was dropped; the stream continues.
type DeliveryErrorEvent struct {
	EntityPath string
	Err        error
}

// EventHandler receives notifications about bridge operations.
// Callbacks are invoked synchronously from dispatch goroutines and should
// return quickly.
type EventHandler interface {
	OnStateChange(event StateChangeEvent)
	OnConversionError(event ConversionErrorEvent)
	OnDeliveryError(event DeliveryErrorEvent)
}
