// Package convert maps ROS 2 message shapes to converter implementations.
//
// A converter turns one CDR-encoded payload of a known shape into zero or
// more backend records. The registry is built once at startup from the
// compile-time builtin set and is immutable afterward, so lookups on the
// dispatch hot path need no locking.
package convert

import "github.com/roslog/rerunros/internal/domain"

// Converter transforms a CDR payload of one message shape into backend
// records.
//
// Converters are stateless: each call depends only on the payload. Producing
// zero records (filtering a degenerate value) or several (decomposing a
// composite message) is valid and not an error. A malformed payload yields a
// *domain.ConversionError.
type Converter interface {
	Convert(payload []byte) ([]domain.Record, error)
}

// FrameCarrier is implemented by converters whose message shape embeds a
// std_msgs Header. FrameID extracts the header's frame identifier so the
// dispatcher can apply frame filters without decoding the whole message.
// The bool result is false when the payload is malformed.
type FrameCarrier interface {
	FrameID(payload []byte) (string, bool)
}

// ConverterFunc adapts a function to the Converter interface.
type ConverterFunc func(payload []byte) ([]domain.Record, error)

// Convert calls f.
func (f ConverterFunc) Convert(payload []byte) ([]domain.Record, error) {
	return f(payload)
}
