package domain

import "time"

// Message is one incoming wire message as delivered by the transport.
// It exists only for the duration of a single dispatch.
type Message struct {
	// Topic is the source topic the message arrived on.
	Topic string

	// FrameID is the message's frame identifier, extracted from the
	// header of stamped message types. Empty if the message carries none.
	FrameID string

	// Payload is the raw CDR-encoded message body. The matching converter
	// owns decoding; the dispatcher never inspects it.
	Payload []byte

	// Received is the local receive time, used as the record timestamp
	// for message types that carry no stamp of their own.
	Received time.Time
}

// Record is one converted record ready for the sink. Converters may produce
// zero or more records per message; the dispatcher fixes the entity path
// from the matched rule before hand-off.
type Record struct {
	// Stamp is the record timestamp. Converters set it from the message
	// header where one exists; a zero Stamp is replaced with the message
	// receive time during dispatch.
	Stamp time.Time

	// Entity is the backend-native value to log.
	Entity Entity
}

// Entity is a backend-native value produced by a converter. Implementations
// are small immutable value types; Kind returns the backend archetype name.
type Entity interface {
	Kind() string
}

// Scalar is a single numeric sample, logged as a time series point.
type Scalar float64

// Kind returns the backend archetype name.
func (Scalar) Kind() string { return "scalar" }

// Text is a single text value.
type Text string

// Kind returns the backend archetype name.
func (Text) Kind() string { return "text" }

// Transform3D is a 3D transform: a translation and a unit quaternion
// rotation in xyzw order. Either part may be the identity.
type Transform3D struct {
	Translation [3]float64 `json:"translation"`
	Rotation    [4]float64 `json:"rotation"`
}

// Kind returns the backend archetype name.
func (Transform3D) Kind() string { return "transform3d" }

// IdentityRotation is the quaternion leaving orientation unchanged.
var IdentityRotation = [4]float64{0, 0, 0, 1}
