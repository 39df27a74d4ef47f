package convert

import (
	"time"

	"github.com/roslog/rerunros/internal/cdr"
)

// decodeTime reads a builtin_interfaces/msg/Time: int32 seconds and uint32
// nanoseconds since the Unix epoch.
func decodeTime(d *cdr.Decoder) (time.Time, error) {
	sec, err := d.Int32()
	if err != nil {
		return time.Time{}, err
	}
	nsec, err := d.Uint32()
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(int64(sec), int64(nsec)).UTC(), nil
}

// header is a decoded std_msgs/msg/Header.
type header struct {
	stamp   time.Time
	frameID string
}

// decodeHeader reads a std_msgs/msg/Header: a Time stamp followed by the
// frame identifier string.
func decodeHeader(d *cdr.Decoder) (header, error) {
	stamp, err := decodeTime(d)
	if err != nil {
		return header{}, err
	}
	frameID, err := d.String()
	if err != nil {
		return header{}, err
	}
	return header{stamp: stamp, frameID: frameID}, nil
}
