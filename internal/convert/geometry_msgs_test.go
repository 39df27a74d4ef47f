package convert

import (
	"testing"
	"time"

	"github.com/roslog/rerunros/internal/cdr"
	"github.com/roslog/rerunros/internal/domain"
)

func encodeTransform(e *cdr.Encoder, t domain.Transform3D) {
	for _, v := range t.Translation {
		e.PutFloat64(v)
	}
	for _, v := range t.Rotation {
		e.PutFloat64(v)
	}
}

func encodeTransformStamped(stamp time.Time, frameID string, tf domain.Transform3D) []byte {
	e := cdr.NewEncoder()
	e.PutInt32(int32(stamp.Unix()))
	e.PutUint32(uint32(stamp.Nanosecond()))
	e.PutString(frameID)
	e.PutString("child")
	encodeTransform(e, tf)
	return e.Bytes()
}

func TestTransformConverter(t *testing.T) {
	want := domain.Transform3D{
		Translation: [3]float64{1, 2, 3},
		Rotation:    [4]float64{0, 0, 0.7071, 0.7071},
	}
	e := cdr.NewEncoder()
	encodeTransform(e, want)

	records := mustConvert(t, "geometry_msgs/msg/Transform", e.Bytes())
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if got := records[0].Entity.(domain.Transform3D); got != want {
		t.Fatalf("transform = %+v, want %+v", got, want)
	}
}

func TestQuaternionConverter(t *testing.T) {
	e := cdr.NewEncoder()
	for _, v := range [4]float64{0, 1, 0, 0} {
		e.PutFloat64(v)
	}

	records := mustConvert(t, "geometry_msgs/msg/Quaternion", e.Bytes())
	got := records[0].Entity.(domain.Transform3D)
	if got.Rotation != [4]float64{0, 1, 0, 0} {
		t.Fatalf("rotation = %v", got.Rotation)
	}
	if got.Translation != [3]float64{} {
		t.Fatalf("translation = %v, want identity", got.Translation)
	}
}

func TestVector3Converter(t *testing.T) {
	e := cdr.NewEncoder()
	for _, v := range [3]float64{4, 5, 6} {
		e.PutFloat64(v)
	}

	records := mustConvert(t, "geometry_msgs/msg/Vector3", e.Bytes())
	got := records[0].Entity.(domain.Transform3D)
	if got.Translation != [3]float64{4, 5, 6} {
		t.Fatalf("translation = %v", got.Translation)
	}
	if got.Rotation != domain.IdentityRotation {
		t.Fatalf("rotation = %v, want identity", got.Rotation)
	}
}

func TestTransformStampedConverter(t *testing.T) {
	stamp := time.Unix(1700000000, 500).UTC()
	want := domain.Transform3D{
		Translation: [3]float64{1, 0, -1},
		Rotation:    domain.IdentityRotation,
	}
	payload := encodeTransformStamped(stamp, "base_link", want)

	records := mustConvert(t, "geometry_msgs/msg/TransformStamped", payload)
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if !records[0].Stamp.Equal(stamp) {
		t.Fatalf("stamp = %v, want %v", records[0].Stamp, stamp)
	}
	if got := records[0].Entity.(domain.Transform3D); got != want {
		t.Fatalf("transform = %+v, want %+v", got, want)
	}
}

func TestTransformStampedFrameID(t *testing.T) {
	payload := encodeTransformStamped(time.Unix(1, 0), "frame1", domain.Transform3D{})

	c, err := Builtins().Resolve("geometry_msgs/msg/TransformStamped")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	fc, ok := c.(FrameCarrier)
	if !ok {
		t.Fatal("TransformStamped converter does not expose its frame")
	}
	frameID, ok := fc.FrameID(payload)
	if !ok || frameID != "frame1" {
		t.Fatalf("FrameID = %q, %v", frameID, ok)
	}

	if _, ok := fc.FrameID([]byte{0x00}); ok {
		t.Fatal("FrameID reported ok for malformed payload")
	}
}
