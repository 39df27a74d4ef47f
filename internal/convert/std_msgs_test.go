package convert

import (
	"errors"
	"testing"

	"github.com/roslog/rerunros/internal/cdr"
	"github.com/roslog/rerunros/internal/domain"
)

func mustConvert(t *testing.T, shape string, payload []byte) []domain.Record {
	t.Helper()
	c, err := Builtins().Resolve(shape)
	if err != nil {
		t.Fatalf("Resolve(%q): %v", shape, err)
	}
	records, err := c.Convert(payload)
	if err != nil {
		t.Fatalf("Convert(%q): %v", shape, err)
	}
	return records
}

func TestNumericConvertersProduceScalars(t *testing.T) {
	tests := []struct {
		shape  string
		encode func(*cdr.Encoder)
		want   float64
	}{
		{"std_msgs/msg/Bool", func(e *cdr.Encoder) { e.PutBool(true) }, 1},
		{"std_msgs/msg/Int8", func(e *cdr.Encoder) { e.PutInt8(-7) }, -7},
		{"std_msgs/msg/Int16", func(e *cdr.Encoder) { e.PutInt16(-300) }, -300},
		{"std_msgs/msg/Int32", func(e *cdr.Encoder) { e.PutInt32(42) }, 42},
		{"std_msgs/msg/Int64", func(e *cdr.Encoder) { e.PutInt64(1 << 40) }, 1 << 40},
		{"std_msgs/msg/UInt8", func(e *cdr.Encoder) { e.PutUint8(200) }, 200},
		{"std_msgs/msg/UInt16", func(e *cdr.Encoder) { e.PutUint16(60000) }, 60000},
		{"std_msgs/msg/UInt32", func(e *cdr.Encoder) { e.PutUint32(1 << 30) }, 1 << 30},
		{"std_msgs/msg/UInt64", func(e *cdr.Encoder) { e.PutUint64(1 << 50) }, 1 << 50},
		{"std_msgs/msg/Float32", func(e *cdr.Encoder) { e.PutFloat32(1.5) }, 1.5},
		{"std_msgs/msg/Float64", func(e *cdr.Encoder) { e.PutFloat64(-2.25) }, -2.25},
	}

	for _, tt := range tests {
		t.Run(tt.shape, func(t *testing.T) {
			e := cdr.NewEncoder()
			tt.encode(e)

			records := mustConvert(t, tt.shape, e.Bytes())
			if len(records) != 1 {
				t.Fatalf("got %d records, want 1", len(records))
			}
			s, ok := records[0].Entity.(domain.Scalar)
			if !ok {
				t.Fatalf("entity is %T, want Scalar", records[0].Entity)
			}
			if float64(s) != tt.want {
				t.Fatalf("scalar = %v, want %v", float64(s), tt.want)
			}
			if !records[0].Stamp.IsZero() {
				t.Fatalf("unstamped shape produced stamp %v", records[0].Stamp)
			}
		})
	}
}

func TestStringConverter(t *testing.T) {
	e := cdr.NewEncoder()
	e.PutString("hello")

	records := mustConvert(t, "std_msgs/msg/String", e.Bytes())
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if got, ok := records[0].Entity.(domain.Text); !ok || got != "hello" {
		t.Fatalf("entity = %#v, want Text(\"hello\")", records[0].Entity)
	}
}

func TestConvertMalformedPayload(t *testing.T) {
	c, err := Builtins().Resolve("std_msgs/msg/Int32")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	// Valid encapsulation, truncated body.
	_, err = c.Convert([]byte{0x00, 0x01, 0x00, 0x00, 0x2a})
	var convErr *domain.ConversionError
	if !errors.As(err, &convErr) {
		t.Fatalf("expected ConversionError, got %v", err)
	}
	if convErr.Shape != "std_msgs/msg/Int32" {
		t.Fatalf("shape = %q", convErr.Shape)
	}
}
