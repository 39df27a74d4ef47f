package convert

import (
	"errors"
	"testing"

	"github.com/roslog/rerunros/internal/domain"
)

func TestRegisterDuplicateShape(t *testing.T) {
	r := NewRegistry()
	c := ConverterFunc(func([]byte) ([]domain.Record, error) { return nil, nil })

	if err := r.Register("std_msgs/msg/Int32", c); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	err := r.Register("std_msgs/msg/Int32", c)
	if !errors.Is(err, domain.ErrDuplicateShape) {
		t.Fatalf("expected ErrDuplicateShape, got %v", err)
	}
}

func TestResolveUnknownShape(t *testing.T) {
	r := NewRegistry()
	_, err := r.Resolve("unsupported/msg/Type")
	if !errors.Is(err, domain.ErrUnknownShape) {
		t.Fatalf("expected ErrUnknownShape, got %v", err)
	}
}

func TestBuiltinsResolve(t *testing.T) {
	r := Builtins()

	shapes := []string{
		"std_msgs/msg/Bool",
		"std_msgs/msg/Int8",
		"std_msgs/msg/Int16",
		"std_msgs/msg/Int32",
		"std_msgs/msg/Int64",
		"std_msgs/msg/UInt8",
		"std_msgs/msg/UInt16",
		"std_msgs/msg/UInt32",
		"std_msgs/msg/UInt64",
		"std_msgs/msg/Float32",
		"std_msgs/msg/Float64",
		"std_msgs/msg/String",
		"geometry_msgs/msg/Vector3",
		"geometry_msgs/msg/Quaternion",
		"geometry_msgs/msg/Transform",
		"geometry_msgs/msg/TransformStamped",
	}
	for _, shape := range shapes {
		if _, err := r.Resolve(shape); err != nil {
			t.Errorf("Resolve(%q): %v", shape, err)
		}
	}
	if len(r.Shapes()) != len(shapes) {
		t.Fatalf("builtin count = %d, want %d", len(r.Shapes()), len(shapes))
	}
}
