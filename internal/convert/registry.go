package convert

import (
	"fmt"
	"sort"

	"github.com/roslog/rerunros/internal/domain"
)

// Registry maps message shape identifiers (e.g. "std_msgs/msg/Int32") to
// their converters.
//
// Registration is single-threaded and completes before any dispatch begins;
// after that the registry is read-only and safe for concurrent use. It is a
// plain lookup table, not a plugin system.
type Registry struct {
	converters map[string]Converter
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{converters: make(map[string]Converter)}
}

// Register adds a converter for a shape. Registering the same shape twice
// returns domain.ErrDuplicateShape.
func (r *Registry) Register(shape string, c Converter) error {
	if _, ok := r.converters[shape]; ok {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateShape, shape)
	}
	r.converters[shape] = c
	return nil
}

// Resolve returns the converter for a shape, or domain.ErrUnknownShape if
// none is registered.
func (r *Registry) Resolve(shape string) (Converter, error) {
	c, ok := r.converters[shape]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownShape, shape)
	}
	return c, nil
}

// Has reports whether a converter is registered for the shape.
func (r *Registry) Has(shape string) bool {
	_, ok := r.converters[shape]
	return ok
}

// Shapes returns the registered shape identifiers in sorted order.
func (r *Registry) Shapes() []string {
	shapes := make([]string, 0, len(r.converters))
	for s := range r.converters {
		shapes = append(shapes, s)
	}
	sort.Strings(shapes)
	return shapes
}

// Builtins returns a registry populated with every converter this build
// supports. The set is fixed at compile time.
func Builtins() *Registry {
	r := NewRegistry()
	for shape, c := range builtinConverters() {
		// Shapes in the builtin map are unique by construction.
		if err := r.Register(shape, c); err != nil {
			panic(err)
		}
	}
	return r
}

func builtinConverters() map[string]Converter {
	return map[string]Converter{
		"std_msgs/msg/Bool":    ConverterFunc(convertBool),
		"std_msgs/msg/Int8":    ConverterFunc(convertInt8),
		"std_msgs/msg/Int16":   ConverterFunc(convertInt16),
		"std_msgs/msg/Int32":   ConverterFunc(convertInt32),
		"std_msgs/msg/Int64":   ConverterFunc(convertInt64),
		"std_msgs/msg/UInt8":   ConverterFunc(convertUInt8),
		"std_msgs/msg/UInt16":  ConverterFunc(convertUInt16),
		"std_msgs/msg/UInt32":  ConverterFunc(convertUInt32),
		"std_msgs/msg/UInt64":  ConverterFunc(convertUInt64),
		"std_msgs/msg/Float32": ConverterFunc(convertFloat32),
		"std_msgs/msg/Float64": ConverterFunc(convertFloat64),
		"std_msgs/msg/String":  ConverterFunc(convertString),

		"geometry_msgs/msg/Vector3":          ConverterFunc(convertVector3),
		"geometry_msgs/msg/Quaternion":       ConverterFunc(convertQuaternion),
		"geometry_msgs/msg/Transform":        ConverterFunc(convertTransform),
		"geometry_msgs/msg/TransformStamped": &TransformStampedConverter{},
	}
}
