package convert

import (
	"github.com/roslog/rerunros/internal/cdr"
	"github.com/roslog/rerunros/internal/domain"
)

// The std_msgs converters each decode one primitive value and emit a single
// record. Numeric values are widened to float64 scalars so the backend can
// plot any of them as a time series.

func scalarRecord(v float64) []domain.Record {
	return []domain.Record{{Entity: domain.Scalar(v)}}
}

func convertBool(payload []byte) ([]domain.Record, error) {
	d, err := cdr.NewDecoder(payload)
	if err != nil {
		return nil, domain.NewConversionError("std_msgs/msg/Bool", "decode", err)
	}
	v, err := d.Bool()
	if err != nil {
		return nil, domain.NewConversionError("std_msgs/msg/Bool", "decode", err)
	}
	if v {
		return scalarRecord(1), nil
	}
	return scalarRecord(0), nil
}

func convertInt8(payload []byte) ([]domain.Record, error) {
	d, err := cdr.NewDecoder(payload)
	if err != nil {
		return nil, domain.NewConversionError("std_msgs/msg/Int8", "decode", err)
	}
	v, err := d.Int8()
	if err != nil {
		return nil, domain.NewConversionError("std_msgs/msg/Int8", "decode", err)
	}
	return scalarRecord(float64(v)), nil
}

func convertInt16(payload []byte) ([]domain.Record, error) {
	d, err := cdr.NewDecoder(payload)
	if err != nil {
		return nil, domain.NewConversionError("std_msgs/msg/Int16", "decode", err)
	}
	v, err := d.Int16()
	if err != nil {
		return nil, domain.NewConversionError("std_msgs/msg/Int16", "decode", err)
	}
	return scalarRecord(float64(v)), nil
}

func convertInt32(payload []byte) ([]domain.Record, error) {
	d, err := cdr.NewDecoder(payload)
	if err != nil {
		return nil, domain.NewConversionError("std_msgs/msg/Int32", "decode", err)
	}
	v, err := d.Int32()
	if err != nil {
		return nil, domain.NewConversionError("std_msgs/msg/Int32", "decode", err)
	}
	return scalarRecord(float64(v)), nil
}

func convertInt64(payload []byte) ([]domain.Record, error) {
	d, err := cdr.NewDecoder(payload)
	if err != nil {
		return nil, domain.NewConversionError("std_msgs/msg/Int64", "decode", err)
	}
	v, err := d.Int64()
	if err != nil {
		return nil, domain.NewConversionError("std_msgs/msg/Int64", "decode", err)
	}
	return scalarRecord(float64(v)), nil
}

func convertUInt8(payload []byte) ([]domain.Record, error) {
	d, err := cdr.NewDecoder(payload)
	if err != nil {
		return nil, domain.NewConversionError("std_msgs/msg/UInt8", "decode", err)
	}
	v, err := d.Uint8()
	if err != nil {
		return nil, domain.NewConversionError("std_msgs/msg/UInt8", "decode", err)
	}
	return scalarRecord(float64(v)), nil
}

func convertUInt16(payload []byte) ([]domain.Record, error) {
	d, err := cdr.NewDecoder(payload)
	if err != nil {
		return nil, domain.NewConversionError("std_msgs/msg/UInt16", "decode", err)
	}
	v, err := d.Uint16()
	if err != nil {
		return nil, domain.NewConversionError("std_msgs/msg/UInt16", "decode", err)
	}
	return scalarRecord(float64(v)), nil
}

func convertUInt32(payload []byte) ([]domain.Record, error) {
	d, err := cdr.NewDecoder(payload)
	if err != nil {
		return nil, domain.NewConversionError("std_msgs/msg/UInt32", "decode", err)
	}
	v, err := d.Uint32()
	if err != nil {
		return nil, domain.NewConversionError("std_msgs/msg/UInt32", "decode", err)
	}
	return scalarRecord(float64(v)), nil
}

func convertUInt64(payload []byte) ([]domain.Record, error) {
	d, err := cdr.NewDecoder(payload)
	if err != nil {
		return nil, domain.NewConversionError("std_msgs/msg/UInt64", "decode", err)
	}
	v, err := d.Uint64()
	if err != nil {
		return nil, domain.NewConversionError("std_msgs/msg/UInt64", "decode", err)
	}
	return scalarRecord(float64(v)), nil
}

func convertFloat32(payload []byte) ([]domain.Record, error) {
	d, err := cdr.NewDecoder(payload)
	if err != nil {
		return nil, domain.NewConversionError("std_msgs/msg/Float32", "decode", err)
	}
	v, err := d.Float32()
	if err != nil {
		return nil, domain.NewConversionError("std_msgs/msg/Float32", "decode", err)
	}
	return scalarRecord(float64(v)), nil
}

func convertFloat64(payload []byte) ([]domain.Record, error) {
	d, err := cdr.NewDecoder(payload)
	if err != nil {
		return nil, domain.NewConversionError("std_msgs/msg/Float64", "decode", err)
	}
	v, err := d.Float64()
	if err != nil {
		return nil, domain.NewConversionError("std_msgs/msg/Float64", "decode", err)
	}
	return scalarRecord(v), nil
}

func convertString(payload []byte) ([]domain.Record, error) {
	d, err := cdr.NewDecoder(payload)
	if err != nil {
		return nil, domain.NewConversionError("std_msgs/msg/String", "decode", err)
	}
	v, err := d.String()
	if err != nil {
		return nil, domain.NewConversionError("std_msgs/msg/String", "decode", err)
	}
	return []domain.Record{{Entity: domain.Text(v)}}, nil
}
