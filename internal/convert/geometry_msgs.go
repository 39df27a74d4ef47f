package convert

import (
	"github.com/roslog/rerunros/internal/cdr"
	"github.com/roslog/rerunros/internal/domain"
)

func decodeVector3(d *cdr.Decoder) ([3]float64, error) {
	var v [3]float64
	for i := range v {
		f, err := d.Float64()
		if err != nil {
			return v, err
		}
		v[i] = f
	}
	return v, nil
}

func decodeQuaternion(d *cdr.Decoder) ([4]float64, error) {
	var q [4]float64
	for i := range q {
		f, err := d.Float64()
		if err != nil {
			return q, err
		}
		q[i] = f
	}
	return q, nil
}

func decodeTransform(d *cdr.Decoder) (domain.Transform3D, error) {
	t, err := decodeVector3(d)
	if err != nil {
		return domain.Transform3D{}, err
	}
	q, err := decodeQuaternion(d)
	if err != nil {
		return domain.Transform3D{}, err
	}
	return domain.Transform3D{Translation: t, Rotation: q}, nil
}

func convertVector3(payload []byte) ([]domain.Record, error) {
	d, err := cdr.NewDecoder(payload)
	if err != nil {
		return nil, domain.NewConversionError("geometry_msgs/msg/Vector3", "decode", err)
	}
	t, err := decodeVector3(d)
	if err != nil {
		return nil, domain.NewConversionError("geometry_msgs/msg/Vector3", "decode", err)
	}
	entity := domain.Transform3D{Translation: t, Rotation: domain.IdentityRotation}
	return []domain.Record{{Entity: entity}}, nil
}

func convertQuaternion(payload []byte) ([]domain.Record, error) {
	d, err := cdr.NewDecoder(payload)
	if err != nil {
		return nil, domain.NewConversionError("geometry_msgs/msg/Quaternion", "decode", err)
	}
	q, err := decodeQuaternion(d)
	if err != nil {
		return nil, domain.NewConversionError("geometry_msgs/msg/Quaternion", "decode", err)
	}
	entity := domain.Transform3D{Rotation: q}
	return []domain.Record{{Entity: entity}}, nil
}

func convertTransform(payload []byte) ([]domain.Record, error) {
	d, err := cdr.NewDecoder(payload)
	if err != nil {
		return nil, domain.NewConversionError("geometry_msgs/msg/Transform", "decode", err)
	}
	tf, err := decodeTransform(d)
	if err != nil {
		return nil, domain.NewConversionError("geometry_msgs/msg/Transform", "decode", err)
	}
	return []domain.Record{{Entity: tf}}, nil
}

// TransformStampedConverter converts geometry_msgs/msg/TransformStamped.
// The header stamp becomes the record timestamp and the header frame_id is
// exposed for frame filtering.
type TransformStampedConverter struct{}

// Convert decodes the stamped transform into one timestamped record.
func (c *TransformStampedConverter) Convert(payload []byte) ([]domain.Record, error) {
	const shape = "geometry_msgs/msg/TransformStamped"
	d, err := cdr.NewDecoder(payload)
	if err != nil {
		return nil, domain.NewConversionError(shape, "decode", err)
	}
	h, err := decodeHeader(d)
	if err != nil {
		return nil, domain.NewConversionError(shape, "decode header", err)
	}
	// child_frame_id: not represented in the backend record.
	if _, err := d.String(); err != nil {
		return nil, domain.NewConversionError(shape, "decode child_frame_id", err)
	}
	tf, err := decodeTransform(d)
	if err != nil {
		return nil, domain.NewConversionError(shape, "decode transform", err)
	}
	return []domain.Record{{Stamp: h.stamp, Entity: tf}}, nil
}

// FrameID extracts the header frame identifier without decoding the full
// message.
func (c *TransformStampedConverter) FrameID(payload []byte) (string, bool) {
	d, err := cdr.NewDecoder(payload)
	if err != nil {
		return "", false
	}
	h, err := decodeHeader(d)
	if err != nil {
		return "", false
	}
	return h.frameID, h.frameID != ""
}
