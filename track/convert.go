package track

import (
	"github.com/arloliu/animpack/format"
	"github.com/arloliu/animpack/vec"
)

// ConvertRotations switches the mutable database to the desired rotation format's
// variant. Converting to a drop-W variant flips every quaternion into the positive-W
// hemisphere so the decoder can reconstruct w = +sqrt(1 - x^2 - y^2 - z^2); the W
// channel remains a live slot holding the flipped value.
//
// Conversion must happen before range normalization: the ranges describe the stored
// representation, hemisphere flips included.
func (d *Database) ConvertRotations(desired format.RotationFormat, segments []Segment) {
	if desired.Variant() == format.VariantQuatDropW && d.rotationFormat.Variant() == format.VariantQuat {
		for segIndex := range segments {
			segment := &segments[segIndex]

			for t := range d.clip.NumTransforms {
				x, y, z, w := d.Rotations(segment, t)

				for i := uint32(0); i < segment.NumSIMDSamples; i++ {
					if w[i] < 0 {
						x[i], y[i], z[i], w[i] = -x[i], -y[i], -z[i], -w[i]
					}
				}
			}
		}
	}

	d.rotationFormat = desired
}

// ConvertRotationSample converts one rotation sample between formats without touching
// storage. The only representational change between variants is the hemisphere
// convention of drop-W storage.
func ConvertRotationSample(rotation vec.Vector4, from, to format.RotationFormat) vec.Vector4 {
	if to.Variant() == format.VariantQuatDropW && from.Variant() == format.VariantQuat {
		return rotation.Quat().EnsurePositiveW().Vector()
	}

	return rotation
}
