package track

import (
	"fmt"

	"github.com/arloliu/animpack/format"
	"github.com/arloliu/animpack/internal/options"
)

// Default compression settings.
const (
	// DefaultSegmentMaxSamples is the target number of samples per segment.
	DefaultSegmentMaxSamples = 16

	// DefaultConstantScaleThreshold declares a scale channel a no-op when every sample
	// is within this distance of the default scale.
	DefaultConstantScaleThreshold = 0.00001

	// DefaultTargetError is the error bound the external bit-rate search drives to.
	DefaultTargetError = 0.00001
)

// Constant-detection thresholds per channel type. A channel whose extent is at or
// below its threshold is stored as a single constant sample.
const (
	constantRotationThreshold    = 0.000001
	constantTranslationThreshold = 0.00001
)

// Settings holds the per-clip compression configuration.
//
// Settings is immutable once a database has been built from it; create a new Settings
// per clip if configurations differ.
type Settings struct {
	// RotationFormat is the storage format of rotation tracks.
	RotationFormat format.RotationFormat

	// TranslationFormat is the storage format of translation tracks.
	TranslationFormat format.VectorFormat

	// ScaleFormat is the storage format of scale tracks.
	ScaleFormat format.VectorFormat

	// SegmentMaxSamples is the target number of samples per segment. The last segment
	// of a clip may be shorter.
	SegmentMaxSamples uint32

	// ConstantScaleThreshold declares scale a no-op channel clip-wide.
	ConstantScaleThreshold float32

	// TargetError is consumed by the external bit-rate search, not by this package.
	TargetError float32
}

// SettingsOption configures Settings.
type SettingsOption = options.Option[*Settings]

// NewSettings returns Settings with variable bit-rate formats and the default
// thresholds, then applies opts in order.
func NewSettings(opts ...SettingsOption) (*Settings, error) {
	s := &Settings{
		RotationFormat:         format.RotationQuatDropWVariable,
		TranslationFormat:      format.VectorVariable,
		ScaleFormat:            format.VectorVariable,
		SegmentMaxSamples:      DefaultSegmentMaxSamples,
		ConstantScaleThreshold: DefaultConstantScaleThreshold,
		TargetError:            DefaultTargetError,
	}

	if err := options.Apply(s, opts...); err != nil {
		return nil, err
	}

	return s, nil
}

// WithRotationFormat sets the rotation storage format.
func WithRotationFormat(f format.RotationFormat) SettingsOption {
	return options.New(func(s *Settings) error {
		if f > format.RotationQuatDropWVariable {
			return fmt.Errorf("invalid rotation format: %d", f)
		}
		s.RotationFormat = f

		return nil
	})
}

// WithTranslationFormat sets the translation storage format.
func WithTranslationFormat(f format.VectorFormat) SettingsOption {
	return options.New(func(s *Settings) error {
		if f > format.VectorVariable {
			return fmt.Errorf("invalid translation format: %d", f)
		}
		s.TranslationFormat = f

		return nil
	})
}

// WithScaleFormat sets the scale storage format.
func WithScaleFormat(f format.VectorFormat) SettingsOption {
	return options.New(func(s *Settings) error {
		if f > format.VectorVariable {
			return fmt.Errorf("invalid scale format: %d", f)
		}
		s.ScaleFormat = f

		return nil
	})
}

// WithSegmentMaxSamples sets the target samples per segment.
func WithSegmentMaxSamples(n uint32) SettingsOption {
	return options.New(func(s *Settings) error {
		if n == 0 {
			return fmt.Errorf("segment max samples must be positive")
		}
		s.SegmentMaxSamples = n

		return nil
	})
}

// WithConstantScaleThreshold sets the scale no-op threshold.
func WithConstantScaleThreshold(threshold float32) SettingsOption {
	return options.NoError(func(s *Settings) {
		s.ConstantScaleThreshold = threshold
	})
}

// WithTargetError sets the error bound handed to the bit-rate search.
func WithTargetError(target float32) SettingsOption {
	return options.NoError(func(s *Settings) {
		s.TargetError = target
	})
}
