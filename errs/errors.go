// Package errs defines the sentinel errors shared across animpack packages.
//
// All errors are created with errors.New and compared with errors.Is. Call sites
// wrap them with fmt.Errorf("...: %w", err) to add context.
package errs

import "errors"

// Clip ingest validation errors. These are returned before any database state is
// constructed; a partially ingested clip is never observable.
var (
	// ErrEmptyClip indicates the keyframe provider reported zero samples or zero transforms.
	ErrEmptyClip = errors.New("clip has no samples or no transforms")

	// ErrZeroSampleRate indicates the keyframe provider reported a sample rate <= 0.
	ErrZeroSampleRate = errors.New("clip sample rate must be positive")

	// ErrNonUnitRotation indicates a rotation sample deviates from unit length beyond
	// the ingest tolerance of 1e-4.
	ErrNonUnitRotation = errors.New("rotation sample is not a unit quaternion")

	// ErrInvalidParentIndex indicates a transform's parent index is not a lower-numbered
	// transform or the no-parent sentinel.
	ErrInvalidParentIndex = errors.New("parent index must be lower than own index or the sentinel")

	// ErrTooManyTransforms indicates the clip exceeds the maximum transform count
	// representable by the parent index encoding.
	ErrTooManyTransforms = errors.New("transform count exceeds maximum")
)

// Allocation errors.
var (
	// ErrAllocationFailed indicates the allocator could not provide the requested block.
	ErrAllocationFailed = errors.New("allocation failed")

	// ErrInvalidAlignment indicates a requested alignment that is not a power of two.
	ErrInvalidAlignment = errors.New("alignment must be a power of two")
)

// Blob header and payload errors.
var (
	// ErrInvalidHeaderSize indicates the header byte slice has the wrong length.
	ErrInvalidHeaderSize = errors.New("invalid header size")

	// ErrInvalidMagic indicates the header does not start with the animpack magic value.
	ErrInvalidMagic = errors.New("invalid magic value")

	// ErrUnsupportedVersion indicates the header carries an unknown format version.
	ErrUnsupportedVersion = errors.New("unsupported format version")

	// ErrInvalidCompressionType indicates the header carries an unknown compression tag.
	ErrInvalidCompressionType = errors.New("invalid compression type")

	// ErrChecksumMismatch indicates the payload checksum does not match the header.
	ErrChecksumMismatch = errors.New("payload checksum mismatch")

	// ErrSegmentNotEnded indicates BeginSegment or Finish was called while a segment
	// was open.
	ErrSegmentNotEnded = errors.New("previous segment not ended")

	// ErrNoSegmentStarted indicates segment data was written outside BeginSegment/EndSegment.
	ErrNoSegmentStarted = errors.New("no segment started")

	// ErrWriterFinished indicates the writer was used after Finish.
	ErrWriterFinished = errors.New("writer already finished")
)
