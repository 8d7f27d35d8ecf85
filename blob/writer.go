package blob

import (
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/arloliu/animpack/compress"
	"github.com/arloliu/animpack/errs"
	"github.com/arloliu/animpack/format"
	"github.com/arloliu/animpack/internal/options"
	"github.com/arloliu/animpack/internal/pool"
	"github.com/arloliu/animpack/section"
)

// Writer is the Sink that assembles the final blob: it accumulates the clip and
// segment sections into one payload, optionally compresses it, and prepends the clip
// header with the payload checksum.
//
// A Writer is not reusable; create a new one per clip. It is not safe for concurrent
// use.
type Writer struct {
	header  *section.ClipHeader
	codec   compress.Codec
	payload *pool.ByteBuffer

	segmentOpen bool
	finished    bool
}

var _ Sink = (*Writer)(nil)

// WriterOption configures a Writer.
type WriterOption = options.Option[*Writer]

// WithCompression selects the payload compression codec.
func WithCompression(compressionType format.CompressionType) WriterOption {
	return options.New(func(w *Writer) error {
		codec, err := compress.GetCodec(compressionType)
		if err != nil {
			return err
		}

		w.codec = codec
		w.header.Flag.CompressionType = uint8(compressionType)

		return nil
	})
}

// NewWriter creates a Writer for a clip with the given header fields. The header's
// counts and format tags must be filled by the caller; sizes and the checksum are
// computed in Finish.
func NewWriter(header *section.ClipHeader, opts ...WriterOption) (*Writer, error) {
	w := &Writer{
		header:  header,
		codec:   compress.NewNoOpCompressor(),
		payload: pool.GetPayloadBuffer(),
	}

	if err := options.Apply(w, opts...); err != nil {
		return nil, err
	}

	return w, nil
}

// WriteClipRangeData implements Sink.
func (w *Writer) WriteClipRangeData(data []byte) error {
	if w.finished {
		return errs.ErrWriterFinished
	}

	w.payload.MustWrite(data)

	return nil
}

// BeginSegment implements Sink.
func (w *Writer) BeginSegment(segmentIndex int) error {
	if w.finished {
		return errs.ErrWriterFinished
	}
	if w.segmentOpen {
		return fmt.Errorf("segment %d: %w", segmentIndex, errs.ErrSegmentNotEnded)
	}

	w.segmentOpen = true

	return nil
}

// WriteSegmentRangeData implements Sink.
func (w *Writer) WriteSegmentRangeData(data []byte) error {
	if !w.segmentOpen {
		return errs.ErrNoSegmentStarted
	}

	w.payload.MustWrite(data)

	return nil
}

// WriteAnimatedData implements Sink.
func (w *Writer) WriteAnimatedData(data []byte) error {
	if !w.segmentOpen {
		return errs.ErrNoSegmentStarted
	}

	w.payload.MustWrite(data)

	return nil
}

// EndSegment implements Sink.
func (w *Writer) EndSegment() error {
	if !w.segmentOpen {
		return errs.ErrNoSegmentStarted
	}

	w.segmentOpen = false

	return nil
}

// Finish compresses the payload, fills the header sizes and checksum, and returns
// the complete blob. The Writer is unusable afterwards.
func (w *Writer) Finish() ([]byte, error) {
	if w.finished {
		return nil, errs.ErrWriterFinished
	}
	if w.segmentOpen {
		return nil, errs.ErrSegmentNotEnded
	}

	w.finished = true
	defer func() {
		pool.PutPayloadBuffer(w.payload)
		w.payload = nil
	}()

	raw := w.payload.Bytes()

	compressed, err := w.codec.Compress(raw)
	if err != nil {
		return nil, fmt.Errorf("payload compression: %w", err)
	}

	w.header.RawPayloadSize = uint32(len(raw))
	w.header.PayloadSize = uint32(len(compressed))
	w.header.PayloadChecksum = xxhash.Sum64(raw)

	out := make([]byte, 0, section.HeaderSize+len(compressed))
	out = append(out, w.header.Bytes()...)
	out = append(out, compressed...)

	return out, nil
}

// VerifyPayload parses a blob's header, decompresses its payload, and checks the
// checksum. It returns the header and the raw payload.
func VerifyPayload(data []byte) (*section.ClipHeader, []byte, error) {
	if len(data) < section.HeaderSize {
		return nil, nil, errs.ErrInvalidHeaderSize
	}

	header := &section.ClipHeader{}
	if err := header.Parse(data[:section.HeaderSize]); err != nil {
		return nil, nil, err
	}

	codec, err := compress.GetCodec(format.CompressionType(header.Flag.CompressionType))
	if err != nil {
		return nil, nil, err
	}

	payload, err := codec.Decompress(data[section.HeaderSize:])
	if err != nil {
		return nil, nil, fmt.Errorf("payload decompression: %w", err)
	}

	if uint32(len(payload)) != header.RawPayloadSize || xxhash.Sum64(payload) != header.PayloadChecksum {
		return nil, nil, errs.ErrChecksumMismatch
	}

	return header, payload, nil
}
