package blob

// Sink receives the serialized pieces of one compressed clip in emission order:
//
//	WriteClipRangeData
//	for each segment: BeginSegment, WriteSegmentRangeData, WriteAnimatedData, EndSegment
//
// Segment data arrives in segment index order. Implementations may stream the bytes
// out or accumulate them; the emitter never revisits a finished segment.
type Sink interface {
	// WriteClipRangeData receives the clip-level range section: per transform, the
	// constant sample of each constant channel and the min/extent pair of each
	// animated channel.
	WriteClipRangeData(data []byte) error

	// BeginSegment starts the segment with the given index.
	BeginSegment(segmentIndex int) error

	// WriteSegmentRangeData receives the segment's range section: per animated
	// channel, the segment min/extent pair, or the packed constant sample for tracks
	// constant within this segment.
	WriteSegmentRangeData(data []byte) error

	// WriteAnimatedData receives the segment's packed sample stream, concatenated
	// across transforms sample by sample, padded to a whole byte count.
	WriteAnimatedData(data []byte) error

	// EndSegment finishes the open segment.
	EndSegment() error
}
