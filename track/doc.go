// Package track implements the compression pipeline's mutable working state: the SOA
// track database, clip segmentation, per-segment range normalization, and the raw,
// normalized, and decayed sampling paths the bit-rate search evaluates error against.
//
// The lifecycle of one clip compression:
//
//	clip, _ := track.NewClip(provider, settings)
//	segments := track.SplitSegments(clip, settings)
//	raw, _ := track.NewRawDatabase(allocator, provider, clip, segments)
//	mutable, _ := raw.Clone()
//	mutable.ConvertRotations(settings.RotationFormat, segments)
//	track.NormalizeClipRanges(mutable, segments, settings)
//	track.NormalizeSegmentRanges(mutable, segments)
//	// bit-rate search over track.DecayedRotation / DecayedTranslation / DecayedScale
//	// commit decisions into a track.BitRateSet, then emit
//
// The raw database is immutable after ingest. The mutable database is a working copy
// exclusively owned by the compression pass; decayed sampling takes shared references
// to both and never mutates either. A database instance must not be touched from more
// than one goroutine; process clips in parallel by giving each worker its own
// databases.
package track
