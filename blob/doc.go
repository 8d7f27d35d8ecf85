// Package blob serializes a compressed clip into its binary form.
//
// The byte layout is: clip header (section.ClipHeader), then one payload holding the
// clip-level range data followed by every segment's range data and packed animated
// samples. The payload may be compressed as a whole; its xxHash64 checksum and sizes
// live in the header.
//
// The Sink interface is the boundary between the compression core and the emitter: a
// core driver pushes serialized range data and packed sample streams per segment, and
// a Sink decides where the bytes go. Writer is the Sink that builds the final blob.
package blob
