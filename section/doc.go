// Package section defines the fixed-size binary sections of the compressed-clip
// blob: the flag word and the clip header. Each section serializes with Bytes and
// validates with Parse; the layouts are a stable contract with the decompressor and
// must not change without a version bump.
package section
