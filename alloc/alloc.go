// Package alloc provides the aligned buffer allocator the track database is built on.
//
// Allocations are typed only by size and alignment. Buffer lifetimes are scoped to
// the database that requested them; Deallocate returns a buffer to its allocator once
// the database is destroyed.
package alloc

import (
	"fmt"

	"github.com/arloliu/animpack/errs"
)

// DatabaseAlignment is the byte alignment of track database buffers. The SOA layout
// is swept with SIMD loads; 64 covers a full cache line on every supported target.
const DatabaseAlignment = 64

// Allocator hands out aligned byte buffers.
//
// Implementations report exhaustion through an error before any partial state is
// visible to the caller; they never return a short buffer.
type Allocator interface {
	// Allocate returns a zeroed buffer of exactly size bytes whose first byte is
	// aligned to the given power-of-two alignment.
	Allocate(size, alignment int) ([]byte, error)

	// Deallocate releases a buffer previously returned by Allocate. Implementations
	// may reuse or discard it; the caller must not touch the buffer afterwards.
	Deallocate(buf []byte)
}

// Heap is the default Allocator backed by the Go heap. It over-allocates and
// re-slices to satisfy alignment.
type Heap struct{}

var _ Allocator = Heap{}

// Allocate implements Allocator.
func (Heap) Allocate(size, alignment int) ([]byte, error) {
	if alignment <= 0 || alignment&(alignment-1) != 0 {
		return nil, fmt.Errorf("alignment %d: %w", alignment, errs.ErrInvalidAlignment)
	}
	if size < 0 {
		return nil, fmt.Errorf("size %d: %w", size, errs.ErrAllocationFailed)
	}

	raw := make([]byte, size+alignment)
	offset := alignmentOffset(raw, alignment)

	return raw[offset : offset+size : offset+size], nil
}

// Deallocate implements Allocator. The heap allocator relies on the garbage
// collector; releasing is a no-op.
func (Heap) Deallocate([]byte) {}
