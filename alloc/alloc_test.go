package alloc

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/animpack/errs"
)

func TestHeap_Allocate(t *testing.T) {
	var h Heap

	for _, alignment := range []int{1, 8, 64, 4096} {
		buf, err := h.Allocate(1000, alignment)
		require.NoError(t, err)
		require.Len(t, buf, 1000)

		addr := uintptr(unsafe.Pointer(&buf[0]))
		require.Zero(t, addr%uintptr(alignment), "alignment %d", alignment)

		// Buffers come back zeroed.
		for _, b := range buf {
			require.Zero(t, b)
		}

		h.Deallocate(buf)
	}
}

func TestHeap_InvalidAlignment(t *testing.T) {
	var h Heap

	for _, alignment := range []int{0, -1, 3, 48} {
		_, err := h.Allocate(16, alignment)
		require.ErrorIs(t, err, errs.ErrInvalidAlignment)
	}
}

func TestHeap_NegativeSize(t *testing.T) {
	var h Heap

	_, err := h.Allocate(-1, 64)
	require.ErrorIs(t, err, errs.ErrAllocationFailed)
}
