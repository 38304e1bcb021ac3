//go:build !(linux || darwin || freebsd)

package ffi

import (
	"fmt"
	"unsafe"
)

// NativeBuffer is the non-mmap fallback for platforms golang.org/x/sys/unix
// does not cover with Mmap/Munmap: a plain heap allocation. It still
// satisfies the opaque-pointer FFI contract (a stable address plus
// explicit release); it just does not get a page-aligned mapping.
type NativeBuffer struct {
	data []byte
}

// NewNativeBuffer allocates size bytes on the Go heap.
func NewNativeBuffer(size int) (*NativeBuffer, error) {
	if size <= 0 {
		return nil, fmt.Errorf("ffi: native buffer size must be positive")
	}
	return &NativeBuffer{data: make([]byte, size)}, nil
}

func (b *NativeBuffer) Pointer() unsafe.Pointer { return unsafe.Pointer(&b.data[0]) }
func (b *NativeBuffer) Bytes() []byte           { return b.data }
func (b *NativeBuffer) Close() error            { b.data = nil; return nil }
