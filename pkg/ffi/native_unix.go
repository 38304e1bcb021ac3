//go:build linux || darwin || freebsd

package ffi

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// NativeBuffer is a page-backed, externally addressable memory block: the
// opaque-pointer FFI variant spec.md §6 describes for handing a C library
// a stable address it can hold onto independent of Go's moving GC. It is
// allocated with an anonymous mmap, the same primitive the teacher uses
// to map hive files, rather than a pinned Go slice.
type NativeBuffer struct {
	data []byte
}

// NewNativeBuffer mmaps size bytes (rounded up by the kernel to a page)
// as an anonymous, process-private region.
func NewNativeBuffer(size int) (*NativeBuffer, error) {
	if size <= 0 {
		return nil, fmt.Errorf("ffi: native buffer size must be positive")
	}
	data, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("ffi: mmap native buffer: %w", err)
	}
	return &NativeBuffer{data: data}, nil
}

// Pointer returns the buffer's stable base address for handing to a C
// ABI call site.
func (b *NativeBuffer) Pointer() unsafe.Pointer { return unsafe.Pointer(&b.data[0]) }

// Bytes exposes the buffer as a Go slice for local reads/writes.
func (b *NativeBuffer) Bytes() []byte { return b.data }

// Close unmaps the buffer. It is the caller's responsibility to ensure no
// C code still holds Pointer()'s address.
func (b *NativeBuffer) Close() error {
	if b.data == nil {
		return nil
	}
	err := unix.Munmap(b.data)
	b.data = nil
	return err
}
