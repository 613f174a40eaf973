//go:build linux

package render

import (
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/unix"
)

// notifier on Linux is a raw futex on the counter word: workers issue
// one syscall per completed scanline and the reporter sleeps in the
// kernel between updates
type notifier struct{}

func (notifier) init() {}

// wait blocks while *addr still holds old. A stale read returns
// immediately; the caller re-reads and loops
func (notifier) wait(addr *int32, old int32) {
	if atomic.LoadInt32(addr) != old {
		return
	}
	unix.Syscall6(unix.SYS_FUTEX,
		uintptr(unsafe.Pointer(addr)),
		uintptr(unix.FUTEX_WAIT_PRIVATE),
		uintptr(uint32(old)),
		0, 0, 0)
}

// wake releases one waiter blocked on addr
func (notifier) wake(addr *int32) {
	unix.Syscall6(unix.SYS_FUTEX,
		uintptr(unsafe.Pointer(addr)),
		uintptr(unix.FUTEX_WAKE_PRIVATE),
		1,
		0, 0, 0)
}
