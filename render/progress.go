package render

import (
	"fmt"
	"io"
	"sync/atomic"
)

// progress tracks remaining scanlines and feeds the reporter without
// a mutex on the worker path: workers decrement and wake, the
// reporter waits on the counter word itself
type progress struct {
	remain int32
	notify notifier
	total  int32
}

func newProgress(total int) *progress {
	p := &progress{total: int32(total)}
	atomic.StoreInt32(&p.remain, p.total)
	p.notify.init()
	return p
}

// dec marks one scanline done and wakes the reporter
func (p *progress) dec() {
	atomic.AddInt32(&p.remain, -1)
	p.notify.wake(&p.remain)
}

// run prints remaining-scanline updates until the count reaches zero.
// Runs on its own goroutine; out is usually stderr
func (p *progress) run(out io.Writer) {
	lastRemain := p.total + 1
	for {
		p.notify.wait(&p.remain, lastRemain)

		remain := atomic.LoadInt32(&p.remain)
		lastRemain = remain
		fmt.Fprintf(out, "\r\x1b[2K\x1b[?25lScanlines remaining: %d\x1b[?25h", remain)
		if remain == 0 {
			break
		}
	}
	fmt.Fprint(out, "\r\x1b[2K")
}
