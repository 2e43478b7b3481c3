package transfer

import (
	"io"

	"glink/internal/domain"
)

// tracker accumulates progress for one transfer and forwards it to the callback
type tracker struct {
	progress domain.TransferProgress
	fn       domain.ProgressFunc
}

func newTracker(total int64, fn domain.ProgressFunc) *tracker {
	t := &tracker{progress: domain.TransferProgress{Total: total}, fn: fn}
	t.emit()
	return t
}

func (t *tracker) file(name string) {
	t.progress.CurrentFile = name
}

func (t *tracker) add(n int) {
	t.progress.Transferred += int64(n)
	t.emit()
}

func (t *tracker) done() {
	t.progress.Transferred = t.progress.Total
	t.emit()
}

func (t *tracker) emit() {
	if t.fn != nil {
		t.fn(t.progress)
	}
}

// countingWriter reports every chunk written through it
type countingWriter struct {
	w io.Writer
	t *tracker
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	if n > 0 {
		cw.t.add(n)
	}
	return n, err
}
