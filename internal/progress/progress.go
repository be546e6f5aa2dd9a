// Package progress provides hashing throughput and ETA reporting helpers.
package progress

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
)

// Event describes hashing status at a point in time.
type Event struct {
	Bytes      uint64
	Total      uint64
	InstantBps float64
	AverageBps float64
	ETA        time.Duration
	Elapsed    time.Duration
	Done       bool
	Label      string
}

// Reporter emits human-readable progress updates.
type Reporter struct {
	mu         sync.Mutex
	w          io.Writer
	total      uint64
	label      string
	start      time.Time
	lastTick   time.Time
	lastBytes  uint64
	base       uint64
	minTickGap time.Duration
	now        func() time.Time
}

// NewReporter creates a reporter with update throttling.
func NewReporter(w io.Writer, label string, total uint64) *Reporter {
	r := &Reporter{w: w, total: total, label: label, minTickGap: 150 * time.Millisecond, now: time.Now}
	r.start = r.now()
	r.lastTick = r.start
	return r
}

// Resume marks offset bytes as already done before this reporter started,
// so rates and ETA only count bytes processed from here on.
func (r *Reporter) Resume(offset uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.base = offset
	r.lastBytes = offset
}

// Update prints progress at throttled intervals.
func (r *Reporter) Update(bytes uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	if now.Sub(r.lastTick) < r.minTickGap && (r.total == 0 || bytes < r.total) {
		return
	}
	e := r.buildEvent(bytes, now, false)
	_, _ = fmt.Fprintf(r.w, "\r%s %s/%s inst:%s avg:%s eta:%s", r.label, humanize.IBytes(e.Bytes), humanize.IBytes(e.Total), humanRate(e.InstantBps), humanRate(e.AverageBps), humanDuration(e.ETA))
	r.lastTick = now
	r.lastBytes = bytes
}

// Done prints final summary.
func (r *Reporter) Done(bytes uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e := r.buildEvent(bytes, r.now(), true)
	_, _ = fmt.Fprintf(r.w, "\r%s hashed %s in %s avg:%s\n", r.label, humanize.IBytes(e.Bytes), humanDuration(e.Elapsed), humanRate(e.AverageBps))
}

func (r *Reporter) buildEvent(bytes uint64, now time.Time, done bool) Event {
	elapsed := now.Sub(r.start)
	if elapsed <= 0 {
		elapsed = time.Millisecond
	}
	chunkDur := now.Sub(r.lastTick)
	if chunkDur <= 0 {
		chunkDur = time.Millisecond
	}
	inst := float64(sub(bytes, r.lastBytes)) / chunkDur.Seconds()
	avg := float64(sub(bytes, r.base)) / elapsed.Seconds()
	remaining := uint64(0)
	if bytes < r.total {
		remaining = r.total - bytes
	}
	eta := time.Duration(0)
	if avg > 0 && remaining > 0 {
		eta = time.Duration(float64(remaining)/avg) * time.Second
	}
	return Event{Bytes: bytes, Total: r.total, InstantBps: inst, AverageBps: avg, ETA: eta, Elapsed: elapsed, Done: done, Label: r.label}
}

// Writer counts bytes passing through it and reports them.
type Writer struct {
	r *Reporter
	n uint64
}

// NewWriter returns an io.Writer that advances r by every write.
func NewWriter(r *Reporter) *Writer { return &Writer{r: r} }

// Write counts p and updates the reporter.
func (w *Writer) Write(p []byte) (int, error) {
	w.n += uint64(len(p))
	w.r.Update(w.n)
	return len(p), nil
}

// Finish prints the summary for the bytes seen so far.
func (w *Writer) Finish() { w.r.Done(w.n) }

func sub(a, b uint64) uint64 {
	if a < b {
		return 0
	}
	return a - b
}

func humanRate(bps float64) string {
	if bps < 0 {
		bps = 0
	}
	return fmt.Sprintf("%s/s", humanize.IBytes(uint64(bps)))
}

func humanDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	return d.Truncate(time.Second).String()
}
