package progress

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/schollz/progressbar/v3"
)

// Options configures the progress reporter.
type Options struct {
	// TotalSize is the total size in bytes to download.
	TotalSize int64

	// TotalChunks is the number of chunks being fetched.
	TotalChunks int

	// Description is shown next to the bar, typically the artifact name.
	Description string

	// Output is where to render the bar.
	// Default: os.Stderr
	Output io.Writer
}

// Reporter aggregates per-chunk progress into a single terminal bar.
// All methods are safe for concurrent use by download workers.
type Reporter struct {
	bar *progressbar.ProgressBar

	receivedBytes   atomic.Int64
	completedChunks atomic.Int32
	inProgress      atomic.Int32
}

// NewReporter creates a reporter rendering to opts.Output.
func NewReporter(opts Options) *Reporter {
	if opts.Output == nil {
		opts.Output = os.Stderr
	}

	bar := progressbar.NewOptions64(opts.TotalSize,
		progressbar.OptionSetDescription(opts.Description),
		progressbar.OptionSetWriter(opts.Output),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(opts.Output)
		}),
	)

	return &Reporter{bar: bar}
}

// ChunkStarted marks a chunk as in progress.
func (r *Reporter) ChunkStarted() {
	r.inProgress.Add(1)
}

// BytesReceived records delta new bytes for any chunk.
func (r *Reporter) BytesReceived(delta int64) {
	r.receivedBytes.Add(delta)
	r.bar.Add64(delta)
}

// ChunkCompleted marks a chunk as completed.
func (r *Reporter) ChunkCompleted() {
	r.completedChunks.Add(1)
	r.inProgress.Add(-1)
}

// ChunkFailed marks a chunk as failed (removes from in-progress).
func (r *Reporter) ChunkFailed() {
	r.inProgress.Add(-1)
}

// Received returns the total bytes recorded so far.
func (r *Reporter) Received() int64 {
	return r.receivedBytes.Load()
}

// Finish completes the bar rendering.
func (r *Reporter) Finish() {
	r.bar.Finish()
}

// TrackChunks returns a per-chunk progress callback for a download whose
// chunk lengths are known up front. The first delta for a chunk marks it
// started; reaching its full length marks it completed.
func (r *Reporter) TrackChunks(lengths []int64) func(index int, delta int64) {
	var mu sync.Mutex
	remaining := make([]int64, len(lengths))
	copy(remaining, lengths)

	return func(index int, delta int64) {
		mu.Lock()
		if remaining[index] == lengths[index] {
			r.ChunkStarted()
		}
		remaining[index] -= delta
		done := remaining[index] <= 0
		mu.Unlock()

		r.BytesReceived(delta)
		if done {
			r.ChunkCompleted()
		}
	}
}

// FormatBytes formats bytes as a human-readable string.
func FormatBytes(b int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
		TB = GB * 1024
	)

	switch {
	case b >= TB:
		return fmt.Sprintf("%.2f TB", float64(b)/float64(TB))
	case b >= GB:
		return fmt.Sprintf("%.2f GB", float64(b)/float64(GB))
	case b >= MB:
		return fmt.Sprintf("%.2f MB", float64(b)/float64(MB))
	case b >= KB:
		return fmt.Sprintf("%.2f KB", float64(b)/float64(KB))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
