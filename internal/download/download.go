package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/apex/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/EdwardJoke/egit/internal/httpc"
)

// ErrInvalidPlan is returned when range planning produces no ranges for a
// non-empty resource.
var ErrInvalidPlan = errors.New("download: invalid range plan")

// ChunkError reports the failure of a single chunk fetch. Index is the
// range index of the failing chunk; Err is the underlying cause.
type ChunkError struct {
	Index int
	Err   error
}

func (e *ChunkError) Error() string {
	return fmt.Sprintf("chunk %d: %v", e.Index, e.Err)
}

func (e *ChunkError) Unwrap() error {
	return e.Err
}

// Task describes a single download. Size must be known in advance, via a
// registry metadata probe or a HEAD request; the coordinator does not
// probe it itself.
type Task struct {
	// URL is the resolved artifact URL.
	URL string

	// Dest is the destination file path.
	Dest string

	// Size is the total artifact size in bytes.
	Size int64

	// Workers is the number of parallel range fetches.
	Workers int
}

// ProgressFunc receives incremental progress for one chunk: the range
// index and the number of new bytes since the last call.
type ProgressFunc func(index int, delta int64)

// Coordinator downloads an artifact by fetching byte ranges in parallel
// and assembling them, in range order, into a single output file.
type Coordinator struct {
	client     *httpc.Client
	onProgress ProgressFunc
}

// NewCoordinator creates a coordinator using the given HTTP client.
// onProgress may be nil.
func NewCoordinator(client *httpc.Client, onProgress ProgressFunc) *Coordinator {
	return &Coordinator{client: client, onProgress: onProgress}
}

// Run executes the task: plan ranges, fetch every range on its own
// goroutine, then write the chunks to Task.Dest strictly in range order.
// The output appears atomically: chunks are written to a temporary part
// file which is renamed onto Dest only after every byte is in place. On
// any chunk failure the remaining fetches are cancelled, the join waits
// for all of them to return, no output file is produced, and the first
// observed error is returned wrapped in a ChunkError.
func (c *Coordinator) Run(ctx context.Context, task Task) error {
	if task.Workers < 1 {
		task.Workers = 1
	}

	ranges := Plan(task.Size, task.Workers)
	if len(ranges) == 0 {
		if task.Size > 0 {
			return ErrInvalidPlan
		}
		// Empty resource: nothing to fetch, still produce the file.
		return assemble(task.Dest, nil)
	}

	log.WithFields(log.Fields{
		"url":     task.URL,
		"size":    task.Size,
		"workers": task.Workers,
		"ranges":  len(ranges),
	}).Debug("planned download")

	chunks := make([][]byte, len(ranges))

	g, gctx := errgroup.WithContext(ctx)
	for _, rng := range ranges {
		rng := rng
		g.Go(func() error {
			var onProgress func(int64)
			if c.onProgress != nil {
				onProgress = func(n int64) { c.onProgress(rng.Index, n) }
			}

			chunk, err := fetchRange(gctx, c.client, task.URL, rng, onProgress)
			if err != nil {
				return &ChunkError{Index: rng.Index, Err: err}
			}
			chunks[rng.Index] = chunk
			return nil
		})
	}

	// Wait returns the first error while still draining every worker, so
	// no fetch goroutine outlives the coordinator.
	if err := g.Wait(); err != nil {
		return err
	}

	return assemble(task.Dest, chunks)
}

// assemble writes the chunks, in index order, to a temporary part file
// next to dest and renames it into place. The part file is removed on any
// failure.
func assemble(dest string, chunks [][]byte) error {
	part := fmt.Sprintf("%s.egit-%s.part", dest, uuid.NewString())

	f, err := os.Create(part)
	if err != nil {
		return fmt.Errorf("create part file: %w", err)
	}

	for _, chunk := range chunks {
		if _, err := f.Write(chunk); err != nil {
			f.Close()
			os.Remove(part)
			return fmt.Errorf("write part file: %w", err)
		}
	}

	if err := f.Close(); err != nil {
		os.Remove(part)
		return fmt.Errorf("close part file: %w", err)
	}

	if err := os.Rename(part, dest); err != nil {
		os.Remove(part)
		return fmt.Errorf("rename part file: %w", err)
	}

	return nil
}

// Stream downloads the artifact over a single connection, for servers
// that do not support range requests or when the size is unknown.
// The same atomic part-file contract as Run applies.
func Stream(ctx context.Context, client *httpc.Client, url, dest string, onProgress func(int64)) error {
	body, err := client.Get(ctx, url)
	if err != nil {
		return err
	}
	defer body.Close()

	part := fmt.Sprintf("%s.egit-%s.part", dest, uuid.NewString())

	f, err := os.Create(part)
	if err != nil {
		return fmt.Errorf("create part file: %w", err)
	}

	buf := make([]byte, 32*1024)
	for {
		n, readErr := body.Read(buf)
		if n > 0 {
			if _, err := f.Write(buf[:n]); err != nil {
				f.Close()
				os.Remove(part)
				return fmt.Errorf("write part file: %w", err)
			}
			if onProgress != nil {
				onProgress(int64(n))
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			f.Close()
			os.Remove(part)
			return fmt.Errorf("read body: %w", readErr)
		}
	}

	if err := f.Close(); err != nil {
		os.Remove(part)
		return fmt.Errorf("close part file: %w", err)
	}

	if err := os.Rename(part, dest); err != nil {
		os.Remove(part)
		return fmt.Errorf("rename part file: %w", err)
	}

	return nil
}
