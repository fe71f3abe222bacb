package download

import (
	"context"
	"fmt"
	"io"

	"github.com/EdwardJoke/egit/internal/httpc"
)

// readBufferSize is the size of the fixed buffer used to drain a chunk
// body incrementally so progress can be reported per read.
const readBufferSize = 8 * 1024

// fetchRange downloads one byte range of the resource into memory.
// onProgress, if non-nil, is invoked after every read with the number of
// new bytes. The returned slice is exactly rng.Len() bytes long; a body
// of any other length is an error.
func fetchRange(ctx context.Context, client *httpc.Client, url string, rng Range, onProgress func(int64)) ([]byte, error) {
	resp, err := client.GetRange(ctx, url, rng.Start, rng.End)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	// Servers that answer with a Content-Range for a different span than
	// requested would corrupt assembly just like an ignored Range header.
	if resp.ContentRange != "" {
		start, end, _, err := httpc.ParseContentRange(resp.ContentRange)
		if err != nil {
			return nil, fmt.Errorf("parse content range: %w", err)
		}
		if start != rng.Start || end != rng.End {
			return nil, httpc.ErrRangeNotHonored
		}
	}

	chunk := make([]byte, 0, rng.Len())
	buf := make([]byte, readBufferSize)
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			chunk = append(chunk, buf[:n]...)
			if int64(len(chunk)) > rng.Len() {
				return nil, httpc.ErrRangeNotHonored
			}
			if onProgress != nil {
				onProgress(int64(n))
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return nil, fmt.Errorf("read body: %w", readErr)
		}
	}

	if int64(len(chunk)) != rng.Len() {
		return nil, fmt.Errorf("short body: got %d bytes, want %d", len(chunk), rng.Len())
	}

	return chunk, nil
}
