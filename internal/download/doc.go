// Package download implements the concurrent chunked-download engine.
//
// The engine has three parts:
//   - Plan partitions [0, size) into contiguous byte ranges, one per worker.
//   - fetchRange downloads one range over its own connection, reading the
//     body incrementally and reporting progress per read.
//   - Coordinator runs one fetch goroutine per range, joins them, and
//     writes the chunks to the destination file strictly in range order.
//
// Workers may complete in any order; assembly order is always range
// order. The output file appears atomically via a part file renamed into
// place, so a reader of the destination path never observes a truncated
// artifact. Any chunk failure aborts the whole download with no output.
//
// # Usage
//
//	coord := download.NewCoordinator(client, func(index int, delta int64) {
//	    reporter.BytesReceived(delta)
//	})
//	err := coord.Run(ctx, download.Task{
//	    URL:     assetURL,
//	    Dest:    destPath,
//	    Size:    assetSize,
//	    Workers: 4,
//	})
//
// Stream is the single-connection fallback for servers without range
// support.
package download
