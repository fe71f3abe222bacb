// Package httpc provides the HTTP client used for registry metadata
// requests and artifact downloads.
//
// This package handles:
//   - Connection pooling for parallel range downloads
//   - HEAD requests to probe artifact size and range support
//   - Range requests for chunked downloads
//   - ETag normalization
//
// # Usage
//
//	client := httpc.NewClient(httpc.Options{
//	    Timeout:   30 * time.Second,
//	    UserAgent: "egit-cli",
//	})
//
//	// Probe the artifact
//	info, err := client.Head(ctx, url)
//	// info.Size, info.AcceptsRanges
//
//	// Download a byte range
//	resp, err := client.GetRange(ctx, url, startByte, endByte)
//	defer resp.Body.Close()
//
// The client performs a single attempt per request: failures surface
// immediately and are handled at chunk granularity by the caller.
package httpc
