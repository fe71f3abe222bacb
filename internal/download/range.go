package download

// Range is one contiguous byte span of the resource. End is inclusive,
// matching the HTTP Range header. Index defines output ordering during
// assembly, independent of completion order.
type Range struct {
	Index int
	Start int64
	End   int64
}

// Len returns the number of bytes covered by the range.
func (r Range) Len() int64 {
	return r.End - r.Start + 1
}

// Plan partitions [0, totalSize) into at most workers contiguous,
// non-overlapping ranges whose union covers the resource exactly. The
// chunk size is ceil(totalSize/workers); the last range absorbs any
// remainder. Ranges that would start past the end of the resource are
// dropped, so the result may hold fewer than workers entries. A zero
// totalSize yields no ranges.
func Plan(totalSize int64, workers int) []Range {
	if totalSize <= 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}

	chunkSize := (totalSize + int64(workers) - 1) / int64(workers)

	ranges := make([]Range, 0, workers)
	for i := 0; i < workers; i++ {
		start := int64(i) * chunkSize
		if start >= totalSize {
			break
		}
		end := start + chunkSize - 1
		if end > totalSize-1 {
			end = totalSize - 1
		}
		ranges = append(ranges, Range{Index: i, Start: start, End: end})
	}

	return ranges
}
