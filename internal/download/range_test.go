package download

import "testing"

func TestPlanBasic(t *testing.T) {
	tests := []struct {
		name      string
		totalSize int64
		workers   int
		want      []Range
	}{
		{
			name:      "even split",
			totalSize: 100,
			workers:   4,
			want: []Range{
				{Index: 0, Start: 0, End: 24},
				{Index: 1, Start: 25, End: 49},
				{Index: 2, Start: 50, End: 74},
				{Index: 3, Start: 75, End: 99},
			},
		},
		{
			name:      "remainder absorbed by last range",
			totalSize: 10,
			workers:   3,
			want: []Range{
				{Index: 0, Start: 0, End: 3},
				{Index: 1, Start: 4, End: 7},
				{Index: 2, Start: 8, End: 9},
			},
		},
		{
			name:      "single worker",
			totalSize: 100,
			workers:   1,
			want:      []Range{{Index: 0, Start: 0, End: 99}},
		},
		{
			name:      "one byte",
			totalSize: 1,
			workers:   4,
			want:      []Range{{Index: 0, Start: 0, End: 0}},
		},
		{
			name:      "zero size",
			totalSize: 0,
			workers:   4,
			want:      nil,
		},
		{
			name:      "non-positive workers treated as one",
			totalSize: 50,
			workers:   0,
			want:      []Range{{Index: 0, Start: 0, End: 49}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Plan(tt.totalSize, tt.workers)
			if len(got) != len(tt.want) {
				t.Fatalf("Plan(%d, %d) = %d ranges, want %d",
					tt.totalSize, tt.workers, len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("range %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestPlanOversubscription(t *testing.T) {
	// More workers than bytes: ranges past the end are dropped.
	ranges := Plan(10, 100)
	if len(ranges) > 10 {
		t.Fatalf("expected at most 10 ranges, got %d", len(ranges))
	}
	for _, r := range ranges {
		if r.Len() <= 0 {
			t.Errorf("range %d has non-positive length %d", r.Index, r.Len())
		}
	}
	var total int64
	for _, r := range ranges {
		total += r.Len()
	}
	if total != 10 {
		t.Errorf("ranges cover %d bytes, want 10", total)
	}
}

func TestPlanCoverage(t *testing.T) {
	// The union of planned ranges must equal [0, totalSize) exactly for
	// any combination of size and worker count.
	sizes := []int64{1, 2, 3, 7, 10, 100, 1023, 1024, 1025, 1 << 20}
	workerCounts := []int{1, 2, 3, 4, 7, 8, 16, 100}

	for _, size := range sizes {
		for _, workers := range workerCounts {
			ranges := Plan(size, workers)
			if len(ranges) == 0 {
				t.Errorf("Plan(%d, %d): no ranges for non-empty resource", size, workers)
				continue
			}

			var next int64
			for i, r := range ranges {
				if r.Index != i {
					t.Errorf("Plan(%d, %d): range %d carries index %d", size, workers, i, r.Index)
				}
				if r.Start != next {
					t.Errorf("Plan(%d, %d): range %d starts at %d, want %d (gap or overlap)",
						size, workers, i, r.Start, next)
				}
				if r.End < r.Start {
					t.Errorf("Plan(%d, %d): range %d is negative (%d-%d)",
						size, workers, i, r.Start, r.End)
				}
				next = r.End + 1
			}
			if next != size {
				t.Errorf("Plan(%d, %d): ranges cover [0, %d), want [0, %d)",
					size, workers, next, size)
			}
		}
	}
}

func TestRangeLen(t *testing.T) {
	r := Range{Index: 0, Start: 10, End: 19}
	if r.Len() != 10 {
		t.Errorf("Len() = %d, want 10", r.Len())
	}
}
