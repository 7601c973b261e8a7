package indexer

import "testing"

func TestComputeTokenStats(t *testing.T) {
	sequence := make([]int, 20)
	for i := range sequence {
		sequence[i] = i + 1
	}

	tests := []struct {
		name        string
		tokenCounts []int
		want        TokenStats
	}{
		{
			name:        "empty",
			tokenCounts: nil,
			want:        TokenStats{},
		},
		{
			name:        "single value",
			tokenCounts: []int{10},
			want:        TokenStats{Min: 10, Max: 10, Mean: 10, P95: 10},
		},
		{
			name:        "unsorted input",
			tokenCounts: []int{3, 1, 2},
			want:        TokenStats{Min: 1, Max: 3, Mean: 2, P95: 3},
		},
		{
			name:        "mean rounded to two decimals",
			tokenCounts: []int{1, 1, 2},
			want:        TokenStats{Min: 1, Max: 2, Mean: 1.33, P95: 2},
		},
		{
			name:        "twenty values",
			tokenCounts: sequence,
			want:        TokenStats{Min: 1, Max: 20, Mean: 10.5, P95: 20},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := computeTokenStats(tt.tokenCounts)
			if got.Min != tt.want.Min {
				t.Errorf("Min = %d, want %d", got.Min, tt.want.Min)
			}
			if got.Max != tt.want.Max {
				t.Errorf("Max = %d, want %d", got.Max, tt.want.Max)
			}
			if got.Mean != tt.want.Mean {
				t.Errorf("Mean = %f, want %f", got.Mean, tt.want.Mean)
			}
			if got.P95 != tt.want.P95 {
				t.Errorf("P95 = %d, want %d", got.P95, tt.want.P95)
			}
		})
	}
}

func TestChunkTokenCounts(t *testing.T) {
	chunks := []Chunk{{TokenCount: 4}, {TokenCount: 7}}

	got := chunkTokenCounts(chunks)
	if len(got) != 2 || got[0] != 4 || got[1] != 7 {
		t.Errorf("chunkTokenCounts() = %v, want [4 7]", got)
	}
}
