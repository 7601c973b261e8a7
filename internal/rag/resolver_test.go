package rag

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"pagesearch/internal/vectorstore"
	vectorstore_mocks "pagesearch/internal/vectorstore/mocks"
)

type stubEmbedder struct {
	vector []float32
	err    error
	texts  []string
}

func (s *stubEmbedder) EmbedTexts(_ context.Context, texts []string) ([][]float32, error) {
	s.texts = texts
	if s.err != nil {
		return nil, s.err
	}
	return [][]float32{s.vector}, nil
}

func TestResolver_EffectiveLimit(t *testing.T) {
	tests := []struct {
		name         string
		defaultLimit int
		limit        int
		want         int
	}{
		{"zero uses default", 0, 0, DefaultLimit},
		{"negative uses default", 0, -5, DefaultLimit},
		{"explicit limit", 0, 3, 3},
		{"clamped to max", 0, 500, MaxLimit},
		{"configured default", 20, 0, 20},
		{"configured default clamped", 80, 0, MaxLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(&stubEmbedder{}, nil, "web_content", tt.defaultLimit)
			if got := r.EffectiveLimit(tt.limit); got != tt.want {
				t.Errorf("EffectiveLimit(%d) = %d, want %d", tt.limit, got, tt.want)
			}
		})
	}
}

func TestResolver_Search(t *testing.T) {
	queryVector := []float32{0.1, 0.2}
	storeErr := errors.New("qdrant down")
	embedErr := errors.New("embedder down")

	tests := []struct {
		name      string
		limit     int
		embedErr  error
		setupMock func(*vectorstore_mocks.MockStore)
		want      []Result
		wantErr   error
	}{
		{
			name:  "maps hits in store order",
			limit: 2,
			setupMock: func(m *vectorstore_mocks.MockStore) {
				m.EXPECT().
					Nearest(gomock.Any(), "web_content", queryVector, 2).
					Return([]vectorstore.Hit{
						{ID: "a", Score: 1, Content: "first", HTML: "<p>first</p>", Path: "/docs"},
						{ID: "b", Score: 0, Content: "second", HTML: "<p>second</p>", Path: "/"},
					}, nil)
			},
			want: []Result{
				{Content: "first", HTML: "<p>first</p>", Path: "/docs", Score: 100},
				{Content: "second", HTML: "<p>second</p>", Path: "/", Score: 50},
			},
		},
		{
			name:  "default limit",
			limit: 0,
			setupMock: func(m *vectorstore_mocks.MockStore) {
				m.EXPECT().Nearest(gomock.Any(), "web_content", queryVector, DefaultLimit).Return(nil, nil)
			},
			want: []Result{},
		},
		{
			name:  "limit clamped",
			limit: 1000,
			setupMock: func(m *vectorstore_mocks.MockStore) {
				m.EXPECT().Nearest(gomock.Any(), "web_content", queryVector, MaxLimit).Return([]vectorstore.Hit{}, nil)
			},
			want: []Result{},
		},
		{
			name:      "embedder failure",
			embedErr:  embedErr,
			setupMock: func(m *vectorstore_mocks.MockStore) {},
			wantErr:   embedErr,
		},
		{
			name: "store failure",
			setupMock: func(m *vectorstore_mocks.MockStore) {
				m.EXPECT().Nearest(gomock.Any(), "web_content", gomock.Any(), gomock.Any()).Return(nil, storeErr)
			},
			wantErr: storeErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			store := vectorstore_mocks.NewMockStore(ctrl)
			tt.setupMock(store)
			embedder := &stubEmbedder{vector: queryVector, err: tt.embedErr}

			r := NewResolver(embedder, store, "web_content", DefaultLimit)
			got, err := r.Search(context.Background(), "what is go?", tt.limit)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Search() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Search() unexpected error: %v", err)
			}

			if len(embedder.texts) != 1 || embedder.texts[0] != "what is go?" {
				t.Errorf("embedder texts = %v, want [what is go?]", embedder.texts)
			}
			if got == nil {
				t.Fatal("Search() returned nil results, want empty slice")
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Search() returned %d results, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Search()[%d] = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestResolver_Search_MemoryStore(t *testing.T) {
	ctx := context.Background()
	store := vectorstore.NewMemoryStore()
	_ = store.Upsert(ctx, "web_content", []vectorstore.Record{
		{ID: "1", Vector: []float32{1, 0}, Content: "match", Path: "/"},
		{ID: "2", Vector: []float32{0, 1}, Content: "other", Path: "/"},
	})

	r := NewResolver(&stubEmbedder{vector: []float32{1, 0}}, store, "web_content", DefaultLimit)
	results, err := r.Search(ctx, "match", 1)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 1 || results[0].Content != "match" {
		t.Fatalf("Search() = %+v, want single match", results)
	}
	if results[0].Score < 99.99 {
		t.Errorf("Search() score = %v, want ~100", results[0].Score)
	}
}
