package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"pagesearch/internal/storage"
	storage_mocks "pagesearch/internal/storage/mocks"
)

func TestPagesHandler_ServeHTTP(t *testing.T) {
	indexedAt := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		method         string
		mockSetup      func(*storage_mocks.MockPageStore)
		expectedStatus int
		expectedCount  int
	}{
		{
			name:   "lists pages",
			method: http.MethodGet,
			mockSetup: func(m *storage_mocks.MockPageStore) {
				m.EXPECT().List(gomock.Any()).Return([]storage.PageRecord{
					{ID: "1", URL: "https://example.com", Path: "/", ChunkCount: 3, TokenMin: 10, TokenMax: 90, TokenMean: 50, IndexedAt: indexedAt},
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedCount:  1,
		},
		{
			name:   "empty ledger",
			method: http.MethodGet,
			mockSetup: func(m *storage_mocks.MockPageStore) {
				m.EXPECT().List(gomock.Any()).Return([]storage.PageRecord{}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedCount:  0,
		},
		{
			name:   "store failure",
			method: http.MethodGet,
			mockSetup: func(m *storage_mocks.MockPageStore) {
				m.EXPECT().List(gomock.Any()).Return(nil, errors.New("database is locked"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:           "method not allowed",
			method:         http.MethodPost,
			mockSetup:      func(*storage_mocks.MockPageStore) {},
			expectedStatus: http.StatusMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			store := storage_mocks.NewMockPageStore(ctrl)
			tt.mockSetup(store)

			req := httptest.NewRequest(tt.method, "/api/pages", nil)
			w := httptest.NewRecorder()
			NewPagesHandler(store).ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Fatalf("ServeHTTP() status = %v, want %v", w.Code, tt.expectedStatus)
			}
			if tt.expectedStatus != http.StatusOK {
				return
			}

			var resp PagesResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if len(resp.Pages) != tt.expectedCount {
				t.Fatalf("ServeHTTP() returned %d pages, want %d", len(resp.Pages), tt.expectedCount)
			}
			if tt.expectedCount > 0 {
				page := resp.Pages[0]
				if page.URL != "https://example.com" || page.ChunkCount != 3 || page.IndexedAt != "2024-05-01T08:00:00Z" {
					t.Errorf("ServeHTTP() page = %+v", page)
				}
			}
		})
	}
}
