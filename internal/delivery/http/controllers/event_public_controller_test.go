package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"eventboard/internal/delivery/http/helpers"
	"eventboard/internal/domain"
)

func TestPublicEventController_Search(t *testing.T) {
	t.Run("VIEWS sort orders by view count descending", func(t *testing.T) {
		q := &mockQueryService{events: []*domain.EventWithViews{
			{Event: &domain.Event{ID: 1, State: domain.EventStatePublished}, Views: 3},
			{Event: &domain.Event{ID: 2, State: domain.EventStatePublished}, Views: 42},
		}}
		ctrl := NewPublicEventController(testLogger(), q)

		req := httptest.NewRequest(http.MethodGet, "/events?sort=VIEWS", nil)
		w := httptest.NewRecorder()
		ctrl.Search(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
		}
		var resp struct {
			Data []struct {
				ID    int64 `json:"id"`
				Views int64 `json:"views"`
			} `json:"data"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
		if len(resp.Data) != 2 || resp.Data[0].ID != 2 || resp.Data[1].ID != 1 {
			t.Fatalf("expected views-descending order, got %+v", resp.Data)
		}
	})

	t.Run("invalid paid parameter is a bad request", func(t *testing.T) {
		ctrl := NewPublicEventController(testLogger(), &mockQueryService{})

		req := httptest.NewRequest(http.MethodGet, "/events?paid=maybe", nil)
		w := httptest.NewRecorder()
		ctrl.Search(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
		}
	})

	t.Run("unknown sort value is a bad request", func(t *testing.T) {
		ctrl := NewPublicEventController(testLogger(), &mockQueryService{})

		req := httptest.NewRequest(http.MethodGet, "/events?sort=BOGUS", nil)
		w := httptest.NewRecorder()
		ctrl.Search(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
		}
	})

	t.Run("invalid range parameter is a bad request", func(t *testing.T) {
		ctrl := NewPublicEventController(testLogger(), &mockQueryService{})

		req := httptest.NewRequest(http.MethodGet, "/events?rangeStart=yesterday", nil)
		w := httptest.NewRecorder()
		ctrl.Search(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
		}
	})
}

func TestPublicEventController_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		q := &mockQueryService{event: &domain.EventWithViews{
			Event: &domain.Event{ID: 1, State: domain.EventStatePublished}, Views: 7,
		}}
		ctrl := NewPublicEventController(testLogger(), q)

		req := httptest.NewRequest(http.MethodGet, "/events/1", nil)
		req.SetPathValue("eventID", "1")
		w := httptest.NewRecorder()
		ctrl.Get(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
		}
	})

	t.Run("unpublished maps to 404", func(t *testing.T) {
		q := &mockQueryService{err: fmt.Errorf("%w: event 1", domain.ErrNotFound)}
		ctrl := NewPublicEventController(testLogger(), q)

		req := httptest.NewRequest(http.MethodGet, "/events/1", nil)
		req.SetPathValue("eventID", "1")
		w := httptest.NewRecorder()
		ctrl.Get(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected status %d, got %d", http.StatusNotFound, w.Code)
		}
		var resp helpers.APIResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
		if resp.Error == nil || resp.Error.Code != helpers.ErrCodeNotFound {
			t.Fatalf("expected not_found error code, got %v", resp.Error)
		}
	})

	t.Run("invalid id is a bad request", func(t *testing.T) {
		ctrl := NewPublicEventController(testLogger(), &mockQueryService{})

		req := httptest.NewRequest(http.MethodGet, "/events/abc", nil)
		req.SetPathValue("eventID", "abc")
		w := httptest.NewRecorder()
		ctrl.Get(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
		}
	})
}
