package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"eventboard/internal/delivery/http/helpers"
	"eventboard/internal/domain"
)

type mockPublicationService struct {
	event *domain.Event
	err   error
}

func (m *mockPublicationService) Create(ctx context.Context, initiatorID int64, draft domain.NewEvent) (*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.event, nil
}

func (m *mockPublicationService) AdminUpdate(ctx context.Context, eventID int64, upd domain.AdminEventUpdate) (*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.event, nil
}

func (m *mockPublicationService) OwnerUpdate(ctx context.Context, ownerID, eventID int64, upd domain.OwnerEventUpdate) (*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.event, nil
}

type mockQueryService struct {
	events []*domain.EventWithViews
	event  *domain.EventWithViews
	err    error
}

func (m *mockQueryService) PublicSearch(ctx context.Context, filter domain.EventFilter, from, size int, clientIP string) ([]*domain.EventWithViews, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.events, nil
}

func (m *mockQueryService) GetPublished(ctx context.Context, eventID int64, clientIP string) (*domain.EventWithViews, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.event, nil
}

func (m *mockQueryService) AdminSearch(ctx context.Context, filter domain.EventFilter, from, size int) ([]*domain.EventWithViews, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.events, nil
}

func (m *mockQueryService) OwnerEvents(ctx context.Context, ownerID int64, from, size int) ([]*domain.EventWithViews, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.events, nil
}

func (m *mockQueryService) OwnerEvent(ctx context.Context, ownerID, eventID int64) (*domain.EventWithViews, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.event, nil
}

func newPrivateController(pub *mockPublicationService, adm *mockAdmissionService, q *mockQueryService) *PrivateEventController {
	if pub == nil {
		pub = &mockPublicationService{}
	}
	if adm == nil {
		adm = &mockAdmissionService{}
	}
	if q == nil {
		q = &mockQueryService{}
	}
	return NewPrivateEventController(testLogger(), pub, adm, q)
}

func TestPrivateEventController_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		pub := &mockPublicationService{event: &domain.Event{ID: 1, Title: "Open air", State: domain.EventStatePending}}
		ctrl := newPrivateController(pub, nil, nil)

		body := fmt.Sprintf(`{"title":"Open air","annotation":"an open air concert","category":3,"event_date":%q}`,
			time.Now().Add(3*time.Hour).Format(time.RFC3339))
		req := authorizedRequest(http.MethodPost, "/users/7/events", strings.NewReader(body), 7)
		w := httptest.NewRecorder()
		ctrl.Create(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
		}
	})

	t.Run("missing title is a bad request", func(t *testing.T) {
		ctrl := newPrivateController(nil, nil, nil)

		body := `{"annotation":"an open air concert","category":3}`
		req := authorizedRequest(http.MethodPost, "/users/7/events", strings.NewReader(body), 7)
		w := httptest.NewRecorder()
		ctrl.Create(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
		}
	})

	t.Run("unknown body field is a bad request", func(t *testing.T) {
		ctrl := newPrivateController(nil, nil, nil)

		body := `{"title":"x","annotation":"y","category":3,"event_date":"2030-01-01T12:00:00Z","bogus":true}`
		req := authorizedRequest(http.MethodPost, "/users/7/events", strings.NewReader(body), 7)
		w := httptest.NewRecorder()
		ctrl.Create(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
		}
	})
}

func TestPrivateEventController_ResolveRequests(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		adm := &mockAdmissionService{result: &domain.BulkResolveResult{
			Confirmed: []*domain.ParticipationRequest{{ID: 21, Status: domain.RequestStatusConfirmed}},
			Rejected:  []*domain.ParticipationRequest{},
		}}
		ctrl := newPrivateController(nil, adm, nil)

		body := `{"request_ids":[21],"status":"CONFIRMED"}`
		req := authorizedRequest(http.MethodPatch, "/users/7/events/1/requests", strings.NewReader(body), 7)
		req.SetPathValue("eventID", "1")
		w := httptest.NewRecorder()
		ctrl.ResolveRequests(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
		}
		var resp helpers.APIResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
		if resp.Error != nil {
			t.Fatalf("expected no error, got %v", resp.Error)
		}
	})

	t.Run("unknown status is a bad request", func(t *testing.T) {
		ctrl := newPrivateController(nil, nil, nil)

		body := `{"request_ids":[21],"status":"MAYBE"}`
		req := authorizedRequest(http.MethodPatch, "/users/7/events/1/requests", strings.NewReader(body), 7)
		req.SetPathValue("eventID", "1")
		w := httptest.NewRecorder()
		ctrl.ResolveRequests(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
		}
	})

	t.Run("limit overflow maps to 409", func(t *testing.T) {
		adm := &mockAdmissionService{err: fmt.Errorf("%w: participant limit exceeded", domain.ErrConflict)}
		ctrl := newPrivateController(nil, adm, nil)

		body := `{"request_ids":[21,22],"status":"CONFIRMED"}`
		req := authorizedRequest(http.MethodPatch, "/users/7/events/1/requests", strings.NewReader(body), 7)
		req.SetPathValue("eventID", "1")
		w := httptest.NewRecorder()
		ctrl.ResolveRequests(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected status %d, got %d", http.StatusConflict, w.Code)
		}
	})
}

func TestPrivateEventController_Update(t *testing.T) {
	t.Run("published event maps to 409", func(t *testing.T) {
		pub := &mockPublicationService{err: fmt.Errorf("%w: published events cannot be edited by the owner", domain.ErrConflict)}
		ctrl := newPrivateController(pub, nil, nil)

		body := `{"title":"renamed"}`
		req := authorizedRequest(http.MethodPatch, "/users/7/events/1", strings.NewReader(body), 7)
		req.SetPathValue("eventID", "1")
		w := httptest.NewRecorder()
		ctrl.Update(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected status %d, got %d", http.StatusConflict, w.Code)
		}
	})

	t.Run("state action is forwarded", func(t *testing.T) {
		pub := &mockPublicationService{event: &domain.Event{ID: 1, State: domain.EventStateCanceled}}
		ctrl := newPrivateController(pub, nil, nil)

		body := `{"state_action":"CANCEL_REVIEW"}`
		req := authorizedRequest(http.MethodPatch, "/users/7/events/1", strings.NewReader(body), 7)
		req.SetPathValue("eventID", "1")
		w := httptest.NewRecorder()
		ctrl.Update(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
		}
	})
}
