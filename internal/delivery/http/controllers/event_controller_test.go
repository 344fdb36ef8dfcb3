package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"eventboard/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEventService lets each test script the service behavior.
type fakeEventService struct {
	createErr error
	getBySlug func(slug string) (*domain.Event, error)
	updateErr error
	deleteErr error
	list      []*domain.Event
	listErr   error
}

func (f *fakeEventService) CreateEvent(ctx context.Context, e *domain.Event) error {
	if f.createErr != nil {
		return f.createErr
	}
	e.ID = "0c4e6a1e-93a3-4a42-8a5b-7f8d2f15a001"
	e.Slug = "react-conf-2024"
	return nil
}

func (f *fakeEventService) GetEventByID(ctx context.Context, id string) (*domain.Event, error) {
	return nil, domain.ErrNotFound
}

func (f *fakeEventService) GetEventBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	if f.getBySlug != nil {
		return f.getBySlug(slug)
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventService) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	return f.list, f.listErr
}

func (f *fakeEventService) UpdateEvent(ctx context.Context, id string, changes domain.EventUpdate) (*domain.Event, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return &domain.Event{ID: id}, nil
}

func (f *fakeEventService) DeleteEvent(ctx context.Context, id string) error {
	return f.deleteErr
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func newEventMux(svc domain.EventService) *http.ServeMux {
	c := NewEventController(testLogger(), svc)
	mux := http.NewServeMux()
	mux.HandleFunc("POST /events", c.CreateEvent)
	mux.HandleFunc("GET /events/{slug}", c.GetEventBySlug)
	mux.HandleFunc("PATCH /events/{eventID}", c.UpdateEvent)
	mux.HandleFunc("DELETE /events/{eventID}", c.DeleteEvent)
	return mux
}

const validEventID = "0c4e6a1e-93a3-4a42-8a5b-7f8d2f15a001"

func TestEventController_CreateEvent(t *testing.T) {
	body := `{
		"title": "React Conf 2024",
		"description": "The annual React conference",
		"overview": "Two days of talks",
		"image": "/images/react.png",
		"venue": "Moscone Center",
		"location": "San Francisco, CA",
		"date": "Dec 10, 2024",
		"time": "9:00 AM",
		"mode": "hybrid",
		"audience": "Engineers",
		"agenda": ["Keynote"],
		"organizer": "React Team",
		"tags": ["react"]
	}`

	t.Run("created", func(t *testing.T) {
		mux := newEventMux(&fakeEventService{})
		req := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(body))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		var resp struct {
			Data  *domain.Event   `json:"data"`
			Error json.RawMessage `json:"error"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.NotNil(t, resp.Data)
		assert.Equal(t, "react-conf-2024", resp.Data.Slug)
	})

	t.Run("validation failure is 400 and names the field", func(t *testing.T) {
		mux := newEventMux(&fakeEventService{
			createErr: &domain.ValidationError{Field: "title", Reason: "must not be empty"},
		})
		req := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(body))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "title")
	})

	t.Run("slug conflict is 409", func(t *testing.T) {
		mux := newEventMux(&fakeEventService{createErr: domain.ErrSlugTaken})
		req := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(body))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		require.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), "conflict")
	})

	t.Run("unknown body field is 400", func(t *testing.T) {
		mux := newEventMux(&fakeEventService{})
		req := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(`{"slug": "forced"}`))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("internal error is 500", func(t *testing.T) {
		mux := newEventMux(&fakeEventService{createErr: errors.New("boom")})
		req := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(body))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestEventController_GetEventBySlug(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		mux := newEventMux(&fakeEventService{
			getBySlug: func(slug string) (*domain.Event, error) {
				return &domain.Event{ID: validEventID, Slug: slug, Title: "React Conf 2024"}, nil
			},
		})
		req := httptest.NewRequest(http.MethodGet, "/events/react-conf-2024", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "react-conf-2024")
	})

	t.Run("missing is 404", func(t *testing.T) {
		mux := newEventMux(&fakeEventService{})
		req := httptest.NewRequest(http.MethodGet, "/events/nope", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestEventController_UpdateEvent(t *testing.T) {
	t.Run("invalid uuid is 400", func(t *testing.T) {
		mux := newEventMux(&fakeEventService{})
		req := httptest.NewRequest(http.MethodPatch, "/events/not-a-uuid", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "UUID")
	})

	t.Run("missing event is 404", func(t *testing.T) {
		mux := newEventMux(&fakeEventService{updateErr: domain.ErrNotFound})
		req := httptest.NewRequest(http.MethodPatch, "/events/"+validEventID, strings.NewReader(`{"description": "x"}`))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("updated", func(t *testing.T) {
		mux := newEventMux(&fakeEventService{})
		req := httptest.NewRequest(http.MethodPatch, "/events/"+validEventID, strings.NewReader(`{"description": "x"}`))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestEventController_DeleteEvent(t *testing.T) {
	mux := newEventMux(&fakeEventService{})
	req := httptest.NewRequest(http.MethodDelete, "/events/"+validEventID, nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), validEventID)
}
