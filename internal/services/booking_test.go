package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"eventboard/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBookingRepo is an in-memory BookingRepository for tests.
type fakeBookingRepo struct {
	events *fakeEventRepo
	byID   map[string]*domain.Booking
	nextID int
	err    error
}

func newFakeBookingRepo(events *fakeEventRepo) *fakeBookingRepo {
	return &fakeBookingRepo{
		events: events,
		byID:   make(map[string]*domain.Booking),
		nextID: 1,
	}
}

func (f *fakeBookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	if f.err != nil {
		return f.err
	}
	// Mirror the real repository: existence re-checked at insert time.
	if _, ok := f.events.byID[b.EventID]; !ok {
		return domain.ErrEventNotFound
	}
	b.ID = fmt.Sprintf("bk-%d", f.nextID)
	f.nextID++
	stored := *b
	f.byID[b.ID] = &stored
	return nil
}

func (f *fakeBookingRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.byID {
		if b.EventID == eventID {
			copied := *b
			out = append(out, &copied)
		}
	}
	return out, nil
}

// recordingEmailService records confirmation sends; err, if set, is returned.
type recordingEmailService struct {
	sent []*domain.BookingConfirmationEmailData
	err  error
}

func (r *recordingEmailService) SendBookingConfirmation(ctx context.Context, data *domain.BookingConfirmationEmailData) error {
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, data)
	return nil
}

func newBookingFixture(t *testing.T) (*fakeEventRepo, *fakeBookingRepo, *recordingEmailService, domain.BookingService, *domain.Event) {
	t.Helper()
	events := newFakeEventRepo()
	bookings := newFakeBookingRepo(events)
	emails := &recordingEmailService{}
	svc := NewBookingService(bookings, events, emails, slog.New(slog.DiscardHandler), 2*time.Second)

	e := validEvent()
	require.NoError(t, newTestEventService(events).CreateEvent(context.Background(), e))
	return events, bookings, emails, svc, e
}

func TestBookingService_CreateBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes email and sends confirmation", func(t *testing.T) {
		_, bookings, emails, svc, e := newBookingFixture(t)

		b, err := svc.CreateBooking(ctx, e.ID, "User@Example.com ")
		require.NoError(t, err)
		assert.Equal(t, "user@example.com", b.Email)
		assert.Equal(t, e.ID, b.EventID)
		assert.NotEmpty(t, b.ID)
		assert.False(t, b.CreatedAt.IsZero())

		require.Len(t, bookings.byID, 1)
		require.Len(t, emails.sent, 1)
		assert.Equal(t, "user@example.com", emails.sent[0].Email)
		assert.Equal(t, e.Title, emails.sent[0].EventTitle)
	})

	t.Run("rejects malformed emails", func(t *testing.T) {
		_, bookings, _, svc, e := newBookingFixture(t)

		for _, email := range []string{"", "no-at-sign", "a b@example.com", "user@example", "user@ example.com"} {
			_, err := svc.CreateBooking(ctx, e.ID, email)
			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve, "email %q should be rejected", email)
			assert.Equal(t, "email", ve.Field)
		}
		assert.Empty(t, bookings.byID)
	})

	t.Run("unknown event yields ErrEventNotFound", func(t *testing.T) {
		_, bookings, emails, svc, _ := newBookingFixture(t)

		_, err := svc.CreateBooking(ctx, "ev-missing", "user@example.com")
		require.ErrorIs(t, err, domain.ErrEventNotFound)
		assert.Empty(t, bookings.byID)
		assert.Empty(t, emails.sent)
	})

	t.Run("event deleted between check and insert", func(t *testing.T) {
		_, bookings, _, svc, e := newBookingFixture(t)

		// Simulate the race by making the insert-time check fail.
		bookings.err = domain.ErrEventNotFound

		_, err := svc.CreateBooking(ctx, e.ID, "user@example.com")
		require.ErrorIs(t, err, domain.ErrEventNotFound)
	})

	t.Run("email failure does not fail the booking", func(t *testing.T) {
		_, bookings, emails, svc, e := newBookingFixture(t)
		emails.err = errors.New("ses unavailable")

		b, err := svc.CreateBooking(ctx, e.ID, "user@example.com")
		require.NoError(t, err)
		assert.NotEmpty(t, b.ID)
		require.Len(t, bookings.byID, 1)
	})
}

func TestBookingService_ListEventBookings(t *testing.T) {
	ctx := context.Background()

	t.Run("lists bookings for an event", func(t *testing.T) {
		_, _, _, svc, e := newBookingFixture(t)

		_, err := svc.CreateBooking(ctx, e.ID, "a@example.com")
		require.NoError(t, err)
		_, err = svc.CreateBooking(ctx, e.ID, "b@example.com")
		require.NoError(t, err)

		got, err := svc.ListEventBookings(ctx, e.ID)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("unknown event", func(t *testing.T) {
		_, _, _, svc, _ := newBookingFixture(t)
		_, err := svc.ListEventBookings(ctx, "ev-missing")
		require.ErrorIs(t, err, domain.ErrEventNotFound)
	})

	t.Run("no bookings returns empty slice", func(t *testing.T) {
		_, _, _, svc, e := newBookingFixture(t)
		got, err := svc.ListEventBookings(ctx, e.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Empty(t, got)
	})
}
