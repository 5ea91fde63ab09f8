package service

import (
	"context"
	"testing"
	"time"

	"github.com/Freeeeeet/condo_bot/internal/availability"
	"github.com/Freeeeeet/condo_bot/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func seedReservation(date, slot string, status model.ReservationStatus, userID int64) model.Reservation {
	return model.Reservation{
		ID:              uuid.New(),
		UserID:          userID,
		ApartmentNumber: "202",
		ResidentName:    "Maria",
		Date:            model.MustParseDate(date),
		TimeSlot:        slot,
		Event:           "Aniversário",
		Contact:         "11 99999-0000",
		Status:          status,
	}
}

func newTestReservationService(repo *fakeReservationRepo, settings model.Settings) (*ReservationService, *fakeMonthCache) {
	monthCache := newFakeMonthCache()
	svc := NewReservationService(repo, &fakeSettings{settings: settings}, monthCache, SlotCatalog{
		Labels:       testSlots,
		Policy:       availability.ExactPolicy(),
		FirstWeekday: time.Sunday,
		Location:     time.UTC,
	}, zap.NewNop())
	svc.now = fixedNow
	return svc, monthCache
}

func validDraft(date string) model.ReservationDraft {
	return model.ReservationDraft{
		Date:         model.MustParseDate(date),
		TimeSlot:     "10:00-12:00",
		ResidentName: "Maria Souza",
		Event:        "Aniversário",
		Contact:      "11 99999-0000",
	}
}

func TestReservationService_CreateAndDayView(t *testing.T) {
	ctx := context.Background()
	repo := newFakeReservationRepo(
		seedReservation("2024-06-12", "08:00-10:00", model.ReservationStatusConfirmed, 9),
	)
	svc, monthCache := newTestReservationService(repo, model.DefaultSettings())

	// прогреваем кэш
	_, err := svc.DayView(ctx, model.MustParseDate("2024-06-12"))
	require.NoError(t, err)
	require.Contains(t, monthCache.data, "2024-06")

	res, err := svc.Create(ctx, residentUser, validDraft("2024-06-12"))
	require.NoError(t, err)
	assert.Equal(t, model.ReservationStatusPending, res.Status)
	assert.Equal(t, residentUser.ID, res.UserID)
	assert.Equal(t, "202", res.ApartmentNumber, "apartment defaults to the actor's")
	assert.Equal(t, fixedNow(), res.RequestedAt)
	assert.Contains(t, monthCache.invalidated, "2024-06")

	view, err := svc.DayView(ctx, model.MustParseDate("2024-06-12"))
	require.NoError(t, err)
	assert.Equal(t, availability.DayBooked, view.Occupancy.Status)
	assert.Equal(t, 2, view.Occupancy.Count)
	assert.Equal(t, []string{"Full day"}, view.Available)
	assert.True(t, view.Selectable())
	require.Len(t, view.Slots, 3)
	assert.False(t, view.Slots[1].Free())
}

func TestReservationService_CreateRejections(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		actor    *model.User
		settings func(*model.Settings)
		draft    func(*model.ReservationDraft)
		seed     []model.Reservation
		wantErr  error
	}{
		{
			name:    "no actor",
			wantErr: ErrForbidden,
		},
		{
			name:    "past date",
			actor:   residentUser,
			draft:   func(d *model.ReservationDraft) { d.Date = model.MustParseDate("2024-06-09") },
			wantErr: ErrPastDate,
		},
		{
			name:    "missing date",
			actor:   residentUser,
			draft:   func(d *model.ReservationDraft) { d.Date = model.Date{} },
			wantErr: ErrValidation,
		},
		{
			name:    "short event",
			actor:   residentUser,
			draft:   func(d *model.ReservationDraft) { d.Event = "x" },
			wantErr: ErrValidation,
		},
		{
			name:    "no apartment anywhere",
			actor:   &model.User{ID: 5, Role: model.UserRoleResident},
			wantErr: ErrApartmentRequired,
		},
		{
			name:    "too far ahead",
			actor:   residentUser,
			draft:   func(d *model.ReservationDraft) { d.Date = model.MustParseDate("2024-07-11") },
			wantErr: ErrTooFarAhead,
		},
		{
			name:     "weekend disabled",
			actor:    residentUser,
			settings: func(s *model.Settings) { s.AllowWeekendReservations = false },
			draft:    func(d *model.ReservationDraft) { d.Date = model.MustParseDate("2024-06-15") },
			wantErr:  ErrWeekendNotAllowed,
		},
		{
			name:  "per user limit",
			actor: residentUser,
			seed: []model.Reservation{
				seedReservation("2024-06-20", "08:00-10:00", model.ReservationStatusPending, residentUser.ID),
				seedReservation("2024-06-21", "08:00-10:00", model.ReservationStatusConfirmed, residentUser.ID),
			},
			wantErr: ErrReservationLimit,
		},
		{
			name:    "unknown slot",
			actor:   residentUser,
			draft:   func(d *model.ReservationDraft) { d.TimeSlot = "06:00-08:00" },
			wantErr: availability.ErrUnknownSlot,
		},
		{
			name:  "slot taken",
			actor: residentUser,
			seed: []model.Reservation{
				seedReservation("2024-06-12", "10:00-12:00", model.ReservationStatusPending, 9),
			},
			wantErr: availability.ErrSlotTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := model.DefaultSettings()
			if tt.settings != nil {
				tt.settings(&settings)
			}
			draft := validDraft("2024-06-12")
			if tt.draft != nil {
				tt.draft(&draft)
			}

			repo := newFakeReservationRepo(tt.seed...)
			svc, _ := newTestReservationService(repo, settings)

			_, err := svc.Create(ctx, tt.actor, draft)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, repo.calls["Create"])
		})
	}
}

func TestReservationService_CancelledReservationsDoNotCountTowardsLimit(t *testing.T) {
	repo := newFakeReservationRepo(
		seedReservation("2024-06-20", "08:00-10:00", model.ReservationStatusCancelled, residentUser.ID),
		seedReservation("2024-06-21", "08:00-10:00", model.ReservationStatusCancelled, residentUser.ID),
		seedReservation("2024-06-01", "08:00-10:00", model.ReservationStatusConfirmed, residentUser.ID),
	)
	svc, _ := newTestReservationService(repo, model.DefaultSettings())

	_, err := svc.Create(context.Background(), residentUser, validDraft("2024-06-12"))
	assert.NoError(t, err)
}

func TestReservationService_CreateWithoutApproval(t *testing.T) {
	settings := model.DefaultSettings()
	settings.RequireApproval = false
	svc, _ := newTestReservationService(newFakeReservationRepo(), settings)

	res, err := svc.Create(context.Background(), residentUser, validDraft("2024-06-12"))
	require.NoError(t, err)
	assert.Equal(t, model.ReservationStatusConfirmed, res.Status)

	view, err := svc.DayView(context.Background(), model.MustParseDate("2024-06-12"))
	require.NoError(t, err)
	assert.Equal(t, availability.DayBooked, view.Occupancy.Status)
}

func TestReservationService_CreateRechecksAgainstStoredReservations(t *testing.T) {
	ctx := context.Background()
	repo := newFakeReservationRepo(
		seedReservation("2024-06-12", "Full day", model.ReservationStatusPending, 9),
	)
	monthCache := newFakeMonthCache()
	svc := NewReservationService(repo, &fakeSettings{settings: model.DefaultSettings()}, monthCache, SlotCatalog{
		Labels:       testSlots,
		Policy:       availability.SlotPolicy{Mode: availability.PolicyFullDayExclusive, FullDayLabel: "Full day"},
		FirstWeekday: time.Sunday,
		Location:     time.UTC,
	}, zap.NewNop())
	svc.now = fixedNow

	// устаревший снимок месяца: брони на весь день в нём нет
	monthCache.data["2024-06"] = nil

	_, err := svc.Create(ctx, residentUser, validDraft("2024-06-12"))
	assert.ErrorIs(t, err, availability.ErrSlotTaken)
	assert.Equal(t, 1, repo.calls["Create"])

	_, err = svc.Create(ctx, residentUser, validDraft("2024-06-13"))
	assert.NoError(t, err)
}

func TestReservationService_Transitions(t *testing.T) {
	ctx := context.Background()
	pending := seedReservation("2024-06-12", "08:00-10:00", model.ReservationStatusPending, residentUser.ID)
	repo := newFakeReservationRepo(pending)
	svc, monthCache := newTestReservationService(repo, model.DefaultSettings())

	_, err := svc.Approve(ctx, residentUser, pending.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Cancel(ctx, adminUser, pending.ID, "cannot cancel pending")
	assert.ErrorIs(t, err, availability.ErrInvalidTransition)

	approved, err := svc.Approve(ctx, adminUser, pending.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ReservationStatusConfirmed, approved.Status)
	assert.Contains(t, monthCache.invalidated, "2024-06")

	_, err = svc.Reject(ctx, adminUser, pending.ID, "no longer pending")
	assert.ErrorIs(t, err, availability.ErrInvalidTransition)

	cancelled, err := svc.Cancel(ctx, adminUser, pending.ID, "  obras no salão  ")
	require.NoError(t, err)
	assert.Equal(t, model.ReservationStatusCancelled, cancelled.Status)
	require.NotNil(t, cancelled.CancellationReason)
	assert.Equal(t, "obras no salão", *cancelled.CancellationReason)

	_, err = svc.Approve(ctx, adminUser, pending.ID)
	assert.ErrorIs(t, err, availability.ErrInvalidTransition)

	_, err = svc.Approve(ctx, adminUser, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReservationService_RejectWithoutReason(t *testing.T) {
	pending := seedReservation("2024-06-12", "08:00-10:00", model.ReservationStatusPending, residentUser.ID)
	svc, _ := newTestReservationService(newFakeReservationRepo(pending), model.DefaultSettings())

	rejected, err := svc.Reject(context.Background(), adminUser, pending.ID, "   ")
	require.NoError(t, err)
	assert.Equal(t, model.ReservationStatusCancelled, rejected.Status)
	assert.Nil(t, rejected.CancellationReason)
}

func TestReservationService_StaleUpdate(t *testing.T) {
	pending := seedReservation("2024-06-12", "08:00-10:00", model.ReservationStatusPending, residentUser.ID)
	repo := newFakeReservationRepo(pending)
	svc, _ := newTestReservationService(repo, model.DefaultSettings())

	// запись меняется между чтением и условным обновлением
	stale := &staleOnUpdateRepo{fakeReservationRepo: repo}
	svc.repo = stale

	_, err := svc.Approve(context.Background(), adminUser, pending.ID)
	assert.ErrorIs(t, err, ErrStaleReservation)
}

type staleOnUpdateRepo struct {
	*fakeReservationRepo
}

func (s *staleOnUpdateRepo) UpdateStatus(ctx context.Context, id uuid.UUID, expected time.Time, status model.ReservationStatus, reason *string) (*model.Reservation, error) {
	s.touch(id)
	return s.fakeReservationRepo.UpdateStatus(ctx, id, expected, status, reason)
}

func TestReservationService_MonthView(t *testing.T) {
	repo := newFakeReservationRepo(
		seedReservation("2024-05-27", "08:00-10:00", model.ReservationStatusConfirmed, 9),
		seedReservation("2024-06-10", "08:00-10:00", model.ReservationStatusPending, 9),
		seedReservation("2024-07-05", "08:00-10:00", model.ReservationStatusPending, 9),
	)
	svc, monthCache := newTestReservationService(repo, model.DefaultSettings())

	view, err := svc.MonthView(context.Background(), model.MustParseDate("2024-06-20"))
	require.NoError(t, err)

	assert.Equal(t, model.MustParseDate("2024-06-01"), view.Month)
	assert.Len(t, view.Grid, 42)
	assert.Len(t, view.Weeks, 6)
	assert.Equal(t, time.Sunday, view.Weekdays[0])

	byDate := make(map[string]availability.CalendarDay)
	for _, d := range view.Grid {
		byDate[d.Date.String()] = d
	}
	assert.Equal(t, availability.DayBooked, byDate["2024-05-27"].Occupancy.Status)
	assert.Equal(t, availability.DayPending, byDate["2024-06-10"].Occupancy.Status)
	assert.True(t, byDate["2024-06-10"].IsToday)
	assert.Equal(t, availability.DayPending, byDate["2024-07-05"].Occupancy.Status)

	assert.Len(t, monthCache.data, 3, "prev, current and next month snapshots cached")

	// второй вызов целиком из кэша
	calls := repo.calls["ListBetween"]
	_, err = svc.MonthView(context.Background(), model.MustParseDate("2024-06-20"))
	require.NoError(t, err)
	assert.Equal(t, calls, repo.calls["ListBetween"])
}

func TestReservationService_Lists(t *testing.T) {
	ctx := context.Background()
	mine := seedReservation("2024-06-12", "08:00-10:00", model.ReservationStatusPending, residentUser.ID)
	minePast := seedReservation("2024-06-01", "08:00-10:00", model.ReservationStatusConfirmed, residentUser.ID)
	other := seedReservation("2024-06-14", "10:00-12:00", model.ReservationStatusConfirmed, 9)
	other.ResidentName = "João"
	repo := newFakeReservationRepo(mine, minePast, other)
	svc, _ := newTestReservationService(repo, model.DefaultSettings())

	upcoming, err := svc.ListForUser(ctx, residentUser, availability.RangeUpcoming)
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, mine.ID, upcoming[0].ID)

	all, err := svc.ListForUser(ctx, residentUser, availability.RangeAll)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, mine.ID, all[0].ID, "newest date first")

	_, err = svc.ListAll(ctx, residentUser, ListOptions{})
	assert.ErrorIs(t, err, ErrForbidden)

	found, err := svc.ListAll(ctx, adminUser, ListOptions{Query: availability.Query{Search: "joão"}})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, other.ID, found[0].ID)

	pending, err := svc.Pending(ctx, adminUser)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, mine.ID, pending[0].ID)

	stats, err := svc.Stats(ctx, adminUser)
	require.NoError(t, err)
	assert.Equal(t, availability.Summary{Total: 3, Pending: 1, Confirmed: 2, Upcoming: 1}, stats)

	next, err := svc.UpcomingConfirmed(ctx, adminUser, 5)
	require.NoError(t, err)
	require.Len(t, next, 1)
	assert.Equal(t, other.ID, next[0].ID)
}

func TestReservationService_Get(t *testing.T) {
	ctx := context.Background()
	other := seedReservation("2024-06-14", "10:00-12:00", model.ReservationStatusConfirmed, 9)
	svc, _ := newTestReservationService(newFakeReservationRepo(other), model.DefaultSettings())

	_, err := svc.Get(ctx, residentUser, other.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	got, err := svc.Get(ctx, adminUser, other.ID)
	require.NoError(t, err)
	assert.Equal(t, other.ID, got.ID)

	_, err = svc.Get(ctx, adminUser, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}
