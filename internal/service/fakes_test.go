package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Freeeeeet/condo_bot/internal/availability"
	"github.com/Freeeeeet/condo_bot/internal/model"
	"github.com/Freeeeeet/condo_bot/internal/repository"
	"github.com/google/uuid"
)

var testSlots = []string{"08:00-10:00", "10:00-12:00", "Full day"}

// fixedNow 2024-06-10 12:00 UTC, понедельник
func fixedNow() time.Time {
	return time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
}

var (
	adminUser    = &model.User{ID: 1, TelegramID: 1001, DisplayName: "Síndica", ApartmentNumber: "101", Role: model.UserRoleAdmin}
	residentUser = &model.User{ID: 2, TelegramID: 1002, DisplayName: "Maria", ApartmentNumber: "202", Role: model.UserRoleResident}
)

type fakeReservationRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]model.Reservation
	tick  time.Time
	calls map[string]int
}

func newFakeReservationRepo(seed ...model.Reservation) *fakeReservationRepo {
	repo := &fakeReservationRepo{
		items: make(map[uuid.UUID]model.Reservation),
		tick:  fixedNow(),
		calls: make(map[string]int),
	}
	for _, r := range seed {
		if r.UpdatedAt.IsZero() {
			r.UpdatedAt = repo.nextTick()
		}
		repo.items[r.ID] = r
	}
	return repo
}

func (f *fakeReservationRepo) nextTick() time.Time {
	f.tick = f.tick.Add(time.Millisecond)
	return f.tick
}

func (f *fakeReservationRepo) sorted(keep func(model.Reservation) bool) []model.Reservation {
	var out []model.Reservation
	for _, r := range f.items {
		if keep(r) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Date.Compare(out[j].Date); c != 0 {
			return c < 0
		}
		return out[i].TimeSlot < out[j].TimeSlot
	})
	return out
}

func (f *fakeReservationRepo) Create(_ context.Context, res *model.Reservation, check repository.SlotCheck) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["Create"]++

	if check != nil {
		var active []model.Reservation
		for _, r := range f.items {
			if r.IsActive() && r.Date == res.Date {
				active = append(active, r)
			}
		}
		if err := check(active); err != nil {
			return fmt.Errorf("create reservation: %w", err)
		}
	}

	for _, r := range f.items {
		if r.IsActive() && r.Date == res.Date && r.TimeSlot == res.TimeSlot {
			return fmt.Errorf("create reservation: %w", availability.ErrSlotTaken)
		}
	}
	res.CreatedAt = f.nextTick()
	res.UpdatedAt = res.CreatedAt
	f.items[res.ID] = *res
	return nil
}

func (f *fakeReservationRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	r, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (f *fakeReservationRepo) ListBetween(_ context.Context, from, to model.Date) ([]model.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["ListBetween"]++

	return f.sorted(func(r model.Reservation) bool { return !r.Date.Before(from) && !r.Date.After(to) }), nil
}

func (f *fakeReservationRepo) ListByUser(_ context.Context, userID int64) ([]model.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.sorted(func(r model.Reservation) bool { return r.UserID == userID }), nil
}

func (f *fakeReservationRepo) ListByStatus(_ context.Context, status model.ReservationStatus) ([]model.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.sorted(func(r model.Reservation) bool { return r.Status == status }), nil
}

func (f *fakeReservationRepo) ListAll(_ context.Context) ([]model.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.sorted(func(model.Reservation) bool { return true }), nil
}

func (f *fakeReservationRepo) CountActiveFromDate(_ context.Context, userID int64, from model.Date) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := 0
	for _, r := range f.items {
		if r.UserID == userID && r.IsActive() && !r.Date.Before(from) {
			n++
		}
	}
	return n, nil
}

func (f *fakeReservationRepo) UpdateStatus(_ context.Context, id uuid.UUID, expectedUpdatedAt time.Time, status model.ReservationStatus, reason *string) (*model.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	r, ok := f.items[id]
	if !ok {
		return nil, availability.ErrReservationNotFound
	}
	if !r.UpdatedAt.Equal(expectedUpdatedAt) {
		return nil, ErrStaleReservation
	}
	r.Status = status
	if reason != nil {
		r.CancellationReason = reason
	}
	r.UpdatedAt = f.nextTick()
	f.items[id] = r
	return &r, nil
}

// touch имитирует параллельное изменение записи
func (f *fakeReservationRepo) touch(id uuid.UUID) {
	f.mu.Lock()
	defer f.mu.Unlock()

	r := f.items[id]
	r.UpdatedAt = f.nextTick()
	f.items[id] = r
}

type fakeSettings struct {
	settings model.Settings
}

func (f *fakeSettings) Get(context.Context) (model.Settings, error) {
	return f.settings, nil
}

type fakeSettingsRepo struct {
	stored *model.Settings
	saves  int
}

func (f *fakeSettingsRepo) Get(context.Context) (*model.Settings, error) {
	if f.stored == nil {
		return nil, nil
	}
	s := *f.stored
	return &s, nil
}

func (f *fakeSettingsRepo) Save(_ context.Context, s *model.Settings) error {
	f.saves++
	s.UpdatedAt = fixedNow()
	stored := *s
	f.stored = &stored
	return nil
}

type fakeMonthCache struct {
	data        map[string][]model.Reservation
	invalidated []string
}

func newFakeMonthCache() *fakeMonthCache {
	return &fakeMonthCache{data: make(map[string][]model.Reservation)}
}

func (c *fakeMonthCache) key(month model.Date) string {
	return fmt.Sprintf("%04d-%02d", month.Year, int(month.Month))
}

func (c *fakeMonthCache) Get(_ context.Context, month model.Date) ([]model.Reservation, bool, error) {
	v, ok := c.data[c.key(month)]
	return v, ok, nil
}

func (c *fakeMonthCache) Set(_ context.Context, month model.Date, reservations []model.Reservation) error {
	c.data[c.key(month)] = reservations
	return nil
}

func (c *fakeMonthCache) Invalidate(_ context.Context, month model.Date) error {
	delete(c.data, c.key(month))
	c.invalidated = append(c.invalidated, c.key(month))
	return nil
}

type fakeUserRepo struct {
	nextID int64
	byID   map[int64]*model.User
}

func newFakeUserRepo(users ...*model.User) *fakeUserRepo {
	repo := &fakeUserRepo{nextID: 100, byID: make(map[int64]*model.User)}
	for _, u := range users {
		cp := *u
		repo.byID[u.ID] = &cp
	}
	return repo
}

func (f *fakeUserRepo) Upsert(_ context.Context, user *model.User) error {
	for _, u := range f.byID {
		if u.TelegramID == user.TelegramID {
			u.Username = user.Username
			u.DisplayName = user.DisplayName
			*user = *u
			return nil
		}
	}
	f.nextID++
	user.ID = f.nextID
	user.CreatedAt = fixedNow()
	cp := *user
	f.byID[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByTelegramID(_ context.Context, telegramID int64) (*model.User, error) {
	for _, u := range f.byID {
		if u.TelegramID == telegramID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*model.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) SetApartment(_ context.Context, id int64, apartment string) error {
	u, ok := f.byID[id]
	if !ok {
		return fmt.Errorf("user not found")
	}
	u.ApartmentNumber = apartment
	return nil
}

func (f *fakeUserRepo) SetRole(_ context.Context, id int64, role model.UserRole) error {
	u, ok := f.byID[id]
	if !ok {
		return fmt.Errorf("user not found")
	}
	u.Role = role
	return nil
}

func (f *fakeUserRepo) List(context.Context) ([]*model.User, error) {
	var out []*model.User
	for _, u := range f.byID {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ApartmentNumber < out[j].ApartmentNumber })
	return out, nil
}

func (f *fakeUserRepo) CountAll(context.Context) (int, error) {
	return len(f.byID), nil
}

type fakeNoticeRepo struct {
	items map[uuid.UUID]*model.Notice
}

func newFakeNoticeRepo() *fakeNoticeRepo {
	return &fakeNoticeRepo{items: make(map[uuid.UUID]*model.Notice)}
}

func (f *fakeNoticeRepo) Create(_ context.Context, n *model.Notice) error {
	n.PublishedAt = fixedNow()
	cp := *n
	f.items[n.ID] = &cp
	return nil
}

func (f *fakeNoticeRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Notice, error) {
	n, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	cp := *n
	return &cp, nil
}

func (f *fakeNoticeRepo) ListActive(_ context.Context, now time.Time) ([]*model.Notice, error) {
	var out []*model.Notice
	for _, n := range f.items {
		if n.IsActive && !n.IsExpired(now) {
			cp := *n
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeNoticeRepo) ListAll(context.Context) ([]*model.Notice, error) {
	var out []*model.Notice
	for _, n := range f.items {
		cp := *n
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeNoticeRepo) SetActive(_ context.Context, id uuid.UUID, active bool) error {
	n, ok := f.items[id]
	if !ok {
		return fmt.Errorf("notice not found")
	}
	n.IsActive = active
	return nil
}

func (f *fakeNoticeRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.items, id)
	return nil
}

func (f *fakeNoticeRepo) DeactivateExpired(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for _, item := range f.items {
		if item.IsActive && item.IsExpired(now) {
			item.IsActive = false
			n++
		}
	}
	return n, nil
}

func (f *fakeNoticeRepo) CountActive(ctx context.Context, now time.Time) (int, error) {
	active, _ := f.ListActive(ctx, now)
	return len(active), nil
}

type fakeDocumentRepo struct {
	items map[uuid.UUID]*model.Document
}

func newFakeDocumentRepo() *fakeDocumentRepo {
	return &fakeDocumentRepo{items: make(map[uuid.UUID]*model.Document)}
}

func (f *fakeDocumentRepo) Create(_ context.Context, d *model.Document) error {
	d.UploadedAt = fixedNow()
	cp := *d
	f.items[d.ID] = &cp
	return nil
}

func (f *fakeDocumentRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Document, error) {
	d, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (f *fakeDocumentRepo) List(_ context.Context, category string) ([]*model.Document, error) {
	var out []*model.Document
	for _, d := range f.items {
		if category == "" || d.Category == category {
			cp := *d
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeDocumentRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.items, id)
	return nil
}

func (f *fakeDocumentRepo) CountAll(context.Context) (int, error) {
	return len(f.items), nil
}
