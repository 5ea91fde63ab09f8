package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/condo_bot/internal/availability"
	"github.com/Freeeeeet/condo_bot/internal/cache"
	"github.com/Freeeeeet/condo_bot/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SettingsReader источник правил бронирования
type SettingsReader interface {
	Get(ctx context.Context) (model.Settings, error)
}

// SlotCatalog каталог слотов и параметры календаря
type SlotCatalog struct {
	Labels       []string
	Policy       availability.SlotPolicy
	FirstWeekday time.Weekday
	Location     *time.Location
}

// MonthView сетка месяца с занятостью дней
type MonthView struct {
	Month    model.Date
	Today    model.Date
	Grid     []availability.CalendarDay
	Weeks    [][]availability.CalendarDay
	Weekdays []time.Weekday
}

// DayView подробности выбранного дня
type DayView struct {
	Date         model.Date
	Today        model.Date
	Occupancy    availability.Occupancy
	Slots        []availability.SlotState
	Available    []string
	Reservations []model.Reservation
}

// Selectable можно ли бронировать этот день
func (v *DayView) Selectable() bool {
	return !v.Date.Before(v.Today) && len(v.Available) > 0
}

// ListOptions фильтры административного списка
type ListOptions struct {
	Query availability.Query
	Range availability.Range
	Sort  availability.SortKey
	Order availability.Order
}

type ReservationService struct {
	repo     ReservationRepository
	settings SettingsReader
	cache    cache.MonthCache
	catalog  SlotCatalog
	now      func() time.Time
	logger   *zap.Logger
}

func NewReservationService(
	repo ReservationRepository,
	settings SettingsReader,
	monthCache cache.MonthCache,
	catalog SlotCatalog,
	logger *zap.Logger,
) *ReservationService {
	if monthCache == nil {
		monthCache = cache.Noop{}
	}
	if catalog.Location == nil {
		catalog.Location = time.Local
	}
	return &ReservationService{
		repo:     repo,
		settings: settings,
		cache:    monthCache,
		catalog:  catalog,
		now:      time.Now,
		logger:   logger,
	}
}

// TimeSlots каталог слотов в порядке отображения
func (s *ReservationService) TimeSlots() []string {
	return s.catalog.Labels
}

// Today текущая дата в часовом поясе кондоминиума
func (s *ReservationService) Today() model.Date {
	return model.Today(s.now(), s.catalog.Location)
}

// FirstWeekday первый день недели в календаре
func (s *ReservationService) FirstWeekday() time.Weekday {
	return s.catalog.FirstWeekday
}

// MonthView строит календарь месяца, в который попадает ref
func (s *ReservationService) MonthView(ctx context.Context, ref model.Date) (*MonthView, error) {
	today := s.Today()
	grid := availability.BuildMonthGrid(ref, today, s.catalog.FirstWeekday)

	// Сетка может захватывать соседние месяцы
	var reservations []model.Reservation
	for month := grid[0].Date.FirstOfMonth(); !month.After(grid[len(grid)-1].Date); month = month.AddMonths(1) {
		snapshot, err := s.monthSnapshot(ctx, month)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, snapshot...)
	}

	annotated := availability.AnnotateGrid(grid, reservations)
	return &MonthView{
		Month:    ref.FirstOfMonth(),
		Today:    today,
		Grid:     annotated,
		Weeks:    availability.Weeks(annotated),
		Weekdays: availability.WeekdayOrder(s.catalog.FirstWeekday),
	}, nil
}

// DayView состояние слотов на дату
func (s *ReservationService) DayView(ctx context.Context, date model.Date) (*DayView, error) {
	if date.IsZero() {
		return nil, fmt.Errorf("day view: %w", availability.ErrInvalidDate)
	}

	snapshot, err := s.monthSnapshot(ctx, date)
	if err != nil {
		return nil, err
	}

	return &DayView{
		Date:         date,
		Today:        s.Today(),
		Occupancy:    availability.DayOccupancy(date, snapshot),
		Slots:        availability.SlotStates(date, snapshot, s.catalog.Labels, s.catalog.Policy),
		Available:    availability.AvailableSlots(date, snapshot, s.catalog.Labels, s.catalog.Policy),
		Reservations: availability.OnDate(snapshot, date),
	}, nil
}

// Create регистрирует заявку жителя: pending, либо сразу confirmed,
// если в настройках отключено подтверждение администратором
func (s *ReservationService) Create(ctx context.Context, actor *model.User, draft model.ReservationDraft) (*model.Reservation, error) {
	if actor == nil {
		return nil, ErrForbidden
	}

	draft.TimeSlot = strings.TrimSpace(draft.TimeSlot)
	draft.ResidentName = strings.TrimSpace(draft.ResidentName)
	draft.Apartment = strings.TrimSpace(draft.Apartment)
	draft.Event = strings.TrimSpace(draft.Event)
	draft.Contact = strings.TrimSpace(draft.Contact)
	if draft.Notes != nil {
		if trimmed := strings.TrimSpace(*draft.Notes); trimmed != "" {
			draft.Notes = &trimmed
		} else {
			draft.Notes = nil
		}
	}

	if draft.Apartment == "" {
		draft.Apartment = actor.ApartmentNumber
	}
	if draft.Apartment == "" {
		return nil, ErrApartmentRequired
	}
	if draft.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrValidation)
	}
	if err := validateStruct(draft); err != nil {
		return nil, err
	}

	rules, err := s.checkRules(ctx, actor, draft.Date)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.monthSnapshot(ctx, draft.Date)
	if err != nil {
		return nil, err
	}
	if err := availability.CheckSlot(draft.Date, draft.TimeSlot, snapshot, s.catalog.Labels, s.catalog.Policy); err != nil {
		return nil, err
	}

	status := model.ReservationStatusPending
	if !rules.RequireApproval {
		status = model.ReservationStatusConfirmed
	}

	now := s.now()
	res := &model.Reservation{
		ID:              uuid.New(),
		UserID:          actor.ID,
		ApartmentNumber: draft.Apartment,
		ResidentName:    draft.ResidentName,
		Date:            draft.Date,
		TimeSlot:        draft.TimeSlot,
		Event:           draft.Event,
		Contact:         draft.Contact,
		Notes:           draft.Notes,
		Status:          status,
		RequestedAt:     now,
	}

	// повторная проверка по свежим данным: снимок месяца мог устареть
	check := func(active []model.Reservation) error {
		return availability.CheckSlot(res.Date, res.TimeSlot, active, s.catalog.Labels, s.catalog.Policy)
	}
	if err := s.repo.Create(ctx, res, check); err != nil {
		return nil, fmt.Errorf("create reservation: %w", err)
	}
	s.invalidate(ctx, res.Date)

	s.logger.Info("Reservation created",
		zap.String("reservation_id", res.ID.String()),
		zap.Int64("actor_id", actor.ID),
		zap.String("date", res.Date.String()),
		zap.String("time_slot", res.TimeSlot),
		zap.String("status", string(res.Status)),
	)

	return res, nil
}

func (s *ReservationService) checkRules(ctx context.Context, actor *model.User, date model.Date) (model.Settings, error) {
	today := s.Today()
	if date.Before(today) {
		return model.Settings{}, ErrPastDate
	}

	rules, err := s.settings.Get(ctx)
	if err != nil {
		return model.Settings{}, fmt.Errorf("load reservation rules: %w", err)
	}

	if rules.MaxDaysAdvance > 0 && date.After(today.AddDays(rules.MaxDaysAdvance)) {
		return rules, fmt.Errorf("%w: max %d days", ErrTooFarAhead, rules.MaxDaysAdvance)
	}
	if !rules.AllowWeekendReservations && date.IsWeekend() {
		return rules, ErrWeekendNotAllowed
	}

	// Лимит не распространяется на администраторов
	if rules.MaxReservationsPerUser > 0 && !actor.IsAdmin() {
		active, err := s.repo.CountActiveFromDate(ctx, actor.ID, today)
		if err != nil {
			return rules, fmt.Errorf("count active reservations: %w", err)
		}
		if active >= rules.MaxReservationsPerUser {
			return rules, fmt.Errorf("%w: %d", ErrReservationLimit, rules.MaxReservationsPerUser)
		}
	}

	return rules, nil
}

// Get бронирование по id. Житель видит только свои.
func (s *ReservationService) Get(ctx context.Context, actor *model.User, id uuid.UUID) (*model.Reservation, error) {
	if actor == nil {
		return nil, ErrForbidden
	}

	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get reservation: %w", err)
	}
	if res == nil {
		return nil, ErrNotFound
	}
	if !actor.IsAdmin() && res.UserID != actor.ID {
		return nil, ErrForbidden
	}
	return res, nil
}

// Approve pending -> confirmed
func (s *ReservationService) Approve(ctx context.Context, actor *model.User, id uuid.UUID) (*model.Reservation, error) {
	return s.transition(ctx, actor, id, model.ReservationStatusPending, model.ReservationStatusConfirmed, nil)
}

// Reject pending -> cancelled с причиной
func (s *ReservationService) Reject(ctx context.Context, actor *model.User, id uuid.UUID, reason string) (*model.Reservation, error) {
	return s.transition(ctx, actor, id, model.ReservationStatusPending, model.ReservationStatusCancelled, reasonPtr(reason))
}

// Cancel confirmed -> cancelled с причиной
func (s *ReservationService) Cancel(ctx context.Context, actor *model.User, id uuid.UUID, reason string) (*model.Reservation, error) {
	return s.transition(ctx, actor, id, model.ReservationStatusConfirmed, model.ReservationStatusCancelled, reasonPtr(reason))
}

func (s *ReservationService) transition(
	ctx context.Context,
	actor *model.User,
	id uuid.UUID,
	from, to model.ReservationStatus,
	reason *string,
) (*model.Reservation, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get reservation: %w", err)
	}
	if current == nil {
		return nil, ErrNotFound
	}
	if current.Status != from || !model.CanTransition(current.Status, to) {
		return nil, fmt.Errorf("%w: %s -> %s", availability.ErrInvalidTransition, current.Status, to)
	}

	updated, err := s.repo.UpdateStatus(ctx, id, current.UpdatedAt, to, reason)
	if err != nil {
		if errors.Is(err, availability.ErrReservationNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update reservation status: %w", err)
	}
	s.invalidate(ctx, updated.Date)

	fields := []zap.Field{
		zap.String("reservation_id", id.String()),
		zap.Int64("actor_id", actor.ID),
		zap.String("from", string(from)),
		zap.String("status", string(to)),
	}
	if reason != nil {
		fields = append(fields, zap.String("reason", *reason))
	}
	s.logger.Info("Reservation status changed", fields...)

	return updated, nil
}

// ListForUser бронирования жителя в диапазоне, новые даты первыми
func (s *ReservationService) ListForUser(ctx context.Context, actor *model.User, rng availability.Range) ([]model.Reservation, error) {
	if actor == nil {
		return nil, ErrForbidden
	}

	all, err := s.repo.ListByUser(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("list user reservations: %w", err)
	}

	filtered := availability.FilterByRange(all, s.Today(), rng)
	return availability.Sort(filtered, availability.SortByDate, availability.Desc), nil
}

// ListAll административный список с поиском, диапазоном и сортировкой
func (s *ReservationService) ListAll(ctx context.Context, actor *model.User, opts ListOptions) ([]model.Reservation, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	all, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}

	if opts.Sort == "" {
		opts.Sort = availability.SortByDate
	}
	if opts.Order == "" {
		opts.Order = availability.Desc
	}

	out := availability.FilterByRange(all, s.Today(), opts.Range)
	out = availability.Filter(out, opts.Query)
	return availability.Sort(out, opts.Sort, opts.Order), nil
}

// Pending заявки, ожидающие решения, ближайшие первыми
func (s *ReservationService) Pending(ctx context.Context, actor *model.User) ([]model.Reservation, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	pending, err := s.repo.ListByStatus(ctx, model.ReservationStatusPending)
	if err != nil {
		return nil, fmt.Errorf("list pending reservations: %w", err)
	}
	return availability.Sort(pending, availability.SortByDate, availability.Asc), nil
}

// Stats сводка по статусам для администратора
func (s *ReservationService) Stats(ctx context.Context, actor *model.User) (availability.Summary, error) {
	if err := requireAdmin(actor); err != nil {
		return availability.Summary{}, err
	}

	all, err := s.repo.ListAll(ctx)
	if err != nil {
		return availability.Summary{}, fmt.Errorf("list reservations: %w", err)
	}
	return availability.Summarize(all, s.Today()), nil
}

// UpcomingConfirmed ближайшие подтверждённые бронирования
func (s *ReservationService) UpcomingConfirmed(ctx context.Context, actor *model.User, limit int) ([]model.Reservation, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	confirmed, err := s.repo.ListByStatus(ctx, model.ReservationStatusConfirmed)
	if err != nil {
		return nil, fmt.Errorf("list confirmed reservations: %w", err)
	}
	return availability.UpcomingConfirmed(confirmed, s.Today(), limit), nil
}

// OnDate активные бронирования на дату (для панели)
func (s *ReservationService) OnDate(ctx context.Context, date model.Date) ([]model.Reservation, error) {
	snapshot, err := s.monthSnapshot(ctx, date)
	if err != nil {
		return nil, err
	}

	var active []model.Reservation
	for _, r := range availability.OnDate(snapshot, date) {
		if r.IsActive() {
			active = append(active, r)
		}
	}
	return active, nil
}

// monthSnapshot бронирования месяца: кэш, затем БД
func (s *ReservationService) monthSnapshot(ctx context.Context, month model.Date) ([]model.Reservation, error) {
	if cached, ok, err := s.cache.Get(ctx, month); err != nil {
		s.logger.Warn("Month cache read failed", zap.String("key", cache.MonthKey(month)), zap.Error(err))
	} else if ok {
		return cached, nil
	}

	reservations, err := s.repo.ListBetween(ctx, month.FirstOfMonth(), month.LastOfMonth())
	if err != nil {
		return nil, fmt.Errorf("load month reservations: %w", err)
	}

	if err := s.cache.Set(ctx, month, reservations); err != nil {
		s.logger.Warn("Month cache write failed", zap.String("key", cache.MonthKey(month)), zap.Error(err))
	}
	return reservations, nil
}

func (s *ReservationService) invalidate(ctx context.Context, date model.Date) {
	if err := s.cache.Invalidate(ctx, date); err != nil {
		s.logger.Warn("Month cache invalidation failed", zap.String("key", cache.MonthKey(date)), zap.Error(err))
	}
}

func reasonPtr(reason string) *string {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil
	}
	return &reason
}
