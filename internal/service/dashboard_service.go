package service

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/condo_bot/internal/availability"
	"github.com/Freeeeeet/condo_bot/internal/model"
)

// upcomingLimit длина списка ближайших бронирований на панели
const upcomingLimit = 5

// Dashboard виджеты главной страницы
type Dashboard struct {
	Today             model.Date
	TodayReservations []model.Reservation
	ActiveNotices     int
	Documents         int
	Residents         int

	// Только для администратора
	Summary  *availability.Summary
	Upcoming []model.Reservation
}

type DashboardService struct {
	reservations *ReservationService
	users        *UserService
	notices      *NoticeService
	documents    *DocumentService
}

func NewDashboardService(
	reservations *ReservationService,
	users *UserService,
	notices *NoticeService,
	documents *DocumentService,
) *DashboardService {
	return &DashboardService{
		reservations: reservations,
		users:        users,
		notices:      notices,
		documents:    documents,
	}
}

// Build собирает панель для пользователя
func (s *DashboardService) Build(ctx context.Context, actor *model.User) (*Dashboard, error) {
	if actor == nil {
		return nil, ErrForbidden
	}

	today := s.reservations.Today()
	d := &Dashboard{Today: today}

	var err error
	if d.TodayReservations, err = s.reservations.OnDate(ctx, today); err != nil {
		return nil, fmt.Errorf("today reservations: %w", err)
	}
	if d.ActiveNotices, err = s.notices.CountActive(ctx); err != nil {
		return nil, fmt.Errorf("count notices: %w", err)
	}
	if d.Documents, err = s.documents.CountAll(ctx); err != nil {
		return nil, fmt.Errorf("count documents: %w", err)
	}
	if d.Residents, err = s.users.CountResidents(ctx); err != nil {
		return nil, fmt.Errorf("count residents: %w", err)
	}

	if actor.IsAdmin() {
		summary, err := s.reservations.Stats(ctx, actor)
		if err != nil {
			return nil, fmt.Errorf("stats: %w", err)
		}
		d.Summary = &summary

		if d.Upcoming, err = s.reservations.UpcomingConfirmed(ctx, actor, upcomingLimit); err != nil {
			return nil, fmt.Errorf("upcoming reservations: %w", err)
		}
	}

	return d, nil
}
