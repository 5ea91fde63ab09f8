package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Freeeeeet/condo_bot/internal/model"
	"go.uber.org/zap"
)

const maxApartmentLen = 20

type UserService struct {
	userRepo UserRepository
	adminIDs map[int64]struct{}
	logger   *zap.Logger
}

// NewUserService adminTelegramIDs получают роль администратора при регистрации
func NewUserService(userRepo UserRepository, adminTelegramIDs []int64, logger *zap.Logger) *UserService {
	admins := make(map[int64]struct{}, len(adminTelegramIDs))
	for _, id := range adminTelegramIDs {
		admins[id] = struct{}{}
	}
	return &UserService{
		userRepo: userRepo,
		adminIDs: admins,
		logger:   logger,
	}
}

// RegisterUser регистрирует или обновляет пользователя
func (s *UserService) RegisterUser(ctx context.Context, telegramID int64, username, displayName string) (*model.User, error) {
	existingUser, err := s.userRepo.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("check existing user: %w", err)
	}

	_, bootstrapAdmin := s.adminIDs[telegramID]

	user := &model.User{
		TelegramID:  telegramID,
		Username:    username,
		DisplayName: strings.TrimSpace(displayName),
		Role:        model.UserRoleResident,
	}
	if bootstrapAdmin {
		user.Role = model.UserRoleAdmin
	}

	if err := s.userRepo.Upsert(ctx, user); err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}

	// Upsert не трогает роль существующего пользователя
	if bootstrapAdmin && user.Role != model.UserRoleAdmin {
		if err := s.userRepo.SetRole(ctx, user.ID, model.UserRoleAdmin); err != nil {
			return nil, fmt.Errorf("promote bootstrap admin: %w", err)
		}
		user.Role = model.UserRoleAdmin
	}

	if existingUser == nil {
		s.logger.Info("New user registered",
			zap.Int64("user_id", user.ID),
			zap.Int64("telegram_id", telegramID),
			zap.String("username", username),
			zap.String("role", string(user.Role)),
		)
	}

	return user, nil
}

// GetByTelegramID получает пользователя по Telegram ID
func (s *UserService) GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	return s.userRepo.GetByTelegramID(ctx, telegramID)
}

// GetByID получает пользователя по ID
func (s *UserService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// SetApartment сохраняет номер квартиры текущего пользователя
func (s *UserService) SetApartment(ctx context.Context, actor *model.User, apartment string) error {
	if actor == nil {
		return ErrForbidden
	}

	apartment = strings.TrimSpace(apartment)
	if apartment == "" {
		return ErrApartmentRequired
	}
	if len([]rune(apartment)) > maxApartmentLen {
		return fmt.Errorf("%w: apartment longer than %d", ErrValidation, maxApartmentLen)
	}

	if err := s.userRepo.SetApartment(ctx, actor.ID, apartment); err != nil {
		return fmt.Errorf("set apartment: %w", err)
	}
	actor.ApartmentNumber = apartment

	s.logger.Info("Apartment updated", zap.Int64("user_id", actor.ID), zap.String("apartment", apartment))
	return nil
}

// Residents все пользователи по номеру квартиры
func (s *UserService) Residents(ctx context.Context, actor *model.User) ([]*model.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list residents: %w", err)
	}
	return users, nil
}

// ChangeRole назначает роль. Администратор не может снять роль с себя.
func (s *UserService) ChangeRole(ctx context.Context, actor *model.User, userID int64, role model.UserRole) (*model.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if role != model.UserRoleAdmin && role != model.UserRoleResident {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}
	if userID == actor.ID && role != model.UserRoleAdmin {
		return nil, ErrSelfDemote
	}

	target, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if target == nil {
		return nil, ErrNotFound
	}
	if target.Role == role {
		return target, nil
	}

	if err := s.userRepo.SetRole(ctx, userID, role); err != nil {
		return nil, fmt.Errorf("set role: %w", err)
	}
	target.Role = role

	s.logger.Info("User role changed",
		zap.Int64("actor_id", actor.ID),
		zap.Int64("user_id", userID),
		zap.String("role", string(role)),
	)
	return target, nil
}

// CountResidents количество зарегистрированных пользователей
func (s *UserService) CountResidents(ctx context.Context) (int, error) {
	return s.userRepo.CountAll(ctx)
}
