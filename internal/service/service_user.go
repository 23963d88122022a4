package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/go-bank-cards/internal/config"
	"github.com/MKhiriev/go-bank-cards/internal/logger"
	"github.com/MKhiriev/go-bank-cards/internal/store"
	"github.com/MKhiriev/go-bank-cards/models"
)

type userService struct {
	userRepository  store.UserRepository
	authService     AuthService
	adminSecretHash []byte
	logger          *logger.Logger
}

func NewUserService(userRepository store.UserRepository, authService AuthService, cfg config.App, logger *logger.Logger) UserService {
	return &userService{
		userRepository:  userRepository,
		authService:     authService,
		adminSecretHash: []byte(cfg.AdminSecretHash),
		logger:          logger,
	}
}

func (s *userService) Me(ctx context.Context, userID uuid.UUID) (models.UserInfo, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return models.UserInfo{}, err
	}
	return user.Info(), nil
}

func (s *userService) RequestAdmin(ctx context.Context, userID uuid.UUID, secret string) (models.Token, error) {
	log := logger.FromContext(ctx)

	user, err := s.findUser(ctx, userID)
	if err != nil {
		return models.Token{}, err
	}

	if err = bcrypt.CompareHashAndPassword(s.adminSecretHash, []byte(secret)); err != nil {
		log.Warn().Str("user_id", userID.String()).Msg("wrong admin secret")
		return models.Token{}, ErrWrongPassword
	}

	if user.Role != models.RoleAdmin {
		if err = s.userRepository.UpdateRole(ctx, userID, models.RoleAdmin); err != nil {
			log.Err(err).Str("user_id", userID.String()).Msg("role update failed")
			return models.Token{}, mapUserError(err)
		}
		user.Role = models.RoleAdmin
		log.Info().Str("user_id", userID.String()).Msg("user was granted the ADMIN role")
	}

	return s.authService.CreateToken(ctx, user)
}

func (s *userService) List(ctx context.Context, page models.Page) ([]models.UserInfo, error) {
	if page.Size == 0 {
		page.Size = models.DefaultUserPageSize
	}
	if err := page.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFilter, err)
	}

	users, err := s.userRepository.ListUsers(ctx, page)
	if err != nil {
		logger.FromContext(ctx).Err(err).Msg("user listing failed")
		return nil, fmt.Errorf("user listing failed: %w", err)
	}

	infos := make([]models.UserInfo, 0, len(users))
	for _, user := range users {
		infos = append(infos, user.Info())
	}
	return infos, nil
}

func (s *userService) findUser(ctx context.Context, userID uuid.UUID) (models.User, error) {
	user, err := s.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("user_id", userID.String()).Msg("user search by id failed")
		return models.User{}, mapUserError(err)
	}
	return user, nil
}

func mapUserError(err error) error {
	if errors.Is(err, store.ErrNoUserWasFound) {
		return ErrUserNotFound
	}
	return fmt.Errorf("unexpected user storage error: %w", err)
}
