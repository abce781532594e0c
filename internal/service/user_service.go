package service

import (
	"context"
	"strings"

	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

type UserService struct {
	store  domain.Store
	logger *zerolog.Logger
}

var _ domain.UserService = (*UserService)(nil)

func NewUserService(store domain.Store, logger *zerolog.Logger) *UserService {
	return &UserService{store: store, logger: logger}
}

func (s *UserService) CreateUser(ctx context.Context, dto models.UserDto) (models.UserDto, error) {
	dto.Name = strings.TrimSpace(dto.Name)
	dto.Email = strings.TrimSpace(dto.Email)
	if dto.Name == "" {
		return models.UserDto{}, models.Validationf("user name must not be blank")
	}
	if dto.Email == "" {
		return models.UserDto{}, models.Validationf("user email must not be blank")
	}

	user := models.UserFromDto(dto)
	user.ID = 0
	err := s.store.InTx(ctx, func(tx domain.Store) error {
		taken, err := tx.EmailTaken(ctx, user.Email, 0)
		if err != nil {
			return err
		}
		if taken {
			return models.AlreadyExistsf("user with email %s already exists", user.Email)
		}
		return tx.CreateUser(ctx, &user)
	})
	if err != nil {
		return models.UserDto{}, err
	}

	s.logger.Info().Int64("user_id", user.ID).Msg("user created")
	return models.UserToDto(user), nil
}

// UpdateUser applies a partial update: blank fields keep their stored values.
func (s *UserService) UpdateUser(ctx context.Context, id int64, dto models.UserDto) (models.UserDto, error) {
	var user *models.User
	err := s.store.InTx(ctx, func(tx domain.Store) error {
		var err error
		user, err = tx.GetUser(ctx, id)
		if err != nil {
			return err
		}

		if name := strings.TrimSpace(dto.Name); name != "" {
			user.Name = name
		}
		if email := strings.TrimSpace(dto.Email); email != "" && email != user.Email {
			taken, err := tx.EmailTaken(ctx, email, id)
			if err != nil {
				return err
			}
			if taken {
				return models.AlreadyExistsf("user with email %s already exists", email)
			}
			user.Email = email
		}

		return tx.UpdateUser(ctx, user)
	})
	if err != nil {
		return models.UserDto{}, err
	}

	return models.UserToDto(*user), nil
}

func (s *UserService) GetUser(ctx context.Context, id int64) (models.UserDto, error) {
	user, err := s.store.GetUser(ctx, id)
	if err != nil {
		return models.UserDto{}, err
	}
	return models.UserToDto(*user), nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]models.UserDto, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	return models.UsersToDto(users), nil
}

func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	if err := s.store.DeleteUser(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("user_id", id).Msg("user deleted")
	return nil
}
