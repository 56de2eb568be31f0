package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/vncsmyrnk/linkscore/internal/core/domain"
	"github.com/vncsmyrnk/linkscore/internal/core/ports"
)

type UserService struct {
	repo ports.UserDirectory
	log  logrus.FieldLogger
}

func NewUserService(repo ports.UserDirectory, log logrus.FieldLogger) ports.UserService {
	return &UserService{
		repo: repo,
		log:  log,
	}
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if id == uuid.Nil {
		return nil, domain.ErrInvalidUserID
	}
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *UserService) SetBanned(ctx context.Context, id uuid.UUID, banned bool) (*domain.User, error) {
	if id == uuid.Nil {
		return nil, domain.ErrInvalidUserID
	}
	if err := s.repo.SetBanned(ctx, id, banned); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	s.log.WithFields(logrus.Fields{"user_id": id, "banned": banned}).Info("user ban status changed")
	return s.GetByID(ctx, id)
}
