package user

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/retailhub/orders-backend/internal/modules/notify"
	"github.com/retailhub/orders-backend/pkg/logger"
)

const minPasswordLen = 8

type service struct {
	repo     Repository
	notifier notify.Notifier
}

// NewService creates a new user service.
func NewService(repo Repository, notifier notify.Notifier) Service {
	return &service{repo: repo, notifier: notifier}
}

func (s *service) Register(ctx context.Context, email, password, accountType string) (*User, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("email and password are required")
	}
	if len(password) < minPasswordLen {
		return nil, fmt.Errorf("an error occurred during password validation")
	}
	if accountType == "" {
		accountType = TypeBuyer
	}
	if accountType != TypeBuyer && accountType != TypeSeller {
		return nil, fmt.Errorf("unknown account type %q", accountType)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &User{
		Email:        email,
		PasswordHash: string(hashed),
		Type:         accountType,
	}
	tokenKey := uuid.NewString()

	if err := s.repo.CreateUser(ctx, u, tokenKey); err != nil {
		return nil, err
	}

	// Delivery failure must not roll back the registration; the user can
	// request a new token.
	if err := s.notifier.ConfirmationEmail(u.Email, tokenKey); err != nil {
		logger.Get().Warn("failed to send confirmation email",
			zap.String("email", u.Email), zap.Error(err))
	}
	return u, nil
}

func (s *service) Confirm(ctx context.Context, email, token string) error {
	if email == "" || token == "" {
		return fmt.Errorf("email and token are required")
	}
	return s.repo.ConsumeConfirmToken(ctx, email, token)
}

func (s *service) GetUser(ctx context.Context, id int64) (*User, error) {
	return s.repo.GetUserByID(ctx, id)
}

func (s *service) UpdateDetails(ctx context.Context, id int64, req UpdateDetailsRequest) (*User, error) {
	u, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != "" {
		u.Email = req.Email
	}
	if req.Type != "" {
		if req.Type != TypeBuyer && req.Type != TypeSeller {
			return nil, fmt.Errorf("unknown account type %q", req.Type)
		}
		u.Type = req.Type
	}
	if req.Password != "" {
		if len(req.Password) < minPasswordLen {
			return nil, fmt.Errorf("an error occurred during password validation")
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = string(hashed)
	}

	if err := s.repo.UpdateUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
