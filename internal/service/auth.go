package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/eventhive/eventhive-api/internal/domain"
	"github.com/eventhive/eventhive-api/internal/repository"
)

var (
	ErrUserEmailExists = repository.ErrUserEmailExists
	ErrWrongPassword   = errors.New("wrong password")
)

type AuthUserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	Count(ctx context.Context) (int64, error)
	UpdatePassword(ctx context.Context, id uint, passwordHash string) error
}

type Mailer interface {
	SendPasswordReset(toEmail, toName, resetLink string) error
}

type AuthService struct {
	repo   AuthUserRepository
	mailer Mailer
}

func NewAuthService(repo AuthUserRepository, mailer Mailer) *AuthService {
	return &AuthService{
		repo:   repo,
		mailer: mailer,
	}
}

// Register creates a new account. The very first account in the system
// becomes the admin; afterwards the requested role (or "user") is kept.
func (s *AuthService) Register(ctx context.Context, user domain.User) (domain.User, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.Count -> %w", err)
	}
	if count == 0 {
		user.Role = domain.RoleAdmin
	} else if !user.Role.IsValid() {
		user.Role = domain.RoleUser
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("bcrypt.GenerateFromPassword -> %w", err)
	}
	user.Password = string(hash)

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrUserEmailExists) {
			return domain.User{}, ErrUserEmailExists
		}

		return domain.User{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, ErrUserNotFound
		}

		return domain.User{}, fmt.Errorf("s.repo.FindByEmail -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return domain.User{}, ErrWrongPassword
	}

	return user, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}

		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(currentPassword)); err != nil {
		return ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("bcrypt.GenerateFromPassword -> %w", err)
	}

	if err = s.repo.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return fmt.Errorf("s.repo.UpdatePassword -> %w", err)
	}

	return nil
}

// ForgotPassword mails a reset link to the account's address. The
// caller supplies the ready-made link builder so the token mechanics
// stay outside this service.
func (s *AuthService) ForgotPassword(ctx context.Context, email string, buildResetLink func(userID uint) (string, error)) error {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}

		return fmt.Errorf("s.repo.FindByEmail -> %w", err)
	}

	resetLink, err := buildResetLink(user.ID)
	if err != nil {
		return fmt.Errorf("buildResetLink -> %w", err)
	}

	if err = s.mailer.SendPasswordReset(user.Email, user.Name, resetLink); err != nil {
		return fmt.Errorf("s.mailer.SendPasswordReset -> %w", err)
	}

	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, userID uint, newPassword string) error {
	if _, err := s.repo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}

		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("bcrypt.GenerateFromPassword -> %w", err)
	}

	if err = s.repo.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return fmt.Errorf("s.repo.UpdatePassword -> %w", err)
	}

	return nil
}
