package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/eventhive/eventhive-api/internal/domain"
	"github.com/eventhive/eventhive-api/internal/repository"
)

type fakeUserRepo struct {
	users  map[uint]*domain.User
	nextID uint
}

func newFakeUserRepo(users ...domain.User) *fakeUserRepo {
	repo := &fakeUserRepo{
		users:  make(map[uint]*domain.User),
		nextID: 1,
	}
	for i := range users {
		user := users[i]
		repo.users[user.ID] = &user
		if user.ID >= repo.nextID {
			repo.nextID = user.ID + 1
		}
	}

	return repo
}

func (r *fakeUserRepo) Create(_ context.Context, user domain.User) (domain.User, error) {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return domain.User{}, repository.ErrUserEmailExists
		}
	}

	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = &user

	return user, nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uint) (domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}

	return *user, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return *user, nil
		}
	}

	return domain.User{}, repository.ErrUserNotFound
}

func (r *fakeUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, id uint, passwordHash string) error {
	user, ok := r.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	user.Password = passwordHash

	return nil
}

type fakeMailer struct {
	sentTo   []string
	lastLink string
}

func (m *fakeMailer) SendPasswordReset(toEmail, _, resetLink string) error {
	m.sentTo = append(m.sentTo, toEmail)
	m.lastLink = resetLink

	return nil
}

func mustHash(t *testing.T, password string) string {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	return string(hash)
}

func TestAuthService_Register(t *testing.T) {
	t.Run("the first account becomes the admin", func(t *testing.T) {
		svc := NewAuthService(newFakeUserRepo(), &fakeMailer{})

		created, err := svc.Register(context.Background(), domain.User{
			Name:     "Alice",
			Email:    "alice@example.com",
			Password: "password1",
			Role:     domain.RoleUser,
		})

		require.NoError(t, err)
		assert.Equal(t, domain.RoleAdmin, created.Role)
	})

	t.Run("later accounts keep their requested role", func(t *testing.T) {
		repo := newFakeUserRepo(domain.User{ID: 1, Email: "admin@example.com", Role: domain.RoleAdmin})
		svc := NewAuthService(repo, &fakeMailer{})

		created, err := svc.Register(context.Background(), domain.User{
			Name:     "Bob",
			Email:    "bob@example.com",
			Password: "password1",
			Role:     domain.RoleStaff,
		})

		require.NoError(t, err)
		assert.Equal(t, domain.RoleStaff, created.Role)
	})

	t.Run("an unknown role falls back to user", func(t *testing.T) {
		repo := newFakeUserRepo(domain.User{ID: 1, Email: "admin@example.com", Role: domain.RoleAdmin})
		svc := NewAuthService(repo, &fakeMailer{})

		created, err := svc.Register(context.Background(), domain.User{
			Name:     "Bob",
			Email:    "bob@example.com",
			Password: "password1",
			Role:     "superuser",
		})

		require.NoError(t, err)
		assert.Equal(t, domain.RoleUser, created.Role)
	})

	t.Run("the stored password is a hash", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := NewAuthService(repo, &fakeMailer{})

		created, err := svc.Register(context.Background(), domain.User{
			Name:     "Alice",
			Email:    "alice@example.com",
			Password: "password1",
		})

		require.NoError(t, err)
		stored := repo.users[created.ID]
		assert.NotEqual(t, "password1", stored.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("password1")))
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := newFakeUserRepo(domain.User{ID: 1, Email: "alice@example.com", Role: domain.RoleAdmin})
		svc := NewAuthService(repo, &fakeMailer{})

		_, err := svc.Register(context.Background(), domain.User{
			Name:     "Alice Again",
			Email:    "alice@example.com",
			Password: "password1",
		})

		assert.ErrorIs(t, err, ErrUserEmailExists)
	})
}

func TestAuthService_Login(t *testing.T) {
	existing := domain.User{
		ID:    1,
		Name:  "Alice",
		Email: "alice@example.com",
		Role:  domain.RoleAdmin,
	}

	t.Run("valid credentials", func(t *testing.T) {
		existing.Password = mustHash(t, "password1")
		svc := NewAuthService(newFakeUserRepo(existing), &fakeMailer{})

		user, err := svc.Login(context.Background(), "alice@example.com", "password1")

		require.NoError(t, err)
		assert.Equal(t, uint(1), user.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		existing.Password = mustHash(t, "password1")
		svc := NewAuthService(newFakeUserRepo(existing), &fakeMailer{})

		_, err := svc.Login(context.Background(), "alice@example.com", "nope12345")

		assert.ErrorIs(t, err, ErrWrongPassword)
	})

	t.Run("unknown email", func(t *testing.T) {
		svc := NewAuthService(newFakeUserRepo(), &fakeMailer{})

		_, err := svc.Login(context.Background(), "ghost@example.com", "password1")

		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	t.Run("requires the current password", func(t *testing.T) {
		existing := domain.User{ID: 1, Email: "alice@example.com", Password: mustHash(t, "password1")}
		svc := NewAuthService(newFakeUserRepo(existing), &fakeMailer{})

		err := svc.ChangePassword(context.Background(), 1, "wrongpass", "newpassword1")

		assert.ErrorIs(t, err, ErrWrongPassword)
	})

	t.Run("stores the new hash", func(t *testing.T) {
		existing := domain.User{ID: 1, Email: "alice@example.com", Password: mustHash(t, "password1")}
		repo := newFakeUserRepo(existing)
		svc := NewAuthService(repo, &fakeMailer{})

		err := svc.ChangePassword(context.Background(), 1, "password1", "newpassword1")

		require.NoError(t, err)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.users[1].Password), []byte("newpassword1")))
	})
}

func TestAuthService_PasswordReset(t *testing.T) {
	existing := domain.User{ID: 7, Name: "Alice", Email: "alice@example.com", Password: "old-hash"}

	t.Run("forgot password mails the reset link", func(t *testing.T) {
		mailer := &fakeMailer{}
		svc := NewAuthService(newFakeUserRepo(existing), mailer)

		err := svc.ForgotPassword(context.Background(), "alice@example.com", func(userID uint) (string, error) {
			assert.Equal(t, uint(7), userID)
			return "https://app.example.com/reset-password/token-7", nil
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"alice@example.com"}, mailer.sentTo)
		assert.Equal(t, "https://app.example.com/reset-password/token-7", mailer.lastLink)
	})

	t.Run("forgot password for an unknown address", func(t *testing.T) {
		mailer := &fakeMailer{}
		svc := NewAuthService(newFakeUserRepo(), mailer)

		err := svc.ForgotPassword(context.Background(), "ghost@example.com", func(uint) (string, error) {
			t.Fatal("link builder must not run for unknown users")
			return "", nil
		})

		assert.ErrorIs(t, err, ErrUserNotFound)
		assert.Empty(t, mailer.sentTo)
	})

	t.Run("reset password replaces the stored hash", func(t *testing.T) {
		repo := newFakeUserRepo(existing)
		svc := NewAuthService(repo, &fakeMailer{})

		err := svc.ResetPassword(context.Background(), 7, "freshpassword1")

		require.NoError(t, err)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.users[7].Password), []byte("freshpassword1")))
	})

	t.Run("reset password for an unknown user", func(t *testing.T) {
		svc := NewAuthService(newFakeUserRepo(), &fakeMailer{})

		err := svc.ResetPassword(context.Background(), 999, "freshpassword1")

		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
