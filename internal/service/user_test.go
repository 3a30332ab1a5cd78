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

func (r *fakeUserRepo) FindAll(_ context.Context) ([]domain.User, error) {
	var result []domain.User
	for _, user := range r.users {
		result = append(result, *user)
	}

	return result, nil
}

func (r *fakeUserRepo) Update(_ context.Context, id uint, update domain.UserUpdate) (domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}

	if update.Email != nil {
		for otherID, other := range r.users {
			if otherID != id && other.Email == *update.Email {
				return domain.User{}, repository.ErrUserEmailExists
			}
		}
		user.Email = *update.Email
	}
	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.Password != nil {
		user.Password = *update.Password
	}

	return *user, nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(r.users, id)

	return nil
}

func TestUserService_UpdateProfile(t *testing.T) {
	existing := domain.User{ID: 1, Name: "Alice", Email: "alice@example.com", Role: domain.RoleUser}

	t.Run("updates only the provided fields", func(t *testing.T) {
		repo := newFakeUserRepo(existing)
		svc := NewUserService(repo)

		name := "Alice B"
		updated, err := svc.UpdateProfile(context.Background(), 1, domain.UserUpdate{Name: &name})

		require.NoError(t, err)
		assert.Equal(t, "Alice B", updated.Name)
		assert.Equal(t, "alice@example.com", updated.Email)
	})

	t.Run("hashes a new password before storing it", func(t *testing.T) {
		repo := newFakeUserRepo(existing)
		svc := NewUserService(repo)

		password := "newpassword1"
		_, err := svc.UpdateProfile(context.Background(), 1, domain.UserUpdate{Password: &password})

		require.NoError(t, err)
		stored := repo.users[1]
		assert.NotEqual(t, "newpassword1", stored.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("newpassword1")))
	})

	t.Run("taken email", func(t *testing.T) {
		repo := newFakeUserRepo(
			existing,
			domain.User{ID: 2, Name: "Bob", Email: "bob@example.com", Role: domain.RoleUser},
		)
		svc := NewUserService(repo)

		email := "bob@example.com"
		_, err := svc.UpdateProfile(context.Background(), 1, domain.UserUpdate{Email: &email})

		assert.ErrorIs(t, err, ErrUserEmailExists)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc := NewUserService(newFakeUserRepo())

		name := "Ghost"
		_, err := svc.UpdateProfile(context.Background(), 999, domain.UserUpdate{Name: &name})

		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestUserService_DeleteUser(t *testing.T) {
	admin := domain.User{ID: 1, Name: "Admin", Email: "admin@example.com", Role: domain.RoleAdmin}
	member := domain.User{ID: 2, Name: "Bob", Email: "bob@example.com", Role: domain.RoleUser}

	t.Run("deletes another account", func(t *testing.T) {
		repo := newFakeUserRepo(admin, member)
		svc := NewUserService(repo)

		err := svc.DeleteUser(context.Background(), 2, 1)

		require.NoError(t, err)
		_, err = svc.GetUser(context.Background(), 2)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("self-deletion is refused", func(t *testing.T) {
		repo := newFakeUserRepo(admin)
		svc := NewUserService(repo)

		err := svc.DeleteUser(context.Background(), 1, 1)

		assert.ErrorIs(t, err, ErrCannotDeleteSelf)
		_, getErr := svc.GetUser(context.Background(), 1)
		assert.NoError(t, getErr)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc := NewUserService(newFakeUserRepo(admin))

		err := svc.DeleteUser(context.Background(), 999, 1)

		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
