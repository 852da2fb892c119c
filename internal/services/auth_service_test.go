package services_test

import (
	"context"
	"database/sql/driver"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"eduagri-backend/internal/models"
	"eduagri-backend/internal/services"
)

const insertUserQuery = "INSERT INTO users (username, email, password_hash, role) VALUES (?, ?, ?, ?)"
const selectUserByNameQuery = "SELECT id, username, email, password_hash, role FROM users WHERE username = ?"

func TestRegister(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db, mock := setupTest(t)
		mock.ExpectExec(insertUserQuery).
			WithArgs("alice", "a@x.com", sqlmock.AnyArg(), "customer").
			WillReturnResult(sqlmock.NewResult(1, 1))

		user, err := services.NewAuthService(db).Register(context.Background(), "alice", "a@x.com", "pw", models.UserRoleCustomer)
		require.NoError(t, err)
		assert.Equal(t, int64(1), user.ID)
		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, models.UserRoleCustomer, user.Role)
	})

	t.Run("empty role defaults to customer", func(t *testing.T) {
		db, mock := setupTest(t)
		mock.ExpectExec(insertUserQuery).
			WithArgs("bob", "b@x.com", sqlmock.AnyArg(), "customer").
			WillReturnResult(sqlmock.NewResult(2, 1))

		user, err := services.NewAuthService(db).Register(context.Background(), "bob", "b@x.com", "pw", "")
		require.NoError(t, err)
		assert.Equal(t, models.UserRoleCustomer, user.Role)
	})

	t.Run("duplicate username or email", func(t *testing.T) {
		db, mock := setupTest(t)
		mock.ExpectExec(insertUserQuery).
			WithArgs("alice", "a@x.com", sqlmock.AnyArg(), "customer").
			WillReturnError(&pq.Error{Code: "23505"})

		_, err := services.NewAuthService(db).Register(context.Background(), "alice", "a@x.com", "pw", models.UserRoleCustomer)
		assert.ErrorIs(t, err, services.ErrUserExists)
	})

	t.Run("unknown role rejected before storage", func(t *testing.T) {
		db, _ := setupTest(t)

		_, err := services.NewAuthService(db).Register(context.Background(), "alice", "a@x.com", "pw", "wizard")
		assert.ErrorIs(t, err, services.ErrInvalidRole)
	})

	t.Run("password never stored in plaintext", func(t *testing.T) {
		db, mock := setupTest(t)
		var storedHash string
		mock.ExpectExec(insertUserQuery).
			WithArgs("alice", "a@x.com", hashCapture{&storedHash}, "customer").
			WillReturnResult(sqlmock.NewResult(1, 1))

		_, err := services.NewAuthService(db).Register(context.Background(), "alice", "a@x.com", "pw", models.UserRoleCustomer)
		require.NoError(t, err)
		assert.NotEqual(t, "pw", storedHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(storedHash), []byte("pw")))
	})
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	require.NoError(t, err)

	userRow := func(mock sqlmock.Sqlmock) *sqlmock.Rows {
		return mock.NewRows([]string{"id", "username", "email", "password_hash", "role"}).
			AddRow(1, "alice", "a@x.com", string(hash), "customer")
	}

	t.Run("success", func(t *testing.T) {
		db, mock := setupTest(t)
		mock.ExpectQuery(selectUserByNameQuery).WithArgs("alice").WillReturnRows(userRow(mock))

		user, err := services.NewAuthService(db).Login(context.Background(), "alice", "pw")
		require.NoError(t, err)
		assert.Equal(t, int64(1), user.ID)
		assert.Equal(t, "alice", user.Username)
	})

	t.Run("wrong password and unknown user are indistinguishable", func(t *testing.T) {
		db, mock := setupTest(t)
		mock.ExpectQuery(selectUserByNameQuery).WithArgs("alice").WillReturnRows(userRow(mock))
		mock.ExpectQuery(selectUserByNameQuery).WithArgs("nobody").
			WillReturnRows(mock.NewRows([]string{"id", "username", "email", "password_hash", "role"}))

		svc := services.NewAuthService(db)
		_, wrongPassword := svc.Login(context.Background(), "alice", "wrong")
		_, unknownUser := svc.Login(context.Background(), "nobody", "pw")

		assert.ErrorIs(t, wrongPassword, services.ErrInvalidCredentials)
		assert.ErrorIs(t, unknownUser, services.ErrInvalidCredentials)
		assert.Equal(t, wrongPassword, unknownUser)
	})
}

func TestGetByID(t *testing.T) {
	const query = "SELECT id, username, email, role FROM users WHERE id = ?"

	t.Run("success", func(t *testing.T) {
		db, mock := setupTest(t)
		mock.ExpectQuery(query).WithArgs(int64(1)).
			WillReturnRows(mock.NewRows([]string{"id", "username", "email", "role"}).
				AddRow(1, "alice", "a@x.com", "customer"))

		user, err := services.NewAuthService(db).GetByID(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := setupTest(t)
		mock.ExpectQuery(query).WithArgs(int64(99)).
			WillReturnRows(mock.NewRows([]string{"id", "username", "email", "role"}))

		_, err := services.NewAuthService(db).GetByID(context.Background(), 99)
		assert.ErrorIs(t, err, services.ErrUserNotFound)
	})
}

// hashCapture records the password_hash argument so tests can inspect it.
type hashCapture struct {
	dst *string
}

func (c hashCapture) Match(v driver.Value) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	*c.dst = s
	return true
}
