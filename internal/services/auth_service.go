package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"eduagri-backend/internal/database"
	"eduagri-backend/internal/models"
)

var (
	// ErrInvalidCredentials is returned for a wrong password and for an
	// unknown username alike, so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("username or email already exists")
	ErrInvalidRole        = errors.New("invalid role")
)

type AuthService struct {
	db *database.DB
}

func NewAuthService(db *database.DB) *AuthService {
	return &AuthService{db: db}
}

func (s *AuthService) Register(ctx context.Context, username, email, password string, role models.UserRole) (*models.User, error) {
	if role == "" {
		role = models.UserRoleCustomer
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	query := "INSERT INTO users (username, email, password_hash, role) VALUES (?, ?, ?, ?)"
	id, err := s.db.InsertID(ctx, query, username, email, string(bytes), role)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	return &models.User{
		ID:       id,
		Username: username,
		Email:    email,
		Role:     role,
	}, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, error) {
	var user models.User
	query := s.db.Rebind("SELECT id, username, email, password_hash, role FROM users WHERE username = ?")

	if err := s.db.GetContext(ctx, &user, query, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

func (s *AuthService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	query := s.db.Rebind("SELECT id, username, email, role FROM users WHERE id = ?")

	if err := s.db.GetContext(ctx, &user, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}
