package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-todo/internal/domain/entity"
	repo "github.com/oksasatya/go-ddd-todo/internal/domain/repository"
	"github.com/oksasatya/go-ddd-todo/pkg/helpers"
)

// TokenIssuer signs bearer tokens for a user id.
type TokenIssuer interface {
	Issue(userID string) (string, time.Time, error)
}

type UserService struct {
	Repo   repo.UserRepository
	Tokens TokenIssuer
	Logger *logrus.Logger
}

func NewUserService(repo repo.UserRepository, tokens TokenIssuer, logger *logrus.Logger) *UserService {
	return &UserService{Repo: repo, Tokens: tokens, Logger: logger}
}

type SignupInput struct {
	Name     string
	Email    string
	Password string
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *entity.User
}

// UpdateProfileInput uses nil for "not supplied".
type UpdateProfileInput struct {
	Name     *string
	Email    *string
	Password *string
}

// hashPassword reports an over-long password as a validation failure.
func hashPassword(plain string) (string, error) {
	hash, err := helpers.HashPassword(plain)
	switch {
	case errors.Is(err, helpers.ErrPasswordTooLong):
		return "", ErrValidation
	case err != nil:
		return "", fmt.Errorf("hash password: %w", err)
	}
	return hash, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup hashes the password and creates the user in a single insert.
func (s *UserService) Signup(ctx context.Context, in SignupInput) (*entity.User, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	if name == "" || email == "" || in.Password == "" {
		return nil, ErrValidation
	}
	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{ID: uuid.NewString(), Name: name, Email: email, Password: hash}
	if err := s.Repo.Create(ctx, u); err != nil {
		if !errors.Is(err, repo.ErrDuplicateEmail) {
			helpers.LogError(s.Logger, "create user failed", err, logrus.Fields{"email": email})
		}
		return nil, err
	}
	signupsTotal.Add(1)
	return u, nil
}

// Login answers ErrInvalidCredentials for both an unknown email and a wrong
// password.
func (s *UserService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrValidation
	}
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			helpers.LogError(s.Logger, "lookup user failed", err, nil)
			return nil, err
		}
		loginFailuresTotal.Add(1)
		return nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		loginFailuresTotal.Add(1)
		return nil, ErrInvalidCredentials
	}
	token, exp, err := s.Tokens.Issue(u.ID)
	if err != nil {
		helpers.LogError(s.Logger, "issue token failed", err, logrus.Fields{"user_id": u.ID})
		return nil, err
	}
	loginsTotal.Add(1)
	return &LoginResult{Token: token, ExpiresAt: exp, User: u}, nil
}

func (s *UserService) GetProfile(ctx context.Context, who entity.Identity) (*entity.User, error) {
	if who.UserID == "" {
		return nil, ErrUnauthenticated
	}
	u, err := s.Repo.GetByID(ctx, who.UserID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			// the token was valid, so a missing row means the store lost it
			if s.Logger != nil {
				s.Logger.WithField("user_id", who.UserID).Error("authenticated user has no record")
			}
			return nil, ErrUserNotFound
		}
		helpers.LogError(s.Logger, "get profile failed", err, logrus.Fields{"user_id": who.UserID})
		return nil, err
	}
	return u, nil
}

// UpdateProfile changes only the supplied fields; the password is re-hashed
// only when a new one is given.
func (s *UserService) UpdateProfile(ctx context.Context, who entity.Identity, in UpdateProfileInput) (*entity.User, error) {
	if who.UserID == "" {
		return nil, ErrUnauthenticated
	}
	var upd repo.UserUpdate
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, ErrValidation
		}
		upd.Name = &name
	}
	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		if email == "" {
			return nil, ErrValidation
		}
		upd.Email = &email
	}
	if in.Password != nil {
		if *in.Password == "" {
			return nil, ErrValidation
		}
		hash, err := hashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		upd.PasswordHash = &hash
	}

	u, err := s.Repo.Update(ctx, who.UserID, upd)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrNotFound):
			return nil, ErrUserNotFound
		case errors.Is(err, repo.ErrDuplicateEmail):
			return nil, err
		}
		helpers.LogError(s.Logger, "update profile failed", err, logrus.Fields{"user_id": who.UserID})
		return nil, err
	}
	return u, nil
}
