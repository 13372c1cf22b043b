// Package services holds the application logic between the HTTP handlers and
// the repositories: uniqueness checks, credential hashing and verification,
// token issuing, and partial-update semantics. Handlers translate the errors
// raised here into status codes and messages.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"impulselog/internal/common"
	"impulselog/internal/dbx"
	"impulselog/internal/server/auth"
	"impulselog/internal/server/config"
	"impulselog/internal/server/models"
	"impulselog/internal/server/repositories/repomanager"
)

// Conflict errors carry which uniqueness check failed, so the API can answer
// with the precise message.
var (
	ErrUsernameTaken = errors.New("username already exists")
	ErrEmailTaken    = errors.New("email already exists")
	ErrEmailInUse    = errors.New("email already in use")
)

type UserService struct {
	m                     repomanager.RepositoryManager
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

func NewUserService(m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		m:                     m,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// Register creates an account. The pre-checks give precise conflict errors;
// the database unique indexes stay authoritative under concurrent registers,
// in which case the insert itself reports the conflict.
func (s *UserService) Register(ctx context.Context, username, email, password, fullName string) (*models.User, error) {

	db := s.m.Conn()
	repo := s.m.Users(db)

	exists, err := repo.ExistsUsername(ctx, username)
	if err != nil {
		return nil, common.ErrorInternal
	}
	if exists {
		return nil, ErrUsernameTaken
	}

	exists, err = repo.ExistsEmail(ctx, email, 0)
	if err != nil {
		return nil, common.ErrorInternal
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	now := time.Now().UTC()
	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		FullName:     fullName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	user, err = repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

// IssueToken signs a token for an already-authenticated user, as happens
// right after registration.
func (s *UserService) IssueToken(user *models.User) (string, error) {
	return auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidityDuration)
}

// Login verifies the credentials and issues a signed token. An unknown
// username and a wrong password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, username, password string) (*models.User, string, error) {

	repo := s.m.Users(s.m.Conn())

	user, err := repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, "", common.ErrorUnauthorized
		}
		return nil, "", common.ErrorInternal
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, "", common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	return user, token, nil
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return s.m.Users(s.m.Conn()).GetByID(ctx, id)
}

// Update applies a self-update. Empty patch fields leave the stored value
// unchanged. A non-empty password arrives in plain text and is hashed here.
func (s *UserService) Update(ctx context.Context, userID int64, email, fullName, password string) (*models.User, error) {

	patch := models.UserPatch{Email: email, FullName: fullName}

	if password != "" {
		hash, err := auth.HashPassword(password)
		if err != nil {
			return nil, common.ErrorInternal
		}
		patch.PasswordHash = hash
	}

	var updated *models.User

	err := dbx.WithTx(ctx, s.m.Conn(), nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.m.Users(tx)

		user, err := repo.GetByID(ctx, userID)
		if err != nil {
			return err
		}

		if patch.Email != "" && patch.Email != user.Email {
			exists, err := repo.ExistsEmail(ctx, patch.Email, userID)
			if err != nil {
				return common.ErrorInternal
			}
			if exists {
				return ErrEmailInUse
			}
		}

		next := patch.Apply(*user, time.Now().UTC())
		updated, err = repo.Update(ctx, &next)
		if errors.Is(err, common.ErrorAlreadyExists) {
			return ErrEmailInUse
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}
