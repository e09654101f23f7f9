package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bensefia-clinic/clinic-api/internal/models"
	"github.com/bensefia-clinic/clinic-api/internal/store"
	"github.com/bensefia-clinic/clinic-api/internal/utils"
)

var (
	ErrInvalidCredentials = errors.New("accounts: invalid credentials")
	ErrNotVerified        = errors.New("accounts: email not verified")
	ErrInvalidToken       = errors.New("accounts: invalid verification token")
)

// AccountService owns user registration, login checks and the verification
// token lifecycle on top of whatever store the server was started with.
type AccountService struct {
	store store.Store
}

func NewAccountService(s store.Store) *AccountService {
	return &AccountService{store: s}
}

// Register creates an unverified user and returns it together with the
// verification token to be emailed. The token is stored on the user record;
// it is returned separately so callers never dig it out of the model.
func (a *AccountService) Register(ctx context.Context, email, password string) (models.User, string, error) {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return models.User{}, "", fmt.Errorf("hash password: %w", err)
	}
	token, err := utils.NewVerificationToken()
	if err != nil {
		return models.User{}, "", fmt.Errorf("generate verification token: %w", err)
	}

	user := models.User{
		ID:                uuid.NewString(),
		Email:             strings.ToLower(strings.TrimSpace(email)),
		PasswordHash:      hash,
		Verified:          false,
		VerificationToken: token,
		CreatedAt:         time.Now(),
	}
	if err := a.store.CreateUser(ctx, user); err != nil {
		return models.User{}, "", err
	}
	return user, token, nil
}

// Authenticate checks credentials and verification state. It returns
// store.ErrNotFound, ErrInvalidCredentials or ErrNotVerified; the password is
// checked before the verified flag so an attacker cannot probe verification
// state without knowing the password.
func (a *AccountService) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	user, err := a.store.UserByEmail(ctx, email)
	if err != nil {
		return models.User{}, err
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return models.User{}, ErrInvalidCredentials
	}
	if !user.Verified {
		return models.User{}, ErrNotVerified
	}
	return user, nil
}

// IssueToken generates a fresh verification token for an existing user,
// overwriting any pending one, and returns it for transport via email. The
// user is marked unverified again until the new token is redeemed.
func (a *AccountService) IssueToken(ctx context.Context, email string) (models.User, string, error) {
	user, err := a.store.UserByEmail(ctx, email)
	if err != nil {
		return models.User{}, "", err
	}
	token, err := utils.NewVerificationToken()
	if err != nil {
		return models.User{}, "", fmt.Errorf("generate verification token: %w", err)
	}
	user.VerificationToken = token
	user.Verified = false
	if err := a.store.UpdateUser(ctx, user); err != nil {
		return models.User{}, "", err
	}
	return user, token, nil
}

// Redeem consumes a verification token. Tokens are single-use: on success the
// user becomes verified and the token is cleared, so a replay of the same
// token fails with ErrInvalidToken.
func (a *AccountService) Redeem(ctx context.Context, email, token string) (models.User, error) {
	user, err := a.store.UserByEmail(ctx, email)
	if err != nil {
		return models.User{}, err
	}
	if token == "" || user.VerificationToken == "" || user.VerificationToken != token {
		return models.User{}, ErrInvalidToken
	}
	user.Verified = true
	user.VerificationToken = ""
	if err := a.store.UpdateUser(ctx, user); err != nil {
		return models.User{}, err
	}
	return user, nil
}
