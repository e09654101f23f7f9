package services

import (
	"context"
	"errors"
	"testing"

	"github.com/bensefia-clinic/clinic-api/internal/store"
	"github.com/bensefia-clinic/clinic-api/internal/utils"
)

func newAccounts() (*AccountService, *store.MemoryStore) {
	st := store.NewMemoryStore()
	return NewAccountService(st), st
}

func TestRegisterAndDuplicate(t *testing.T) {
	ctx := context.Background()
	accounts, _ := newAccounts()

	user, token, err := accounts.Register(ctx, "A@X.com", "secret1")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if user.Email != "a@x.com" {
		t.Errorf("Register() email = %q, want normalized a@x.com", user.Email)
	}
	if user.Verified {
		t.Error("Register() user starts verified, want unverified")
	}
	if len(token) != utils.VerificationTokenLength {
		t.Errorf("Register() token length = %d, want %d", len(token), utils.VerificationTokenLength)
	}
	if user.PasswordHash == "secret1" || user.PasswordHash == "" {
		t.Error("Register() password stored without a one-way hash")
	}

	// Same email with different case and password is still a duplicate.
	if _, _, err := accounts.Register(ctx, "a@X.COM", "other-password"); !errors.Is(err, store.ErrDuplicateEmail) {
		t.Errorf("Register() duplicate error = %v, want ErrDuplicateEmail", err)
	}
}

func TestAuthenticateStates(t *testing.T) {
	ctx := context.Background()
	accounts, _ := newAccounts()

	if _, _, err := accounts.Register(ctx, "a@x.com", "secret1"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if _, err := accounts.Authenticate(ctx, "nobody@x.com", "secret1"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Authenticate(unknown) error = %v, want ErrNotFound", err)
	}
	if _, err := accounts.Authenticate(ctx, "a@x.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Authenticate(bad password) error = %v, want ErrInvalidCredentials", err)
	}
	// Correct credentials on an unverified account: not_verified, never
	// invalid_credentials.
	if _, err := accounts.Authenticate(ctx, "a@x.com", "secret1"); !errors.Is(err, ErrNotVerified) {
		t.Errorf("Authenticate(unverified) error = %v, want ErrNotVerified", err)
	}
}

func TestRedeemIsOneTime(t *testing.T) {
	ctx := context.Background()
	accounts, _ := newAccounts()

	_, token, err := accounts.Register(ctx, "a@x.com", "secret1")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	user, err := accounts.Redeem(ctx, "a@x.com", token)
	if err != nil {
		t.Fatalf("Redeem() error = %v", err)
	}
	if !user.Verified {
		t.Error("Redeem() did not set verified")
	}

	// Replaying the consumed token fails.
	if _, err := accounts.Redeem(ctx, "a@x.com", token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Redeem() replay error = %v, want ErrInvalidToken", err)
	}
}

func TestRedeemWrongToken(t *testing.T) {
	ctx := context.Background()
	accounts, _ := newAccounts()

	if _, _, err := accounts.Register(ctx, "a@x.com", "secret1"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if _, err := accounts.Redeem(ctx, "a@x.com", "WRONG123"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Redeem(wrong) error = %v, want ErrInvalidToken", err)
	}
	if _, err := accounts.Redeem(ctx, "a@x.com", ""); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Redeem(empty) error = %v, want ErrInvalidToken", err)
	}
	if _, err := accounts.Redeem(ctx, "ghost@x.com", "ABCD1234"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Redeem(unknown user) error = %v, want ErrNotFound", err)
	}
}

func TestIssueTokenOverwritesPending(t *testing.T) {
	ctx := context.Background()
	accounts, _ := newAccounts()

	_, first, err := accounts.Register(ctx, "a@x.com", "secret1")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	_, second, err := accounts.IssueToken(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}
	if second == first {
		t.Fatal("IssueToken() returned the previous token")
	}

	// The old token is dead, the new one works.
	if _, err := accounts.Redeem(ctx, "a@x.com", first); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Redeem(stale token) error = %v, want ErrInvalidToken", err)
	}
	if _, err := accounts.Redeem(ctx, "a@x.com", second); err != nil {
		t.Errorf("Redeem(fresh token) error = %v", err)
	}
}

func TestFullVerificationScenario(t *testing.T) {
	ctx := context.Background()
	accounts, _ := newAccounts()
	sessions := NewSessionManager()

	_, token, err := accounts.Register(ctx, "a@x.com", "secret1")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if _, err := accounts.Authenticate(ctx, "a@x.com", "secret1"); !errors.Is(err, ErrNotVerified) {
		t.Fatalf("Authenticate before verify error = %v, want ErrNotVerified", err)
	}
	if _, err := accounts.Redeem(ctx, "a@x.com", token); err != nil {
		t.Fatalf("Redeem() error = %v", err)
	}
	user, err := accounts.Authenticate(ctx, "a@x.com", "secret1")
	if err != nil {
		t.Fatalf("Authenticate after verify error = %v", err)
	}

	sessionToken := sessions.Create(user.Email)
	if sessionToken == "" {
		t.Fatal("Create() returned empty session token")
	}
	email, ok := sessions.Lookup(sessionToken)
	if !ok || email != "a@x.com" {
		t.Errorf("Lookup() = %q %v, want a@x.com true", email, ok)
	}
	if _, ok := sessions.Lookup("not-a-token"); ok {
		t.Error("Lookup(bogus) = true, want false")
	}
}
