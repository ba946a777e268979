package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"tripai-backend/internal/models"
	"tripai-backend/internal/repository"
)

type captureMailer struct {
	to   string
	code string
}

func (m *captureMailer) SendResetCode(to, code string) error {
	m.to = to
	m.code = code
	return nil
}

func TestSignup(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	svc := NewIdentityService(store, nil, testConfig())

	user, token, err := svc.Signup(ctx, "Jane Traveler", "Jane@Example.com", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "jane@example.com", user.Email)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.Equal(t, 500, user.WalletBalance)
	assert.Contains(t, user.Avatar, "ui-avatars.com")

	// The stored hash verifies against the original password.
	stored, err := store.Users().GetByEmail(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret123")))
}

func TestSignup_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := NewIdentityService(repository.NewMemoryStore(), nil, testConfig())

	_, _, err := svc.Signup(ctx, "First", "same@example.com", "secret123")
	require.NoError(t, err)
	_, _, err = svc.Signup(ctx, "Second", "same@example.com", "secret456")
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
}

func TestSignup_Validation(t *testing.T) {
	svc := NewIdentityService(repository.NewMemoryStore(), nil, testConfig())

	_, _, err := svc.Signup(context.Background(), "", "a@b.com", "secret123")
	assert.ErrorIs(t, err, ErrValidation)
	_, _, err = svc.Signup(context.Background(), "Name", "a@b.com", "short")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc := NewIdentityService(repository.NewMemoryStore(), nil, testConfig())

	_, _, err := svc.Signup(ctx, "Jane", "jane@example.com", "secret123")
	require.NoError(t, err)

	user, token, err := svc.Login(ctx, "jane@example.com", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "jane@example.com", user.Email)

	_, _, err = svc.Login(ctx, "jane@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = svc.Login(ctx, "nobody@example.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_BannedUser(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	svc := NewIdentityService(store, nil, testConfig())

	_, _, err := svc.Signup(ctx, "Banned", "banned@example.com", "secret123")
	require.NoError(t, err)

	user, err := store.Users().GetByEmail(ctx, "banned@example.com")
	require.NoError(t, err)
	user.Status = models.UserStatusBanned
	require.NoError(t, store.Users().Update(ctx, user))

	_, _, err = svc.Login(ctx, "banned@example.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_AdminBypass(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	svc := NewIdentityService(store, nil, testConfig())

	// The bypass works even though no admin account exists yet.
	user, token, err := svc.Login(ctx, "admin@tripai.com", "admin123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, models.RoleAdmin, user.Role)

	// And it is idempotent: the account was materialized on first use.
	again, _, err := svc.Login(ctx, "admin@tripai.com", "admin123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)

	users, err := store.Users().List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestPasswordResetFlow(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	mailer := &captureMailer{}
	svc := NewIdentityService(store, mailer, testConfig())

	_, _, err := svc.Signup(ctx, "Jane", "jane@example.com", "secret123")
	require.NoError(t, err)

	require.NoError(t, svc.RequestPasswordReset(ctx, "jane@example.com"))
	require.Len(t, mailer.code, 6)
	assert.Equal(t, "jane@example.com", mailer.to)

	// Wrong code is rejected.
	_, err = svc.VerifyResetCode(ctx, "jane@example.com", "000000")
	assert.ErrorIs(t, err, ErrResetCodeInvalid)

	resetToken, err := svc.VerifyResetCode(ctx, "jane@example.com", mailer.code)
	require.NoError(t, err)
	require.NotEmpty(t, resetToken)

	// The code is single-use.
	_, err = svc.VerifyResetCode(ctx, "jane@example.com", mailer.code)
	assert.ErrorIs(t, err, ErrResetCodeInvalid)

	require.NoError(t, svc.ResetPassword(ctx, resetToken, "newsecret456"))

	_, _, err = svc.Login(ctx, "jane@example.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = svc.Login(ctx, "jane@example.com", "newsecret456")
	assert.NoError(t, err)
}

func TestRequestPasswordReset_UnknownEmailSilent(t *testing.T) {
	mailer := &captureMailer{}
	svc := NewIdentityService(repository.NewMemoryStore(), mailer, testConfig())

	err := svc.RequestPasswordReset(context.Background(), "ghost@example.com")
	assert.NoError(t, err)
	assert.Empty(t, mailer.code)
}

func TestRequestPasswordReset_Cooldown(t *testing.T) {
	ctx := context.Background()
	svc := NewIdentityService(repository.NewMemoryStore(), &captureMailer{}, testConfig())

	_, _, err := svc.Signup(ctx, "Jane", "jane@example.com", "secret123")
	require.NoError(t, err)

	require.NoError(t, svc.RequestPasswordReset(ctx, "jane@example.com"))
	err = svc.RequestPasswordReset(ctx, "jane@example.com")
	assert.ErrorIs(t, err, ErrResetCooldown)
}

func TestGoogleLogin(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	svc := NewIdentityService(store, nil, testConfig())

	user, token, err := svc.GoogleLogin(ctx, "G User", "guser@gmail.com", "https://lh3.example.com/photo.jpg")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, 500, user.WalletBalance)
	assert.Equal(t, "https://lh3.example.com/photo.jpg", user.Avatar)

	// Second sign-in reuses the account.
	again, _, err := svc.GoogleLogin(ctx, "G User", "guser@gmail.com", "")
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)
}
