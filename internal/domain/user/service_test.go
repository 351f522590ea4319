package user

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/config"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&User{}))

	cfg := &config.Config{}
	cfg.App.Name = "storefront-test"
	cfg.JWT.Secret = "test-secret-test-secret-test-secret!"
	cfg.JWT.AccessTokenExpiry = 15 * time.Minute
	cfg.JWT.RefreshTokenExpiry = 24 * time.Hour
	cfg.Security.BcryptCost = bcrypt.MinCost

	return NewService(db, cfg)
}

func registerRequest() *RegisterRequest {
	return &RegisterRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Password:  "correct-horse",
	}
}

func TestRegister_CreatesIdentityWithTokens(t *testing.T) {
	svc := newTestService(t)

	resp, err := svc.Register(registerRequest())
	require.NoError(t, err)

	assert.NotZero(t, resp.User.ID)
	assert.Equal(t, "ada@example.com", resp.User.Email)
	assert.Empty(t, resp.User.Password, "password hash must not leak in responses")
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Register(registerRequest())
	require.NoError(t, err)

	_, err = svc.Register(registerRequest())
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin_Succeeds(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Register(registerRequest())
	require.NoError(t, err)

	resp, err := svc.Login(&LoginRequest{Email: "ada@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotNil(t, resp.User.LastLoginAt)
}

func TestLogin_FailureIsOpaque(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Register(registerRequest())
	require.NoError(t, err)

	// Wrong password and unknown email must be indistinguishable.
	_, wrongPassword := svc.Login(&LoginRequest{Email: "ada@example.com", Password: "nope-nope"})
	_, unknownEmail := svc.Login(&LoginRequest{Email: "ghost@example.com", Password: "correct-horse"})

	require.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	require.ErrorIs(t, unknownEmail, ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestRefreshToken_RoundTrip(t *testing.T) {
	svc := newTestService(t)

	registered, err := svc.Register(registerRequest())
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(registered.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, refreshed.User.ID)
	assert.NotEmpty(t, refreshed.AccessToken)
}

func TestRefreshToken_RejectsAccessToken(t *testing.T) {
	svc := newTestService(t)

	registered, err := svc.Register(registerRequest())
	require.NoError(t, err)

	_, err = svc.RefreshToken(registered.AccessToken)
	require.ErrorIs(t, err, ErrInvalidCredentials)
}
