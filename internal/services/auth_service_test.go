package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"collab-service/internal/auth"
	"collab-service/internal/domain"
	"collab-service/internal/services"
	"collab-service/internal/testutil"
)

const testSecret = "test-secret"

func newAuthService(store *testutil.MemStore) *services.AuthService {
	return services.NewAuthService(store, testSecret, time.Hour)
}

func TestRegisterIssuesToken(t *testing.T) {
	store := testutil.NewMemStore()
	svc := newAuthService(store)

	user, token, err := svc.Register(services.RegisterInput{
		Name:     "Alice",
		Email:    "Alice@Example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email, "email is normalized")
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "supersecret", user.PasswordHash)

	parsedID, err := auth.ParseToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, user.ID, parsedID)
}

func TestRegisterValidation(t *testing.T) {
	store := testutil.NewMemStore()
	svc := newAuthService(store)

	_, _, err := svc.Register(services.RegisterInput{Email: "not-an-email", Password: "short"})
	var ve domain.ValidationErrors
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve, "name")
	assert.Contains(t, ve, "email")
	assert.Contains(t, ve, "password")
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	store := testutil.NewMemStore()
	svc := newAuthService(store)

	_, _, err := svc.Register(services.RegisterInput{Name: "A", Email: "a@example.com", Password: "supersecret"})
	require.NoError(t, err)

	_, _, err = svc.Register(services.RegisterInput{Name: "B", Email: "a@example.com", Password: "supersecret"})
	var ve domain.ValidationErrors
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve, "email")
}

func TestLogin(t *testing.T) {
	store := testutil.NewMemStore()
	svc := newAuthService(store)

	registered, _, err := svc.Register(services.RegisterInput{Name: "A", Email: "a@example.com", Password: "supersecret"})
	require.NoError(t, err)

	user, token, err := svc.Login(services.LoginInput{Email: "a@example.com", Password: "supersecret"})
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.NotEmpty(t, token)

	_, _, err = svc.Login(services.LoginInput{Email: "a@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrBadCredentials)

	// Unknown email fails the same way as a wrong password.
	_, _, err = svc.Login(services.LoginInput{Email: "nobody@example.com", Password: "supersecret"})
	assert.ErrorIs(t, err, domain.ErrBadCredentials)
}
