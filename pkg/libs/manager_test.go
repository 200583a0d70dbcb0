package libs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wattwise/wattwise/pkg/models"
	"github.com/wattwise/wattwise/pkg/storage"
)

func seedUser(t *testing.T, vault *storage.MemoryStorage, id int64, email, password string) {
	t.Helper()
	hash, err := HashPassword(password)
	require.NoError(t, err)
	require.NoError(t, vault.CreateUser(models.UserCredential{
		UserID:       id,
		Email:        email,
		PasswordHash: hash,
	}))
}

func newTestManager(t *testing.T) (*Manager, *storage.MemoryStorage, *SessionStore) {
	t.Helper()
	vault := storage.NewMemoryStorage()
	sessions := NewSessionStore(time.Hour)
	m := NewManager(vault, NewRateLimiter(nil), sessions, "WattWise")
	return m, vault, sessions
}

func TestLoginPasswordOnly(t *testing.T) {
	m, vault, sessions := newTestManager(t)
	seedUser(t, vault, 7, "u@x.com", "pw1")

	result := m.Login(models.LoginRequest{Email: "u@x.com", Password: "pw1", ClientKey: "c1"})
	require.Equal(t, models.StatusAuthenticated, result.Status)
	assert.Equal(t, int64(7), result.UserID)
	require.NotEmpty(t, result.Token)

	// the issued token resolves immediately
	id, ok := sessions.Resolve(result.Token)
	assert.True(t, ok)
	assert.Equal(t, int64(7), id)
}

func TestLoginRejectionsDoNotLeakAccountExistence(t *testing.T) {
	m, vault, _ := newTestManager(t)
	seedUser(t, vault, 7, "u@x.com", "pw1")

	wrongPassword := m.Login(models.LoginRequest{Email: "u@x.com", Password: "wrong", ClientKey: "c1"})
	unknownEmail := m.Login(models.LoginRequest{Email: "ghost@x.com", Password: "pw1", ClientKey: "c1"})

	assert.Equal(t, models.StatusRejected, wrongPassword.Status)
	assert.Equal(t, models.StatusRejected, unknownEmail.Status)
	assert.Equal(t, models.ReasonInvalidCredentials, wrongPassword.Reason)
	assert.Equal(t, wrongPassword.Reason, unknownEmail.Reason)
}

func TestLoginMalformedInput(t *testing.T) {
	m, _, _ := newTestManager(t)
	result := m.Login(models.LoginRequest{Email: "", Password: "", ClientKey: "c1"})
	assert.Equal(t, models.StatusRejected, result.Status)
	assert.Equal(t, models.ReasonMalformedInput, result.Reason)
}

func TestSecondFactorFlow(t *testing.T) {
	m, vault, _ := newTestManager(t)
	seedUser(t, vault, 7, "u@x.com", "pw1")

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	enabled := m.EnableSecondFactor(models.EnableSecondFactorRequest{UserID: 7, ClientKey: "c1"})
	require.Equal(t, models.StatusOK, enabled.Status)
	require.NotEmpty(t, enabled.Secret)
	assert.Contains(t, enabled.URI, "otpauth://totp/")

	// the secret was persisted before being returned
	stored, err := vault.FindByID(7)
	require.NoError(t, err)
	assert.Equal(t, enabled.Secret, stored.TOTPSecret)

	// password alone is no longer enough, and that is not a failure
	pending := m.Login(models.LoginRequest{Email: "u@x.com", Password: "pw1", ClientKey: "c1"})
	assert.Equal(t, models.StatusSecondFactorRequired, pending.Status)
	assert.Empty(t, pending.Token)

	code, err := CurrentTOTPCode(enabled.Secret, now)
	require.NoError(t, err)
	full := m.Login(models.LoginRequest{Email: "u@x.com", Password: "pw1", Code: code, ClientKey: "c1"})
	assert.Equal(t, models.StatusAuthenticated, full.Status)
	assert.NotEmpty(t, full.Token)

	bad := m.Login(models.LoginRequest{Email: "u@x.com", Password: "pw1", Code: "000111", ClientKey: "c1"})
	assert.Equal(t, models.StatusRejected, bad.Status)
	assert.Equal(t, models.ReasonInvalidSecondFactor, bad.Reason)
}

func TestEnableSecondFactorReplacesSecret(t *testing.T) {
	m, vault, _ := newTestManager(t)
	seedUser(t, vault, 7, "u@x.com", "pw1")

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	first := m.EnableSecondFactor(models.EnableSecondFactorRequest{UserID: 7, ClientKey: "c1"})
	require.Equal(t, models.StatusOK, first.Status)
	second := m.EnableSecondFactor(models.EnableSecondFactorRequest{UserID: 7, ClientKey: "c1"})
	require.Equal(t, models.StatusOK, second.Status)
	require.NotEqual(t, first.Secret, second.Secret)

	stored, err := vault.FindByID(7)
	require.NoError(t, err)
	assert.Equal(t, second.Secret, stored.TOTPSecret)

	// codes from the replaced secret no longer verify
	staleCode, err := CurrentTOTPCode(first.Secret, now)
	require.NoError(t, err)
	result := m.VerifySecondFactor(models.VerifySecondFactorRequest{UserID: 7, Code: staleCode, ClientKey: "c1"})
	assert.Equal(t, models.StatusRejected, result.Status)
	assert.Equal(t, models.ReasonInvalidSecondFactor, result.Reason)
}

func TestVerifySecondFactor(t *testing.T) {
	m, vault, _ := newTestManager(t)
	seedUser(t, vault, 7, "u@x.com", "pw1")

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	notEnabled := m.VerifySecondFactor(models.VerifySecondFactorRequest{UserID: 7, Code: "123456", ClientKey: "c1"})
	assert.Equal(t, models.StatusRejected, notEnabled.Status)
	assert.Equal(t, models.ReasonSecondFactorNotEnabled, notEnabled.Reason)

	unknown := m.VerifySecondFactor(models.VerifySecondFactorRequest{UserID: 99, Code: "123456", ClientKey: "c1"})
	assert.Equal(t, models.StatusRejected, unknown.Status)
	assert.Equal(t, models.ReasonUnknownAccount, unknown.Reason)

	enabled := m.EnableSecondFactor(models.EnableSecondFactorRequest{UserID: 7, ClientKey: "c1"})
	require.Equal(t, models.StatusOK, enabled.Status)

	code, err := CurrentTOTPCode(enabled.Secret, now)
	require.NoError(t, err)
	ok := m.VerifySecondFactor(models.VerifySecondFactorRequest{UserID: 7, Code: code, ClientKey: "c1"})
	assert.Equal(t, models.StatusOK, ok.Status)
}

func TestLoginRateLimited(t *testing.T) {
	vault := storage.NewMemoryStorage()
	seedUser(t, vault, 7, "u@x.com", "pw1")

	limiter := NewRateLimiter(nil) // login budget: 10 per 15m
	current := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return current }
	m := NewManager(vault, limiter, NewSessionStore(time.Hour), "WattWise")

	for i := 1; i <= 11; i++ {
		result := m.Login(models.LoginRequest{Email: "u@x.com", Password: "pw1", ClientKey: "attacker"})
		if i <= 10 {
			assert.Equal(t, models.StatusAuthenticated, result.Status, "call %d", i)
		} else {
			// denied regardless of credential correctness
			assert.Equal(t, models.StatusRejected, result.Status, "call %d", i)
			assert.Equal(t, models.ReasonRateLimited, result.Reason)
		}
	}

	// other clients are unaffected
	other := m.Login(models.LoginRequest{Email: "u@x.com", Password: "pw1", ClientKey: "neighbor"})
	assert.Equal(t, models.StatusAuthenticated, other.Status)

	// the window eventually elapses
	current = current.Add(16 * time.Minute)
	again := m.Login(models.LoginRequest{Email: "u@x.com", Password: "pw1", ClientKey: "attacker"})
	assert.Equal(t, models.StatusAuthenticated, again.Status)
}

func TestLogoutInvalidatesSession(t *testing.T) {
	m, vault, sessions := newTestManager(t)
	seedUser(t, vault, 7, "u@x.com", "pw1")

	result := m.Login(models.LoginRequest{Email: "u@x.com", Password: "pw1", ClientKey: "c1"})
	require.Equal(t, models.StatusAuthenticated, result.Status)

	m.Logout(result.Token)
	_, ok := sessions.Resolve(result.Token)
	assert.False(t, ok)

	// idempotent
	m.Logout(result.Token)
}
