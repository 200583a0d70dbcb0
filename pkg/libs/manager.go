package libs

import (
	"errors"
	"log"
	"time"

	"github.com/wattwise/wattwise/pkg/contracts"
	"github.com/wattwise/wattwise/pkg/models"
)

// Manager orchestrates the credential store, password hasher, TOTP engine,
// rate limiter and session store. All mutable state is injected at
// construction; nothing here is process-global.
type Manager struct {
	vault    contracts.Vault
	limiter  contracts.RateLimiter
	sessions contracts.SessionStore
	issuer   string
	now      func() time.Time
}

func NewManager(vault contracts.Vault, limiter contracts.RateLimiter, sessions contracts.SessionStore, issuer string) *Manager {
	if issuer == "" {
		issuer = "WattWise"
	}
	return &Manager{
		vault:    vault,
		limiter:  limiter,
		sessions: sessions,
		issuer:   issuer,
		now:      time.Now,
	}
}

// Login runs the full password (+ optional TOTP) flow. Unknown accounts
// and wrong passwords produce the identical rejection; a failed TOTP code
// after a correct password does not re-run or re-penalize the password
// check.
func (m *Manager) Login(req models.LoginRequest) models.LoginResult {
	if req.Email == "" || req.Password == "" {
		return models.LoginResult{Status: models.StatusRejected, Reason: models.ReasonMalformedInput}
	}
	if !m.limiter.Allow(req.ClientKey, BucketLogin) {
		return models.LoginResult{Status: models.StatusRejected, Reason: models.ReasonRateLimited}
	}

	user, err := m.vault.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, contracts.ErrNotFound) {
			// internally distinct from a wrong password, externally not
			log.Printf("login rejected: unknown account from %s", req.ClientKey)
			return models.LoginResult{Status: models.StatusRejected, Reason: models.ReasonInvalidCredentials}
		}
		log.Printf("login failed: credential lookup error: %v", err)
		return models.LoginResult{Status: models.StatusInternalError}
	}

	if !VerifyPassword(req.Password, user.PasswordHash) {
		log.Printf("login rejected: wrong password for user %d from %s", user.UserID, req.ClientKey)
		return models.LoginResult{Status: models.StatusRejected, Reason: models.ReasonInvalidCredentials}
	}

	if user.SecondFactorEnabled() {
		if req.Code == "" {
			// password accepted, a code is still needed
			return models.LoginResult{Status: models.StatusSecondFactorRequired}
		}
		if !VerifyTOTPCode(req.Code, user.TOTPSecret, m.now()) {
			return models.LoginResult{Status: models.StatusRejected, Reason: models.ReasonInvalidSecondFactor}
		}
	}

	token, err := m.sessions.Create(user.UserID)
	if err != nil {
		log.Printf("login failed: session issue error: %v", err)
		return models.LoginResult{Status: models.StatusInternalError}
	}
	return models.LoginResult{Status: models.StatusAuthenticated, Token: token, UserID: user.UserID}
}

// EnableSecondFactor mints a fresh secret for the user and persists it
// before returning it, replacing any prior secret so at most one is ever
// active.
func (m *Manager) EnableSecondFactor(req models.EnableSecondFactorRequest) models.EnableSecondFactorResult {
	if !m.limiter.Allow(req.ClientKey, BucketEnable2FA) {
		return models.EnableSecondFactorResult{Status: models.StatusRejected, Reason: models.ReasonRateLimited}
	}
	user, err := m.vault.FindByID(req.UserID)
	if err != nil {
		if errors.Is(err, contracts.ErrNotFound) {
			return models.EnableSecondFactorResult{Status: models.StatusRejected, Reason: models.ReasonUnknownAccount}
		}
		log.Printf("enable-2fa failed: credential lookup error: %v", err)
		return models.EnableSecondFactorResult{Status: models.StatusInternalError}
	}

	secret, err := GenerateTOTPSecret(m.issuer, user.Email)
	if err != nil {
		log.Printf("enable-2fa failed: %v", err)
		return models.EnableSecondFactorResult{Status: models.StatusInternalError}
	}
	if err := m.vault.UpdateTOTPSecret(user.UserID, secret.Base32); err != nil {
		log.Printf("enable-2fa failed: secret persist error: %v", err)
		return models.EnableSecondFactorResult{Status: models.StatusInternalError}
	}
	return models.EnableSecondFactorResult{
		Status: models.StatusOK,
		Secret: secret.Base32,
		URI:    secret.URI,
	}
}

// VerifySecondFactor checks a presented code against the user's stored
// secret.
func (m *Manager) VerifySecondFactor(req models.VerifySecondFactorRequest) models.VerifySecondFactorResult {
	if !m.limiter.Allow(req.ClientKey, BucketVerify2FA) {
		return models.VerifySecondFactorResult{Status: models.StatusRejected, Reason: models.ReasonRateLimited}
	}
	user, err := m.vault.FindByID(req.UserID)
	if err != nil {
		if errors.Is(err, contracts.ErrNotFound) {
			return models.VerifySecondFactorResult{Status: models.StatusRejected, Reason: models.ReasonUnknownAccount}
		}
		log.Printf("verify-2fa failed: credential lookup error: %v", err)
		return models.VerifySecondFactorResult{Status: models.StatusInternalError}
	}
	if !user.SecondFactorEnabled() {
		return models.VerifySecondFactorResult{Status: models.StatusRejected, Reason: models.ReasonSecondFactorNotEnabled}
	}
	if !VerifyTOTPCode(req.Code, user.TOTPSecret, m.now()) {
		return models.VerifySecondFactorResult{Status: models.StatusRejected, Reason: models.ReasonInvalidSecondFactor}
	}
	return models.VerifySecondFactorResult{Status: models.StatusOK}
}

// Resolve maps a session token back to the authenticated user identity.
func (m *Manager) Resolve(token string) (int64, bool) {
	return m.sessions.Resolve(token)
}

// Logout invalidates a session token. Idempotent.
func (m *Manager) Logout(token string) {
	m.sessions.Invalidate(token)
}
