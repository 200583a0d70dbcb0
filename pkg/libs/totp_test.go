package libs

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTOTPSecret(t *testing.T) {
	secret, err := GenerateTOTPSecret("WattWise", "u@x.com")
	require.NoError(t, err)

	assert.GreaterOrEqual(t, len(secret.Raw), 20)
	assert.NotEmpty(t, secret.Base32)
	assert.True(t, strings.HasPrefix(secret.URI, "otpauth://totp/"))
	assert.Contains(t, secret.URI, "issuer=WattWise")
	assert.Contains(t, secret.URI, "algorithm=SHA1")
	assert.Contains(t, secret.URI, "digits=6")
	assert.Contains(t, secret.URI, "period=30")
}

func TestGenerateTOTPSecretFreshPerCall(t *testing.T) {
	s1, err := GenerateTOTPSecret("WattWise", "u@x.com")
	require.NoError(t, err)
	s2, err := GenerateTOTPSecret("WattWise", "u@x.com")
	require.NoError(t, err)
	assert.NotEqual(t, s1.Base32, s2.Base32)
}

func TestVerifyTOTPCodeDriftWindow(t *testing.T) {
	secret, err := GenerateTOTPSecret("WattWise", "u@x.com")
	require.NoError(t, err)

	// last second of a 30s step, so +31s lands two steps away
	base := time.Date(2026, 3, 1, 10, 0, 59, 0, time.UTC)
	code, err := CurrentTOTPCode(secret.Base32, base)
	require.NoError(t, err)
	require.Len(t, code, 6)

	assert.True(t, VerifyTOTPCode(code, secret.Base32, base))
	assert.True(t, VerifyTOTPCode(code, secret.Base32, base.Add(15*time.Second)))
	assert.True(t, VerifyTOTPCode(code, secret.Base32, base.Add(-30*time.Second)))
	assert.True(t, VerifyTOTPCode(code, secret.Base32, base.Add(30*time.Second)))

	assert.False(t, VerifyTOTPCode(code, secret.Base32, base.Add(31*time.Second)))
	assert.False(t, VerifyTOTPCode(code, secret.Base32, base.Add(91*time.Second)))
}

func TestVerifyTOTPCodeRejectsMalformed(t *testing.T) {
	secret, err := GenerateTOTPSecret("WattWise", "u@x.com")
	require.NoError(t, err)
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	assert.False(t, VerifyTOTPCode("", secret.Base32, now))
	assert.False(t, VerifyTOTPCode("12345", secret.Base32, now))
	assert.False(t, VerifyTOTPCode("1234567", secret.Base32, now))
	assert.False(t, VerifyTOTPCode("12a456", secret.Base32, now))
}

func TestVerifyTOTPCodeWrongStep(t *testing.T) {
	secret, err := GenerateTOTPSecret("WattWise", "u@x.com")
	require.NoError(t, err)
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	stale, err := CurrentTOTPCode(secret.Base32, now.Add(-10*time.Minute))
	require.NoError(t, err)
	assert.False(t, VerifyTOTPCode(stale, secret.Base32, now))
}
