package libs

import (
	"encoding/base32"
	"fmt"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

const (
	totpPeriod     = 30
	totpSkew       = 1
	totpSecretSize = 20
)

// TOTPSecret is a freshly provisioned shared secret.
type TOTPSecret struct {
	Raw    []byte
	Base32 string
	URI    string // otpauth:// provisioning URI
}

// GenerateTOTPSecret mints a new 160-bit shared secret for account under
// issuer, with SHA-1, 6 digits and a 30-second step encoded in the URI.
func GenerateTOTPSecret(issuer, account string) (TOTPSecret, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      issuer,
		AccountName: account,
		SecretSize:  totpSecretSize,
		Period:      totpPeriod,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return TOTPSecret{}, fmt.Errorf("failed to generate TOTP key: %w", err)
	}
	raw, err := base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(key.Secret())
	if err != nil {
		return TOTPSecret{}, fmt.Errorf("failed to decode TOTP secret: %w", err)
	}
	return TOTPSecret{Raw: raw, Base32: key.Secret(), URI: key.URL()}, nil
}

// CurrentTOTPCode derives the 6-digit code for secret at t. Used for test
// fixtures only; callers never send codes to users.
func CurrentTOTPCode(secret string, t time.Time) (string, error) {
	return totp.GenerateCode(secret, t)
}

// VerifyTOTPCode validates a presented code against secret at t, accepting
// the adjacent time steps to tolerate clock drift between the generator
// and the server. Codes that are not exactly 6 digits are rejected; a
// well-formed code for the wrong step is reported the same way as a
// malformed one.
func VerifyTOTPCode(code, secret string, t time.Time) bool {
	if len(code) != 6 {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	ok, err := totp.ValidateCustom(code, secret, t, totp.ValidateOpts{
		Period:    totpPeriod,
		Skew:      totpSkew,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	return err == nil && ok
}
