package models

import "time"

// UserCredential is one account's credential record.
type UserCredential struct {
	UserID       int64     `db:"user_id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	TOTPSecret   string    `db:"totp_secret"` // base32, empty when 2FA disabled
	DeviceID     string    `db:"device_id"`
	CreatedAt    time.Time `db:"created_at"`
}

func (u UserCredential) SecondFactorEnabled() bool {
	return u.TOTPSecret != ""
}

// WashSession is one metered appliance run, owned by the report engine.
type WashSession struct {
	SessionID           int64     `db:"session_id"`
	UserID              int64     `db:"user_id"`
	WashTimestamp       time.Time `db:"wash_timestamp"`
	ElectricConsumption float64   `db:"electric_consumption"`
	WaterConsumption    float64   `db:"water_consumption"`
	TotalCost           float64   `db:"total_cost"`
}

// ConsumptionSummary aggregates consumption and cost over one period
// (a month or a year).
type ConsumptionSummary struct {
	Period                   string  `db:"period" json:"period"`
	TotalElectricConsumption float64 `db:"total_electric_consumption" json:"totalElectricConsumption"`
	TotalWaterConsumption    float64 `db:"total_water_consumption" json:"totalWaterConsumption"`
	TotalCost                float64 `db:"total_cost" json:"totalCost"`
}

// Stable reason codes reported to callers. "invalid credentials" covers
// both unknown accounts and wrong passwords so account existence never
// leaks.
const (
	ReasonInvalidCredentials     = "invalid credentials"
	ReasonRateLimited            = "rate limited"
	ReasonInvalidSecondFactor    = "invalid second-factor code"
	ReasonSecondFactorNotEnabled = "second factor not enabled"
	ReasonUnknownAccount         = "unknown account"
	ReasonMalformedInput         = "malformed input"
)

// Status tags the outcome of an authentication operation.
type Status int

const (
	StatusOK Status = iota
	StatusAuthenticated
	StatusSecondFactorRequired
	StatusRejected
	StatusInternalError
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusAuthenticated:
		return "authenticated"
	case StatusSecondFactorRequired:
		return "second_factor_required"
	case StatusRejected:
		return "rejected"
	case StatusInternalError:
		return "internal_error"
	}
	return "unknown"
}

// LoginRequest carries one login attempt. Code is optional; ClientKey is
// the client network identity used for rate limiting.
type LoginRequest struct {
	Email     string
	Password  string
	Code      string
	ClientKey string
}

type LoginResult struct {
	Status Status
	Token  string
	UserID int64
	Reason string
}

type EnableSecondFactorRequest struct {
	UserID    int64
	ClientKey string
}

// EnableSecondFactorResult returns the freshly provisioned secret. The
// secret is persisted before it is handed back.
type EnableSecondFactorResult struct {
	Status Status
	Secret string // base32
	URI    string // otpauth:// provisioning URI
	Reason string
}

type VerifySecondFactorRequest struct {
	UserID    int64
	Code      string
	ClientKey string
}

type VerifySecondFactorResult struct {
	Status Status
	Reason string
}
