package requests

type VerifyTwoFARequest struct {
	Code string `json:"token" form:"token"`
}
