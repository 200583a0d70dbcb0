package utils

var (
	HealthURI             = "/health"
	RegisterURI           = "/register"
	LoginURI              = "/login"
	LogoutURI             = "/logout"
	Enable2FAURI          = "/enable-2fa"
	Verify2FAURI          = "/verify-2fa"
	MonthlyConsumptionURI = "/monthly-consumption"
	YearlyConsumptionURI  = "/yearly-consumption"
	TipsURI               = "/tips"
)
