package requests

type RegisterRequest struct {
	Email       string `json:"email" form:"email"`
	Username    string `json:"username" form:"username"`
	Password    string `json:"password" form:"password"`
	FirstName   string `json:"firstName" form:"firstName"`
	LastName    string `json:"lastName" form:"lastName"`
	PhoneNumber string `json:"phoneNumber" form:"phoneNumber"`
	Address     string `json:"address" form:"address"`
}
