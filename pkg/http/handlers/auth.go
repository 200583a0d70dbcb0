package handlers

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/oarkflow/xid/wuid"

	"github.com/wattwise/wattwise/pkg/http/requests"
	"github.com/wattwise/wattwise/pkg/libs"
	"github.com/wattwise/wattwise/pkg/models"
	"github.com/wattwise/wattwise/pkg/utils"
)

// Register inserts a new account. This is plain data insertion, not
// authentication logic; the core does not rate-limit it.
func (h *Handler) Register(c *fiber.Ctx) error {
	var req requests.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "invalid request body",
		})
	}
	email := utils.SanitizeInput(strings.TrimSpace(req.Email))
	if email == "" || req.Username == "" || req.Password == "" ||
		req.FirstName == "" || req.LastName == "" || req.PhoneNumber == "" || req.Address == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "All fields are required",
		})
	}
	if err := utils.ValidateEmail(email); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": err.Error(),
		})
	}

	passwordHash, err := libs.HashPassword(req.Password)
	if err != nil {
		log.Printf("register failed: %v", err)
		return internalError(c)
	}
	user := models.UserCredential{
		UserID:       wuid.New().Int64(),
		Email:        email,
		PasswordHash: passwordHash,
	}
	if err := h.Vault.CreateUser(user); err != nil {
		log.Printf("register failed: %v", err)
		return internalError(c)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"userId":  user.UserID,
	})
}

// Login runs the credential (+ optional TOTP) flow and sets the session
// cookie on full authentication.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req requests.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "invalid request body",
		})
	}

	result := h.Auth.Login(models.LoginRequest{
		Email:     strings.TrimSpace(req.Email),
		Password:  req.Password,
		Code:      strings.TrimSpace(req.Code),
		ClientKey: utils.GetClientIP(c),
	})

	switch result.Status {
	case models.StatusAuthenticated:
		c.Cookie(utils.GetCookie(h.Config.EnableHTTPS, h.Config.Environment,
			h.Config.SessionName, result.Token, int(h.Config.SessionTimeout.Seconds())))
		return c.JSON(fiber.Map{
			"message": "Authentication successful",
			"userId":  result.UserID,
		})
	case models.StatusSecondFactorRequired:
		// password accepted; the caller must retry with a code
		return c.JSON(fiber.Map{
			"status":  result.Status.String(),
			"message": "A second-factor code is required to complete login",
		})
	case models.StatusRejected:
		return c.Status(rejectionStatus(result.Reason)).JSON(fiber.Map{
			"message": result.Reason,
		})
	default:
		return internalError(c)
	}
}

// Logout invalidates the caller's session and clears the cookie.
func (h *Handler) Logout(c *fiber.Ctx) error {
	token, _ := c.Locals("sessionToken").(string)
	h.Auth.Logout(token)
	c.Cookie(utils.ExpiredCookie(h.Config.SessionName))
	return c.JSON(fiber.Map{"message": "Logged out"})
}
