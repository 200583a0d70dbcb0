package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wattwise/wattwise/pkg/config"
	"github.com/wattwise/wattwise/pkg/contracts"
	"github.com/wattwise/wattwise/pkg/http/middlewares"
	"github.com/wattwise/wattwise/pkg/libs"
	"github.com/wattwise/wattwise/pkg/models"
	"github.com/wattwise/wattwise/pkg/reports"
	"github.com/wattwise/wattwise/pkg/utils"
)

// Handler carries the injected collaborators for all routes. There is no
// process-global state; everything is wired at construction.
type Handler struct {
	Auth    *libs.Manager
	Vault   contracts.Vault
	Reports *reports.Engine
	Config  *config.App
}

func New(auth *libs.Manager, vault contracts.Vault, engine *reports.Engine, cfg *config.App) *Handler {
	return &Handler{Auth: auth, Vault: vault, Reports: engine, Config: cfg}
}

// Setup mounts all routes on router. Second-factor and report routes
// require an authenticated session; registration and login do not.
func Setup(router fiber.Router, h *Handler) {
	router.Get(utils.HealthURI, h.HealthCheck)
	router.Post(utils.RegisterURI, h.Register)
	router.Post(utils.LoginURI, h.Login)

	protected := router.Group("/", middlewares.Verify(h.Auth, h.Config))
	protected.Post(utils.LogoutURI, h.Logout)
	protected.Post(utils.Enable2FAURI, h.EnableTwoFA)
	protected.Post(utils.Verify2FAURI, h.VerifyTwoFA)
	protected.Get(utils.MonthlyConsumptionURI, h.MonthlyConsumption)
	protected.Get(utils.YearlyConsumptionURI, h.YearlyConsumption)
	protected.Get(utils.TipsURI, h.Tips)
}

func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// rejectionStatus maps a stable rejection reason to its HTTP status.
func rejectionStatus(reason string) int {
	switch reason {
	case models.ReasonRateLimited:
		return fiber.StatusTooManyRequests
	case models.ReasonMalformedInput:
		return fiber.StatusBadRequest
	case models.ReasonInvalidCredentials:
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusBadRequest
	}
}

func internalError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "internal server error",
	})
}
