package handlers

import (
	"encoding/base64"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/skip2/go-qrcode"

	"github.com/wattwise/wattwise/pkg/http/requests"
	"github.com/wattwise/wattwise/pkg/models"
	"github.com/wattwise/wattwise/pkg/utils"
)

// EnableTwoFA provisions a fresh TOTP secret for the session's own user.
// The target identity comes from the resolved session, never from the
// request body.
func (h *Handler) EnableTwoFA(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(int64)

	result := h.Auth.EnableSecondFactor(models.EnableSecondFactorRequest{
		UserID:    userID,
		ClientKey: utils.GetClientIP(c),
	})

	switch result.Status {
	case models.StatusOK:
		qrPNG, err := qrcode.Encode(result.URI, qrcode.Medium, 256)
		if err != nil {
			log.Printf("enable-2fa: QR encoding failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Error generating QR code",
			})
		}
		return c.JSON(fiber.Map{
			"secret":     result.Secret,
			"otpauthUrl": result.URI,
			"qrCode":     "data:image/png;base64," + base64.StdEncoding.EncodeToString(qrPNG),
		})
	case models.StatusRejected:
		return c.Status(rejectionStatus(result.Reason)).JSON(fiber.Map{
			"message": result.Reason,
		})
	default:
		return internalError(c)
	}
}

// VerifyTwoFA checks a presented code against the session user's stored
// secret.
func (h *Handler) VerifyTwoFA(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(int64)

	var req requests.VerifyTwoFARequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "invalid request body",
		})
	}

	result := h.Auth.VerifySecondFactor(models.VerifySecondFactorRequest{
		UserID:    userID,
		Code:      req.Code,
		ClientKey: utils.GetClientIP(c),
	})

	switch result.Status {
	case models.StatusOK:
		return c.JSON(fiber.Map{"message": "2FA verified successfully"})
	case models.StatusRejected:
		return c.Status(rejectionStatus(result.Reason)).JSON(fiber.Map{
			"message": result.Reason,
		})
	default:
		return internalError(c)
	}
}
