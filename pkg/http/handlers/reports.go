package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) MonthlyConsumption(c *fiber.Ctx) error {
	results, err := h.Reports.MonthlyConsumption()
	if err != nil {
		log.Printf("monthly consumption query failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error retrieving monthly consumption data",
		})
	}
	return c.JSON(results)
}

func (h *Handler) YearlyConsumption(c *fiber.Ctx) error {
	results, err := h.Reports.YearlyConsumption()
	if err != nil {
		log.Printf("yearly consumption query failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error retrieving yearly consumption data",
		})
	}
	return c.JSON(results)
}

func (h *Handler) Tips(c *fiber.Ctx) error {
	tips, err := h.Reports.Tips()
	if err != nil {
		log.Printf("tips generation failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error generating tips",
		})
	}
	return c.JSON(tips)
}
