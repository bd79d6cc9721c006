package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/SAIMANIDEEP29/donor-network/internal/domain"
	"github.com/SAIMANIDEEP29/donor-network/internal/middleware"
	"github.com/SAIMANIDEEP29/donor-network/internal/service/admin"
)

type AdminHandler struct {
	adminService admin.Service
}

func NewAdminHandler(adminService admin.Service) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	result, err := h.adminService.ListUsers(c.Context(), getPaginationParams(c))
	if err != nil {
		return err
	}

	return c.JSON(result)
}

func (h *AdminHandler) AssignRole(c *fiber.Ctx) error {
	var input domain.AssignRoleInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	if err := h.adminService.AssignRole(c.Context(), middleware.GetCurrentUserID(c), &input); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Role assigned"})
}

func (h *AdminHandler) SetDonorAvailability(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid user ID")
	}

	var input struct {
		IsAvailable bool `json:"is_available"`
	}
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	if err := h.adminService.SetDonorAvailability(c.Context(), middleware.GetCurrentUserID(c), userID, input.IsAvailable); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Availability updated"})
}

func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	stats, err := h.adminService.DashboardStats(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(stats)
}

func (h *AdminHandler) AuditTrail(c *fiber.Ctx) error {
	result, err := h.adminService.AuditTrail(c.Context(), getPaginationParams(c))
	if err != nil {
		return err
	}

	return c.JSON(result)
}
