package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/SAIMANIDEEP29/donor-network/internal/middleware"
	"github.com/SAIMANIDEEP29/donor-network/internal/service/donation"
)

type DonationHandler struct {
	donationService donation.Service
}

func NewDonationHandler(donationService donation.Service) *DonationHandler {
	return &DonationHandler{donationService: donationService}
}

func (h *DonationHandler) ListMine(c *fiber.Ctx) error {
	result, err := h.donationService.ListMine(c.Context(), middleware.GetCurrentUserID(c), getPaginationParams(c))
	if err != nil {
		return err
	}

	return c.JSON(result)
}
