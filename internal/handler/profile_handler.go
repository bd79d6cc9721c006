package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/SAIMANIDEEP29/donor-network/internal/domain"
	"github.com/SAIMANIDEEP29/donor-network/internal/middleware"
	"github.com/SAIMANIDEEP29/donor-network/internal/service/profile"
)

type ProfileHandler struct {
	profileService profile.Service
}

func NewProfileHandler(profileService profile.Service) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

func (h *ProfileHandler) GetMe(c *fiber.Ctx) error {
	p, err := h.profileService.GetByID(c.Context(), middleware.GetCurrentUserID(c))
	if err != nil {
		return err
	}

	return c.JSON(p)
}

func (h *ProfileHandler) UpdateMe(c *fiber.Ctx) error {
	var input domain.UpdateProfileInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	p, err := h.profileService.Update(c.Context(), middleware.GetCurrentUserID(c), &input)
	if err != nil {
		return err
	}

	return c.JSON(p)
}

func (h *ProfileHandler) SetAvailability(c *fiber.Ctx) error {
	var input struct {
		IsAvailable bool `json:"is_available"`
	}
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	p, err := h.profileService.SetAvailability(c.Context(), middleware.GetCurrentUserID(c), input.IsAvailable)
	if err != nil {
		return err
	}

	return c.JSON(p)
}

func (h *ProfileHandler) GetEligibility(c *fiber.Ctx) error {
	status, err := h.profileService.Eligibility(c.Context(), middleware.GetCurrentUserID(c))
	if err != nil {
		return err
	}

	return c.JSON(status)
}

func (h *ProfileHandler) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid profile ID")
	}

	p, err := h.profileService.GetByID(c.Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(p)
}

func (h *ProfileHandler) SearchDonors(c *fiber.Ctx) error {
	var filter domain.DonorSearchFilter
	if group := c.Query("blood_group"); group != "" {
		bg := domain.BloodGroup(group)
		filter.BloodGroup = &bg
	}
	filter.City = c.Query("city")
	filter.District = c.Query("district")

	result, err := h.profileService.SearchDonors(c.Context(), filter, getPaginationParams(c))
	if err != nil {
		return err
	}

	return c.JSON(result)
}

func getPaginationParams(c *fiber.Ctx) domain.PaginationParams {
	params := domain.DefaultPagination()

	if page := c.QueryInt("page", 1); page > 0 {
		params.Page = page
	}
	if pageSize := c.QueryInt("page_size", 20); pageSize > 0 {
		params.PageSize = pageSize
	}

	params.Validate()
	return params
}
