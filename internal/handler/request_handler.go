package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/SAIMANIDEEP29/donor-network/internal/domain"
	"github.com/SAIMANIDEEP29/donor-network/internal/middleware"
	"github.com/SAIMANIDEEP29/donor-network/internal/service/request"
)

type RequestHandler struct {
	requestService request.Service
}

func NewRequestHandler(requestService request.Service) *RequestHandler {
	return &RequestHandler{requestService: requestService}
}

func (h *RequestHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateRequestInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	req, err := h.requestService.Create(c.Context(), middleware.GetCurrentUserID(c), &input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(req)
}

func (h *RequestHandler) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid request ID")
	}

	req, err := h.requestService.GetByID(c.Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(req)
}

func (h *RequestHandler) List(c *fiber.Ctx) error {
	var filter domain.RequestListFilter
	if status := c.Query("status"); status != "" {
		s := domain.RequestStatus(status)
		filter.Status = &s
	}
	if group := c.Query("blood_group"); group != "" {
		bg := domain.BloodGroup(group)
		filter.BloodGroup = &bg
	}

	result, err := h.requestService.List(c.Context(), filter, getPaginationParams(c))
	if err != nil {
		return err
	}

	return c.JSON(result)
}

func (h *RequestHandler) ListMine(c *fiber.Ctx) error {
	result, err := h.requestService.ListMine(c.Context(), middleware.GetCurrentUserID(c), getPaginationParams(c))
	if err != nil {
		return err
	}

	return c.JSON(result)
}

// Feed returns open requests the authenticated donor's blood group can
// supply.
func (h *RequestHandler) Feed(c *fiber.Ctx) error {
	requests, err := h.requestService.ListOpenForDonor(c.Context(), middleware.GetCurrentUserID(c))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"requests": requests})
}

// CheckEligibility runs the advisory gate without recording anything, so the
// client can disable the accept button with a reason.
func (h *RequestHandler) CheckEligibility(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid request ID")
	}

	if err := h.requestService.CheckEligibility(c.Context(), id, middleware.GetCurrentUserID(c)); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"eligible": true})
}

func (h *RequestHandler) Accept(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid request ID")
	}

	acceptance, err := h.requestService.Accept(c.Context(), id, middleware.GetCurrentUserID(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(acceptance)
}

func (h *RequestHandler) ListAcceptances(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid request ID")
	}

	acceptances, err := h.requestService.ListAcceptances(c.Context(), id, middleware.GetCurrentUserID(c), middleware.IsAdmin(c))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"acceptances": acceptances})
}

func (h *RequestHandler) ListMyAcceptances(c *fiber.Ctx) error {
	result, err := h.requestService.ListMyAcceptances(c.Context(), middleware.GetCurrentUserID(c), getPaginationParams(c))
	if err != nil {
		return err
	}

	return c.JSON(result)
}

func (h *RequestHandler) UpdateAcceptanceStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid acceptance ID")
	}

	var input domain.UpdateAcceptanceStatusInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	acceptance, err := h.requestService.UpdateAcceptanceStatus(c.Context(), id, middleware.GetCurrentUserID(c), middleware.IsAdmin(c), input.Status)
	if err != nil {
		return err
	}

	return c.JSON(acceptance)
}

func (h *RequestHandler) MarkAccepted(c *fiber.Ctx) error {
	return h.transition(c, h.requestService.MarkAccepted)
}

func (h *RequestHandler) MarkFulfilled(c *fiber.Ctx) error {
	return h.transition(c, h.requestService.MarkFulfilled)
}

func (h *RequestHandler) Cancel(c *fiber.Ctx) error {
	return h.transition(c, h.requestService.Cancel)
}

func (h *RequestHandler) transition(c *fiber.Ctx, fn func(ctx context.Context, requestID, callerID uuid.UUID, isAdmin bool) (*domain.BloodRequest, error)) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid request ID")
	}

	req, err := fn(c.Context(), id, middleware.GetCurrentUserID(c), middleware.IsAdmin(c))
	if err != nil {
		return err
	}

	return c.JSON(req)
}
