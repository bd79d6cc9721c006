package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/SAIMANIDEEP29/donor-network/internal/domain"
	"github.com/SAIMANIDEEP29/donor-network/internal/middleware"
	"github.com/SAIMANIDEEP29/donor-network/internal/service/bloodbank"
)

const maxLicenseDocSize = 10 << 20 // 10 MB

type BloodBankHandler struct {
	bloodBankService bloodbank.Service
}

func NewBloodBankHandler(bloodBankService bloodbank.Service) *BloodBankHandler {
	return &BloodBankHandler{bloodBankService: bloodBankService}
}

func (h *BloodBankHandler) List(c *fiber.Ctx) error {
	filter := domain.BloodBankSearchFilter{
		City:     c.Query("city"),
		District: c.Query("district"),
	}

	result, err := h.bloodBankService.ListVerified(c.Context(), filter, getPaginationParams(c))
	if err != nil {
		return err
	}

	return c.JSON(result)
}

func (h *BloodBankHandler) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid blood bank ID")
	}

	bank, err := h.bloodBankService.GetByID(c.Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(bank)
}

func (h *BloodBankHandler) GetMine(c *fiber.Ctx) error {
	bank, err := h.bloodBankService.GetMine(c.Context(), middleware.GetCurrentUserID(c))
	if err != nil {
		return err
	}

	return c.JSON(bank)
}

func (h *BloodBankHandler) UpdateInventory(c *fiber.Ctx) error {
	var input domain.UpsertInventoryInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	inventory, err := h.bloodBankService.UpsertInventory(c.Context(), middleware.GetCurrentUserID(c), &input)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"inventory": inventory})
}

func (h *BloodBankHandler) UploadLicenseDoc(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("document")
	if err != nil {
		return middleware.BadRequest("License document file is required")
	}
	if fileHeader.Size > maxLicenseDocSize {
		return middleware.BadRequest("License document exceeds the 10 MB limit")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return middleware.BadRequest("Could not read uploaded file")
	}
	defer file.Close()

	objectKey, err := h.bloodBankService.UploadLicenseDoc(c.Context(), middleware.GetCurrentUserID(c), fileHeader.Filename, fileHeader.Size, file)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"object_key": objectKey,
		"message":    "License document uploaded",
	})
}

func (h *BloodBankHandler) GetLicenseDoc(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid blood bank ID")
	}

	url, err := h.bloodBankService.LicenseDocURL(c.Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"url": url})
}

func (h *BloodBankHandler) Verify(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid blood bank ID")
	}

	var input struct {
		Verified bool `json:"verified"`
	}
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	bank, err := h.bloodBankService.Verify(c.Context(), middleware.GetCurrentUserID(c), id, input.Verified)
	if err != nil {
		return err
	}

	return c.JSON(bank)
}
