package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/donation-service/internal/api/dto"
	"github.com/spec-kit/donation-service/internal/auth"
	"github.com/spec-kit/donation-service/internal/domain"
	"github.com/spec-kit/donation-service/internal/service"
	apperrors "github.com/spec-kit/donation-service/pkg/util"
)

// ReceiverHandler exposes the receiver-facing endpoints.
type ReceiverHandler struct {
	receivers *service.ReceiverService
	accounts  *service.AccountService
	validate  *validator.Validate
}

// NewReceiverHandler constructs handler.
func NewReceiverHandler(receivers *service.ReceiverService, accounts *service.AccountService) *ReceiverHandler {
	return &ReceiverHandler{receivers: receivers, accounts: accounts, validate: validator.New()}
}

// AddPixKey handles POST /receiver/pix_keys.
func (h *ReceiverHandler) AddPixKey(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.PixKeyRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := h.validate.Struct(req); err != nil {
		return apperrors.NewValidationError("invalid pix key payload", validationDetails(err))
	}

	pix, err := h.receivers.AddPixKey(c.Context(), identity, req.Key, domain.PixKeyType(req.KeyType))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": dto.PixKeyResponse{
			ID:        pix.ID,
			Key:       pix.Key,
			KeyType:   string(pix.KeyType),
			CreatedAt: pix.CreatedAt,
		},
	})
}

// DeletePixKey handles DELETE /receiver/pix_keys.
func (h *ReceiverHandler) DeletePixKey(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.PixKeyRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := h.validate.Struct(req); err != nil {
		return apperrors.NewValidationError("invalid pix key payload", validationDetails(err))
	}

	if err := h.receivers.DeletePixKey(c.Context(), identity, req.Key, domain.PixKeyType(req.KeyType)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

// ListPixKeys handles GET /receiver/pix_keys.
func (h *ReceiverHandler) ListPixKeys(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	keys, err := h.receivers.ListPixKeys(c.Context(), identity)
	if err != nil {
		return err
	}

	out := make([]dto.PixKeyResponse, 0, len(keys))
	for _, pix := range keys {
		out = append(out, dto.PixKeyResponse{
			ID:        pix.ID,
			Key:       pix.Key,
			KeyType:   string(pix.KeyType),
			CreatedAt: pix.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"pix_keys": out}})
}

// CreateProduct handles POST /receiver/products.
func (h *ReceiverHandler) CreateProduct(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := h.validate.Struct(req); err != nil {
		return apperrors.NewValidationError("invalid product payload", validationDetails(err))
	}

	product := &domain.Product{
		CauseID:     req.CauseID,
		Name:        req.Name,
		Description: req.Description,
		Value:       req.Value,
	}
	if err := h.receivers.CreateProduct(c.Context(), identity, product); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": dto.ProductResponse{
			ID:          product.ID,
			CauseID:     product.CauseID,
			Name:        product.Name,
			Description: product.Description,
			Value:       product.Value,
		},
	})
}

// UpdateProduct handles PUT /receiver/products/:productID.
func (h *ReceiverHandler) UpdateProduct(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	productID, err := parseID(c, "productID")
	if err != nil {
		return err
	}

	var req dto.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := h.validate.Struct(req); err != nil {
		return apperrors.NewValidationError("invalid product payload", validationDetails(err))
	}

	product := &domain.Product{
		ID:          productID,
		CauseID:     req.CauseID,
		Name:        req.Name,
		Description: req.Description,
		Value:       req.Value,
	}
	if err := h.receivers.UpdateProduct(c.Context(), identity, product); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": dto.ProductResponse{
			ID:          product.ID,
			CauseID:     product.CauseID,
			Name:        product.Name,
			Description: product.Description,
			Value:       product.Value,
		},
	})
}

// DeleteProduct handles DELETE /receiver/products/:productID.
func (h *ReceiverHandler) DeleteProduct(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	productID, err := parseID(c, "productID")
	if err != nil {
		return err
	}

	if err := h.receivers.DeleteProduct(c.Context(), identity, productID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

// Deactivate handles POST /receiver/deactivate.
func (h *ReceiverHandler) Deactivate(c *fiber.Ctx) error {
	return deactivate(c, h.validate, h.accounts, domain.RoleReceiver)
}
