package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/donation-service/internal/api/dto"
	"github.com/spec-kit/donation-service/internal/auth"
	"github.com/spec-kit/donation-service/internal/domain"
	"github.com/spec-kit/donation-service/internal/repository"
	"github.com/spec-kit/donation-service/internal/service"
	apperrors "github.com/spec-kit/donation-service/pkg/util"
)

// DonorHandler exposes the donor-facing endpoints.
type DonorHandler struct {
	donors   *service.DonorService
	accounts *service.AccountService
	validate *validator.Validate
}

// NewDonorHandler constructs handler.
func NewDonorHandler(donors *service.DonorService, accounts *service.AccountService) *DonorHandler {
	return &DonorHandler{donors: donors, accounts: accounts, validate: validator.New()}
}

// ListReceivers handles POST /donator/list_receivers.
func (h *DonorHandler) ListReceivers(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.ListReceiversRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(http.StatusBadRequest, "invalid payload")
		}
	}
	if err := h.validate.Struct(req); err != nil {
		return apperrors.NewValidationError("invalid listing payload", validationDetails(err))
	}

	sort := repository.ReceiverSort(req.Sort)
	if req.Sort == "" {
		sort = repository.ReceiverSortNameAsc
	}

	receivers, err := h.donors.ListReceivers(c.Context(), identity, sort)
	if err != nil {
		return err
	}

	out := make([]dto.ReceiverResponse, 0, len(receivers))
	for _, rec := range receivers {
		out = append(out, dto.ReceiverResponse{
			UserID:      rec.UserID,
			Name:        rec.Name,
			Email:       rec.Email,
			Document:    rec.Document,
			PostalCode:  rec.PostalCode,
			Description: rec.Description,
		})
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"receivers": out}})
}

// Favorite handles POST /donator/favorite/:causeID.
func (h *DonorHandler) Favorite(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	causeID, err := parseID(c, "causeID")
	if err != nil {
		return err
	}

	if err := h.donors.Favorite(c.Context(), identity, causeID); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{"cause_id": causeID, "favorited": true},
	})
}

// Unfavorite handles DELETE /donator/favorite/:causeID.
func (h *DonorHandler) Unfavorite(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	causeID, err := parseID(c, "causeID")
	if err != nil {
		return err
	}

	if err := h.donors.Unfavorite(c.Context(), identity, causeID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{"cause_id": causeID, "favorited": false},
	})
}

// ListFavorites handles GET /donator/favorites.
func (h *DonorHandler) ListFavorites(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	favorites, err := h.donors.ListFavorites(c.Context(), identity)
	if err != nil {
		return err
	}

	out := make([]dto.FavoriteResponse, 0, len(favorites))
	for _, fav := range favorites {
		out = append(out, dto.FavoriteResponse{CauseID: fav.CauseID})
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"favorites": out}})
}

// ListCauseProducts handles GET /donator/causes/:causeID/products.
func (h *DonorHandler) ListCauseProducts(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	causeID, err := parseID(c, "causeID")
	if err != nil {
		return err
	}

	products, err := h.donors.ListCauseProducts(c.Context(), identity, causeID)
	if err != nil {
		return err
	}

	out := make([]dto.ProductResponse, 0, len(products))
	for _, product := range products {
		out = append(out, dto.ProductResponse{
			ID:          product.ID,
			CauseID:     product.CauseID,
			Name:        product.Name,
			Description: product.Description,
			Value:       product.Value,
		})
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"products": out}})
}

// Deactivate handles POST /donator/deactivate.
func (h *DonorHandler) Deactivate(c *fiber.Ctx) error {
	return deactivate(c, h.validate, h.accounts, domain.RoleDonor)
}

// deactivate is shared between the donor and receiver deactivation routes.
func deactivate(c *fiber.Ctx, validate *validator.Validate, accounts *service.AccountService, kind domain.Role) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.DeactivateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return apperrors.NewValidationError("invalid deactivation payload", validationDetails(err))
	}

	if err := accounts.Deactivate(c.Context(), identity, req.UserID, kind); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{"user_id": req.UserID, "active": false},
	})
}

func parseID(c *fiber.Ctx, param string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(param), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid "+param, nil)
	}
	return id, nil
}
