package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/alirazi1992/Update3-Ticketing/internal/api/dto"
	"github.com/alirazi1992/Update3-Ticketing/internal/service"
	apperrors "github.com/alirazi1992/Update3-Ticketing/pkg/util"
)

// CategoriesHandler manages the category catalog endpoints. Reads are open
// to every authenticated role; mutations are admin only, guarded by the
// router.
type CategoriesHandler struct {
	service *service.CategoryService
}

// NewCategoriesHandler constructs handler.
func NewCategoriesHandler(categoryService *service.CategoryService) *CategoriesHandler {
	return &CategoriesHandler{service: categoryService}
}

// List GET /categories.
func (h *CategoriesHandler) List(c *fiber.Ctx) error {
	categories, err := h.service.ListAll(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		items = append(items, dto.CategoryFromDomain(&categories[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /categories/:id.
func (h *CategoriesHandler) Get(c *fiber.Ctx) error {
	category, err := h.service.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.CategoryFromDomain(category)})
}

// Create POST /categories.
func (h *CategoriesHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Name) == "" {
		return apperrors.NewValidationError("name required", nil)
	}

	category, err := h.service.Create(c.Context(), service.CategoryInput{
		Name:          req.Name,
		Description:   req.Description,
		Subcategories: req.Subcategories,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.CategoryFromDomain(category)})
}

// Update PUT /categories/:id.
func (h *CategoriesHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	category, err := h.service.Update(c.Context(), c.Params("id"), service.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.CategoryFromDomain(category)})
}

// AddSubcategory POST /categories/:id/subcategories.
func (h *CategoriesHandler) AddSubcategory(c *fiber.Ctx) error {
	var req dto.CreateSubcategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Name) == "" {
		return apperrors.NewValidationError("name required", nil)
	}

	sub, err := h.service.AddSubcategory(c.Context(), c.Params("id"), req.Name)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.SubcategoryFromDomain(sub)})
}

// Delete DELETE /categories/:id. Categories referenced by tickets answer
// with a conflict.
func (h *CategoriesHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
