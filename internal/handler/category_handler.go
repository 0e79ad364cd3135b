package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"timetrack/internal/service"
)

// CategoryHandler handles category endpoints.
type CategoryHandler struct {
	categoryService service.CategoryService
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// AddCategoryRequest represents a category creation request.
type AddCategoryRequest struct {
	Name    string `json:"name" validate:"max=255"`
	Start   *bool  `json:"start"`
	Code    string `json:"code" validate:"max=255"`
	Context string `json:"context" validate:"max=1024"`
}

// ModifyCategoryRequest represents a category update. Absent fields are left alone.
type ModifyCategoryRequest struct {
	ID      string  `json:"id"`
	Name    *string `json:"name" validate:"omitempty,max=255"`
	Start   *bool   `json:"start"`
	Code    *string `json:"code" validate:"omitempty,max=255"`
	Context *string `json:"context" validate:"omitempty,max=1024"`
}

var categoryMessages = map[string]string{
	"Name":    "Category name is too long.",
	"Code":    "Category code is too long.",
	"Context": "Category context is too long.",
}

// Add godoc
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Security JWTAuth
// @Param request body AddCategoryRequest true "Category"
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /categories/add [post]
func (h *CategoryHandler) Add(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	var req AddCategoryRequest
	if err := bindRequest(c, &req, categoryMessages); err != nil {
		return err
	}

	if _, err := h.categoryService.Create(c.Request().Context(), userID, service.CategoryInput{
		Name:    req.Name,
		Start:   req.Start,
		Code:    req.Code,
		Context: req.Context,
	}); err != nil {
		return fail(err)
	}
	return success(c, "Category created")
}

// Remove godoc
// @Summary Delete a category
// @Tags categories
// @Produce json
// @Security JWTAuth
// @Param id query string true "Category ID"
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /categories/remove [delete]
func (h *CategoryHandler) Remove(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	id, ok := parseID(c.QueryParam("id"))
	if !ok {
		return invalid("No category specified.")
	}

	if err := h.categoryService.Delete(c.Request().Context(), userID, id); err != nil {
		return fail(err)
	}
	return success(c, "Category removed")
}

// Modify godoc
// @Summary Update a category
// @Tags categories
// @Accept json
// @Produce json
// @Security JWTAuth
// @Param request body ModifyCategoryRequest true "Changes"
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /categories/modify [put]
func (h *CategoryHandler) Modify(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	var req ModifyCategoryRequest
	if err := bindRequest(c, &req, categoryMessages); err != nil {
		return err
	}
	id, ok := parseID(req.ID)
	if !ok {
		return invalid("No category specified.")
	}

	if _, err := h.categoryService.Modify(c.Request().Context(), userID, id, service.CategoryChanges{
		Name:    req.Name,
		Start:   req.Start,
		Code:    req.Code,
		Context: req.Context,
	}); err != nil {
		return fail(err)
	}
	return success(c, "Category modified")
}

// List godoc
// @Summary List categories
// @Tags categories
// @Produce json
// @Security JWTAuth
// @Param start query int false "Offset"
// @Param pageSize query int false "Page size"
// @Success 200 {array} model.Category
// @Failure 401 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /categories/list [get]
func (h *CategoryHandler) List(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	categories, err := h.categoryService.List(c.Request().Context(), userID, parsePage(c))
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, categories)
}
