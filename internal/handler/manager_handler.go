package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"fims/internal/service"
)

// ManagerHandler exposes the inventory manager's catalog mutations.
type ManagerHandler struct {
	accountService service.AccountService
}

// NewManagerHandler creates a new manager handler.
func NewManagerHandler(accountService service.AccountService) *ManagerHandler {
	return &ManagerHandler{accountService: accountService}
}

// ManagerItemRequest is a new item added on behalf of username.
type ManagerItemRequest struct {
	Username string `json:"username" validate:"required"`
	ItemRequest
}

// ManagerItemUpdateRequest replaces the item named by the path on behalf of username.
type ManagerItemUpdateRequest struct {
	Username string `json:"username" validate:"required"`
	ItemFields
}

// AddItem godoc
// @Summary Add a catalog item as an inventory manager
// @Tags manager
// @Accept json
// @Produce json
// @Param request body ManagerItemRequest true "Item"
// @Success 201 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /manager/items [post]
func (h *ManagerHandler) AddItem(c echo.Context) error {
	var req ManagerItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	message, err := h.accountService.AddItem(c.Request().Context(), req.Username, req.toModel())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, MessageResponse{Message: message})
}

// UpdateItem godoc
// @Summary Replace a catalog item as an inventory manager
// @Tags manager
// @Accept json
// @Produce json
// @Param id path int true "Item ID"
// @Param request body ManagerItemUpdateRequest true "Item"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /manager/items/{id} [put]
func (h *ManagerHandler) UpdateItem(c echo.Context) error {
	itemID, err := itemIDParam(c)
	if err != nil {
		return err
	}
	var req ManagerItemUpdateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	item := req.toModel(itemID)

	message, err := h.accountService.UpdateItem(c.Request().Context(), req.Username, item)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: message})
}

// DeleteItem godoc
// @Summary Delete a catalog item as an inventory manager
// @Tags manager
// @Produce json
// @Param id path int true "Item ID"
// @Param username query string true "Acting inventory manager"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /manager/items/{id} [delete]
func (h *ManagerHandler) DeleteItem(c echo.Context) error {
	itemID, err := itemIDParam(c)
	if err != nil {
		return err
	}

	message, err := h.accountService.DeleteItem(c.Request().Context(), c.QueryParam("username"), itemID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: message})
}
