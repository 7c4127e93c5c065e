package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"fims/internal/service"
)

// SupplierHandler exposes supplier restocking.
type SupplierHandler struct {
	accountService service.AccountService
}

// NewSupplierHandler creates a new supplier handler.
func NewSupplierHandler(accountService service.AccountService) *SupplierHandler {
	return &SupplierHandler{accountService: accountService}
}

// OrderRequest represents a supplier restock order.
type OrderRequest struct {
	Username string `json:"username" validate:"required"`
	ItemID   *int64 `json:"item_id" validate:"required" example:"7"`
	Quantity int    `json:"quantity" example:"10"`
}

// Order godoc
// @Summary Restock a catalog item
// @Tags supplier
// @Accept json
// @Produce json
// @Param request body OrderRequest true "Order"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /supplier/order [post]
func (h *SupplierHandler) Order(c echo.Context) error {
	var req OrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	message, err := h.accountService.OrderFabric(c.Request().Context(), req.Username, *req.ItemID, req.Quantity)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: message})
}
