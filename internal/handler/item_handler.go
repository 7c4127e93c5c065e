package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"fims/internal/errors"
	"fims/internal/model"
	"fims/internal/service"
)

// ItemHandler serves the public catalog.
type ItemHandler struct {
	catalogService service.CatalogService
}

// NewItemHandler creates a new item handler.
func NewItemHandler(catalogService service.CatalogService) *ItemHandler {
	return &ItemHandler{catalogService: catalogService}
}

// ItemFields are the mutable columns of a catalog item.
type ItemFields struct {
	Name     string  `json:"name" validate:"required" example:"Denim"`
	Quantity int     `json:"quantity" example:"150"`
	Category string  `json:"category" example:"Cotton"`
	Price    float64 `json:"price" example:"12.5"`
}

func (f ItemFields) toModel(itemID int64) *model.Item {
	return &model.Item{
		ItemID:   itemID,
		Name:     f.Name,
		Quantity: f.Quantity,
		Category: f.Category,
		Price:    f.Price,
	}
}

// ItemRequest represents a catalog item in a request body. item_id is the
// caller supplied key; 0 is a valid id but the field must be present.
type ItemRequest struct {
	ItemID *int64 `json:"item_id" validate:"required" example:"7"`
	ItemFields
}

func (r ItemRequest) toModel() *model.Item {
	return r.ItemFields.toModel(*r.ItemID)
}

// CreateItem godoc
// @Summary Add or replace a catalog item
// @Tags items
// @Accept json
// @Produce json
// @Param request body ItemRequest true "Item"
// @Success 201 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /items [post]
func (h *ItemHandler) CreateItem(c echo.Context) error {
	var req ItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	message, err := h.catalogService.CreateItem(c.Request().Context(), req.toModel())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, MessageResponse{Message: message})
}

// ListItems godoc
// @Summary List the catalog
// @Tags items
// @Produce json
// @Success 200 {array} model.Item
// @Failure 500 {object} errors.ErrorResponse
// @Router /items [get]
func (h *ItemHandler) ListItems(c echo.Context) error {
	items, err := h.catalogService.ListItems(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	if items == nil {
		items = []model.Item{}
	}
	return c.JSON(http.StatusOK, items)
}

// GetItem godoc
// @Summary Get a catalog item
// @Tags items
// @Produce json
// @Param id path int true "Item ID"
// @Success 200 {object} model.Item
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /items/{id} [get]
func (h *ItemHandler) GetItem(c echo.Context) error {
	itemID, err := itemIDParam(c)
	if err != nil {
		return err
	}

	item, err := h.catalogService.GetItem(c.Request().Context(), itemID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, item)
}

func itemIDParam(c echo.Context) (int64, error) {
	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid item ID",
			Code:  "INVALID_ITEM_ID",
		})
	}
	return itemID, nil
}
