package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sweetshop/inventory-api/internal/api/metrics"
	"github.com/sweetshop/inventory-api/internal/core/domain"
	"github.com/sweetshop/inventory-api/internal/core/ports"
)

// SweetHandler handles HTTP requests for inventory operations.
type SweetHandler struct {
	service ports.SweetService
}

func NewSweetHandler(service ports.SweetService) *SweetHandler {
	return &SweetHandler{service: service}
}

// Create handles POST /api/sweets.
//
// @Summary      Create a sweet
// @Tags         sweets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createSweetRequest  true  "Sweet details"
// @Success      201   {object}  domain.Sweet
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/sweets [post]
func (h *SweetHandler) Create(c echo.Context) error {
	var req createSweetRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}

	sweet, err := h.service.Create(c.Request().Context(), ports.CreateSweetInput{
		Name:        req.Name,
		Category:    req.Category,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Description: req.Description,
	})
	if err != nil {
		return sweetError(c, err)
	}

	metrics.SweetsCreatedTotal.WithLabelValues(sweet.Category).Inc()
	return c.JSON(http.StatusCreated, sweet)
}

// List handles GET /api/sweets — every sweet, no pagination.
//
// @Summary      List all sweets
// @Tags         sweets
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Sweet
// @Failure      401  {object}  errorResponse
// @Router       /api/sweets [get]
func (h *SweetHandler) List(c echo.Context) error {
	sweets, err := h.service.List(c.Request().Context())
	if err != nil {
		return sweetError(c, err)
	}
	return c.JSON(http.StatusOK, sweets)
}

// Search handles GET /api/sweets/search.
//
// @Summary      Search sweets
// @Tags         sweets
// @Produce      json
// @Security     BearerAuth
// @Param        name      query     string  false  "Name substring (case-insensitive)"
// @Param        category  query     string  false  "Exact category (case-insensitive)"
// @Param        minPrice  query     number  false  "Minimum price (inclusive)"
// @Param        maxPrice  query     number  false  "Maximum price (inclusive)"
// @Success      200  {array}   domain.Sweet
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/sweets/search [get]
func (h *SweetHandler) Search(c echo.Context) error {
	var req searchSweetsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid query"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	sweets, err := h.service.Search(c.Request().Context(), ports.SearchFilter{
		Name:     req.Name,
		Category: req.Category,
		MinPrice: req.MinPrice,
		MaxPrice: req.MaxPrice,
	})
	if err != nil {
		return sweetError(c, err)
	}
	return c.JSON(http.StatusOK, sweets)
}

// Update handles PUT /api/sweets/:id — partial field replace.
//
// @Summary      Update a sweet
// @Tags         sweets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Sweet id"
// @Param        body  body      updateSweetRequest  true  "Fields to update"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/sweets/{id} [put]
func (h *SweetHandler) Update(c echo.Context) error {
	var req updateSweetRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}

	sweet, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.UpdateSweetInput{
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price,
		Quantity: req.Quantity,
	})
	if err != nil {
		return sweetError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Sweet updated successfully",
		"data":    sweet,
	})
}

// Delete handles DELETE /api/sweets/:id (admin only; gated in the router).
//
// @Summary      Delete a sweet
// @Tags         sweets
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Sweet id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/sweets/{id} [delete]
func (h *SweetHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return sweetError(c, err)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Sweet deleted successfully"})
}

// Purchase handles POST /api/sweets/:id/purchase.
//
// @Summary      Purchase a sweet (decrement stock)
// @Tags         sweets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string        true  "Sweet id"
// @Param        body  body      stockRequest  true  "Quantity to purchase"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/sweets/{id}/purchase [post]
func (h *SweetHandler) Purchase(c echo.Context) error {
	var req stockRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}

	sweet, err := h.service.Purchase(c.Request().Context(), c.Param("id"), req.Quantity)
	if err != nil {
		metrics.PurchasesTotal.WithLabelValues("rejected").Inc()
		return sweetError(c, err)
	}

	metrics.PurchasesTotal.WithLabelValues("success").Inc()
	metrics.StockSoldTotal.Add(req.Quantity)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Purchase successful",
		"sweet":   sweet,
	})
}

// Restock handles POST /api/sweets/:id/restock (admin only; gated in the router).
//
// @Summary      Restock a sweet (increment stock)
// @Tags         sweets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string        true  "Sweet id"
// @Param        body  body      stockRequest  true  "Quantity to add"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/sweets/{id}/restock [post]
func (h *SweetHandler) Restock(c echo.Context) error {
	var req stockRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}

	sweet, err := h.service.Restock(c.Request().Context(), c.Param("id"), req.Quantity)
	if err != nil {
		metrics.RestocksTotal.WithLabelValues("rejected").Inc()
		return sweetError(c, err)
	}

	metrics.RestocksTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Sweet restocked successfully",
		"sweet":   sweet,
	})
}

// sweetError maps domain errors from the inventory use cases onto the
// HTTP contract. Anything unrecognized is a 500 with a generic body; the
// real cause is logged by the global error handler path only when the
// handler returns it, so log-and-mask here instead.
func sweetError(c echo.Context, err error) error {
	var verr domain.ValidationError
	var stockErr *domain.InsufficientStockError

	switch {
	case errors.As(err, &verr):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: verr.Error()})
	case errors.As(err, &stockErr):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: stockErr.Error()})
	case errors.Is(err, domain.ErrInvalidID):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid sweet id"})
	case errors.Is(err, domain.ErrOutOfStock):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Sweet is out of stock"})
	case errors.Is(err, domain.ErrSweetNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{Error: "sweet does not exist"})
	default:
		return err // falls through to the global error handler → 500
	}
}
