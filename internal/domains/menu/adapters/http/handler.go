// Package http exposes the menu catalog over gin routes.
package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/foodorder/go-gin-services/internal/domains/menu/application"
	"github.com/foodorder/go-gin-services/internal/domains/menu/domain"
	"github.com/foodorder/go-gin-services/internal/domains/menu/ports"
	apierrors "github.com/foodorder/go-gin-services/internal/shared/errors"
	"github.com/foodorder/go-gin-services/internal/shared/pagination"
)

// Handler wires HTTP transport with the catalog service.
type Handler struct {
	service ports.Service
}

// NewHandler creates a Handler backed by the provided service.
func NewHandler(service ports.Service) *Handler {
	return &Handler{service: service}
}

// Register mounts the catalog routes. Reads are public so the storefront and
// the order service can browse and verify items; writes go on the protected
// group, which the caller guards with auth middleware.
func (h *Handler) Register(public, protected *gin.RouterGroup) {
	public.GET("", h.ListItems)
	public.GET("/available", h.ListAvailable)
	public.GET("/search/:query", h.Search)
	public.GET("/filter/price", h.FilterByPrice)
	public.GET("/:id", h.GetItem)

	protected.POST("", h.CreateItem)
	protected.POST("/bulk", h.CreateItems)
	protected.PATCH("/bulk/status", h.BulkSetAvailability)
	protected.PUT("/:id", h.UpdateItem)
	protected.PATCH("/:id/status", h.ToggleItem)
	protected.DELETE("/:id", h.DeleteItem)
}

// ListItems handles GET /menu with pagination and allow-listed sorting.
func (h *Handler) ListItems(c *gin.Context) {
	params := pagination.Parse(c.Request.URL.Query(), "name", false, application.SortableFields)
	page, err := h.service.ListItems(c.Request.Context(), ports.ListItemsInput{
		Page:     params.Page,
		Limit:    params.Limit,
		SortBy:   params.SortBy,
		SortDesc: params.SortDesc,
	})
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	view := params.NewView(page.TotalItems)
	c.JSON(http.StatusOK, itemListEnvelope{
		Success:    true,
		Data:       fromDomainItems(page.Items),
		Pagination: &view,
	})
}

// ListAvailable handles GET /menu/available.
func (h *Handler) ListAvailable(c *gin.Context) {
	items, err := h.service.ListAvailable(c.Request.Context())
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	count := len(items)
	c.JSON(http.StatusOK, itemListEnvelope{
		Success: true,
		Data:    fromDomainItems(items),
		Count:   &count,
	})
}

// Search handles GET /menu/search/:query.
func (h *Handler) Search(c *gin.Context) {
	query := c.Param("query")
	items, err := h.service.Search(c.Request.Context(), query)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	count := len(items)
	c.JSON(http.StatusOK, itemListEnvelope{
		Success: true,
		Data:    fromDomainItems(items),
		Count:   &count,
		Query:   query,
	})
}

// FilterByPrice handles GET /menu/filter/price?min=&max=.
func (h *Handler) FilterByPrice(c *gin.Context) {
	min, err := parsePriceBound(c.Query("min"), 0)
	if err != nil {
		apierrors.Respond(c, apierrors.ErrBadRequest.WithDetail("min must be a number"))
		return
	}
	max, err := parsePriceBound(c.Query("max"), 0)
	if err != nil {
		apierrors.Respond(c, apierrors.ErrBadRequest.WithDetail("max must be a number"))
		return
	}
	items, err := h.service.FilterByPrice(c.Request.Context(), min, max)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	count := len(items)
	c.JSON(http.StatusOK, itemListEnvelope{
		Success: true,
		Data:    fromDomainItems(items),
		Count:   &count,
		Filter:  &priceFilterView{MinPrice: min, MaxPrice: max},
	})
}

// GetItem handles GET /menu/:id.
func (h *Handler) GetItem(c *gin.Context) {
	item, err := h.service.GetItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, itemEnvelope{Success: true, Data: fromDomainItem(item)})
}

// CreateItem handles POST /menu.
func (h *Handler) CreateItem(c *gin.Context) {
	var payload itemRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		apierrors.Respond(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	fieldErrors := map[string]string{}
	if payload.Name == nil {
		fieldErrors["name"] = "Name is required"
	}
	if payload.Price == nil {
		fieldErrors["price"] = "Price is required"
	}
	if len(fieldErrors) > 0 {
		apierrors.Respond(c, apierrors.NewValidationProblem(fieldErrors))
		return
	}
	item, err := h.service.CreateItem(c.Request.Context(), toItemInput(payload))
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, itemEnvelope{
		Success: true,
		Message: "Menu item created successfully",
		Data:    fromDomainItem(item),
	})
}

// CreateItems handles POST /menu/bulk.
func (h *Handler) CreateItems(c *gin.Context) {
	var payload bulkItemsRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		apierrors.Respond(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	inputs := make([]ports.ItemInput, 0, len(payload.Items))
	for _, item := range payload.Items {
		inputs = append(inputs, toItemInput(item))
	}
	items, err := h.service.CreateItems(c.Request.Context(), inputs)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	count := len(items)
	c.JSON(http.StatusCreated, itemListEnvelope{
		Success: true,
		Data:    fromDomainItems(items),
		Count:   &count,
	})
}

// UpdateItem handles PUT /menu/:id.
func (h *Handler) UpdateItem(c *gin.Context) {
	var payload itemRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		apierrors.Respond(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	item, err := h.service.UpdateItem(c.Request.Context(), c.Param("id"), toItemInput(payload))
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, itemEnvelope{
		Success: true,
		Message: "Menu item updated successfully",
		Data:    fromDomainItem(item),
	})
}

// ToggleItem handles PATCH /menu/:id/status.
func (h *Handler) ToggleItem(c *gin.Context) {
	item, err := h.service.ToggleItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	message := "Menu item disabled"
	if item.Available {
		message = "Menu item enabled"
	}
	c.JSON(http.StatusOK, itemEnvelope{
		Success: true,
		Message: message,
		Data:    fromDomainItem(item),
	})
}

// DeleteItem handles DELETE /menu/:id.
func (h *Handler) DeleteItem(c *gin.Context) {
	if err := h.service.DeleteItem(c.Request.Context(), c.Param("id")); err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Menu item deleted successfully"})
}

// BulkSetAvailability handles PATCH /menu/bulk/status.
func (h *Handler) BulkSetAvailability(c *gin.Context) {
	var payload bulkAvailabilityRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		apierrors.Respond(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	if payload.Available == nil {
		apierrors.Respond(c, apierrors.NewValidationProblem(map[string]string{
			"status": "Status is required",
		}))
		return
	}
	updated, err := h.service.BulkSetAvailability(c.Request.Context(), payload.IDs, *payload.Available)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"message":       "Menu items updated successfully",
		"updated_count": updated,
	})
}

func (h *Handler) respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, application.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidName),
		errors.Is(err, domain.ErrInvalidPrice),
		errors.Is(err, domain.ErrInvalidImageURL):
		apierrors.Respond(c, apierrors.ErrValidation.WithDetail(err.Error()))
	case errors.Is(err, ports.ErrNotFound):
		apierrors.Respond(c, apierrors.NewNotFoundProblem("menu item", c.Param("id")))
	default:
		apierrors.Respond(c, apierrors.ErrInternal.WithDetail(err.Error()))
	}
}

func parsePriceBound(raw string, fallback float64) (float64, error) {
	if raw == "" {
		return fallback, nil
	}
	return strconv.ParseFloat(raw, 64)
}
