// Package http exposes the order lifecycle over gin routes.
package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/foodorder/go-gin-services/internal/domains/orders/application"
	"github.com/foodorder/go-gin-services/internal/domains/orders/domain"
	"github.com/foodorder/go-gin-services/internal/domains/orders/ports"
	apierrors "github.com/foodorder/go-gin-services/internal/shared/errors"
	"github.com/foodorder/go-gin-services/internal/shared/pagination"
)

// Handler wires HTTP transport with the order service.
type Handler struct {
	service ports.Service
}

// NewHandler creates a Handler backed by the provided service.
func NewHandler(service ports.Service) *Handler {
	return &Handler{service: service}
}

// Register mounts the order routes on the given group. The caller decides
// which middleware (auth, tracing) guards the group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.CreateOrder)
	rg.GET("", h.ListOrders)
	rg.GET("/user/:userId", h.ListByUser)
	rg.GET("/status/:status", h.ListByStatus)
	rg.GET("/stats/summary", h.Stats)
	rg.GET("/stats/user/:userId", h.UserStats)
	rg.PATCH("/bulk/status", h.BulkUpdateStatus)
	rg.GET("/:id", h.GetOrder)
	rg.PATCH("/:id/status", h.UpdateStatus)
	rg.PATCH("/:id", h.UpdateQuantity)
	rg.DELETE("/:id", h.DeleteOrder)
}

// CreateOrder handles POST /orders.
func (h *Handler) CreateOrder(c *gin.Context) {
	var payload createOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		apierrors.Respond(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	fieldErrors := map[string]string{}
	if payload.UserID == "" {
		fieldErrors["user_id"] = "User ID is required"
	}
	if payload.MenuItemID == "" {
		fieldErrors["menu_item_id"] = "Menu item ID is required"
	}
	if payload.Quantity == nil {
		fieldErrors["quantity"] = "Quantity is required"
	}
	if payload.TotalPrice == nil {
		fieldErrors["total_price"] = "Total price is required"
	}
	if len(fieldErrors) > 0 {
		apierrors.Respond(c, apierrors.NewValidationProblem(fieldErrors))
		return
	}

	order, err := h.service.PlaceOrder(c.Request.Context(), ports.PlaceOrderInput{
		UserID:     payload.UserID,
		MenuItemID: payload.MenuItemID,
		Quantity:   *payload.Quantity,
		TotalPrice: *payload.TotalPrice,
	})
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, orderEnvelope{
		Success: true,
		Message: "Order created successfully",
		Data:    fromDomainOrder(order),
	})
}

// ListOrders handles GET /orders with pagination and allow-listed sorting.
func (h *Handler) ListOrders(c *gin.Context) {
	params := pagination.Parse(c.Request.URL.Query(), "created_at", true, application.SortableFields)
	page, err := h.service.ListOrders(c.Request.Context(), ports.ListOrdersInput{
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
	c.JSON(http.StatusOK, orderListEnvelope{
		Success:    true,
		Data:       fromDomainOrders(page.Orders),
		Pagination: &view,
	})
}

// ListByUser handles GET /orders/user/:userId.
func (h *Handler) ListByUser(c *gin.Context) {
	userID := c.Param("userId")
	orders, err := h.service.ListByUser(c.Request.Context(), userID)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	count := len(orders)
	c.JSON(http.StatusOK, orderListEnvelope{
		Success: true,
		Data:    fromDomainOrders(orders),
		Count:   &count,
		UserID:  userID,
	})
}

// ListByStatus handles GET /orders/status/:status.
func (h *Handler) ListByStatus(c *gin.Context) {
	status := c.Param("status")
	orders, err := h.service.ListByStatus(c.Request.Context(), status)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	count := len(orders)
	c.JSON(http.StatusOK, orderListEnvelope{
		Success: true,
		Data:    fromDomainOrders(orders),
		Count:   &count,
		Status:  status,
	})
}

// GetOrder handles GET /orders/:id.
func (h *Handler) GetOrder(c *gin.Context) {
	order, err := h.service.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderEnvelope{Success: true, Data: fromDomainOrder(order)})
}

// UpdateStatus handles PATCH /orders/:id/status.
func (h *Handler) UpdateStatus(c *gin.Context) {
	var payload updateStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		apierrors.Respond(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	order, err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), payload.Status)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderEnvelope{
		Success: true,
		Message: "Order status updated to " + string(order.Status),
		Data:    fromDomainOrder(order),
	})
}

// UpdateQuantity handles PATCH /orders/:id.
func (h *Handler) UpdateQuantity(c *gin.Context) {
	var payload updateQuantityRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		apierrors.Respond(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	fieldErrors := map[string]string{}
	if payload.Quantity == nil {
		fieldErrors["quantity"] = "Quantity is required"
	}
	if payload.TotalPrice == nil {
		fieldErrors["total_price"] = "Total price is required"
	}
	if len(fieldErrors) > 0 {
		apierrors.Respond(c, apierrors.NewValidationProblem(fieldErrors))
		return
	}
	order, err := h.service.UpdateQuantity(c.Request.Context(), c.Param("id"), *payload.Quantity, *payload.TotalPrice)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderEnvelope{
		Success: true,
		Message: "Order updated successfully",
		Data:    fromDomainOrder(order),
	})
}

// BulkUpdateStatus handles PATCH /orders/bulk/status.
func (h *Handler) BulkUpdateStatus(c *gin.Context) {
	var payload bulkStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		apierrors.Respond(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	updated, err := h.service.BulkUpdateStatus(c.Request.Context(), payload.OrderIDs, payload.Status)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, bulkStatusEnvelope{
		Success:      true,
		Message:      "Orders updated successfully",
		UpdatedCount: updated,
	})
}

// DeleteOrder handles DELETE /orders/:id.
func (h *Handler) DeleteOrder(c *gin.Context) {
	if err := h.service.DeleteOrder(c.Request.Context(), c.Param("id")); err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order deleted successfully"})
}

// Stats handles GET /orders/stats/summary.
func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": statsView{
			TotalOrders:     stats.TotalOrders,
			TotalRevenue:    stats.TotalRevenue,
			StatusBreakdown: fromBreakdown(stats.Breakdown),
		},
	})
}

// UserStats handles GET /orders/stats/user/:userId.
func (h *Handler) UserStats(c *gin.Context) {
	stats, err := h.service.UserStats(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": userStatsView{
			UserID:          stats.UserID,
			TotalOrders:     stats.TotalOrders,
			TotalSpent:      stats.TotalSpent,
			StatusBreakdown: fromBreakdown(stats.Breakdown),
		},
	})
}

// respondServiceError maps service errors onto the problem taxonomy. Every
// taxonomy error is terminal for the request; nothing is retried here.
func (h *Handler) respondServiceError(c *gin.Context, err error) {
	var mismatch *application.PriceMismatchError
	switch {
	case errors.As(err, &mismatch):
		apierrors.Respond(c, apierrors.NewPriceMismatchProblem(mismatch.Expected, mismatch.Received))
	case errors.Is(err, ports.ErrItemUnavailable):
		apierrors.Respond(c, apierrors.ErrReferenceNotFound)
	case errors.Is(err, domain.ErrInvalidStatus):
		apierrors.Respond(c, apierrors.ErrInvalidStatus.WithDetail(err.Error()))
	case errors.Is(err, application.ErrInvalidInput):
		apierrors.Respond(c, apierrors.ErrValidation.WithDetail(err.Error()))
	case errors.Is(err, ports.ErrNotFound):
		apierrors.Respond(c, apierrors.NewNotFoundProblem("order", c.Param("id")))
	default:
		apierrors.Respond(c, apierrors.ErrInternal.WithDetail(err.Error()))
	}
}
