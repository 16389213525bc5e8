package handler

import (
	"net/http"

	"shopstock/internal/middleware"
	"shopstock/internal/service"
	"shopstock/pkg/pagination"
	"shopstock/pkg/response"

	"github.com/gin-gonic/gin"
)

type SupplierOrderHandler struct {
	supplierOrderService service.SupplierOrderService
}

func NewSupplierOrderHandler(supplierOrderService service.SupplierOrderService) *SupplierOrderHandler {
	return &SupplierOrderHandler{supplierOrderService: supplierOrderService}
}

func (h *SupplierOrderHandler) RegisterRoutes(router *gin.RouterGroup) {
	orders := router.Group("/api/supplier-orders")
	{
		orders.GET("", middleware.RequireRole("admin", "staff", "supplier"), h.ListSupplierOrders)
		orders.GET("/:id", middleware.RequireRole("admin", "staff", "supplier"), h.GetSupplierOrder)
		orders.POST("", middleware.RequireRole("admin", "staff"), h.CreateSupplierOrder)
		orders.PUT("/:id", middleware.RequireRole("admin", "staff"), h.UpdateSupplierOrder)
		orders.PATCH("/:id/status", middleware.RequireRole("admin", "staff"), h.UpdateStatus)
	}
}

// ListSupplierOrders lists supplier orders
// @Summary      List supplier orders
// @Tags         supplier-orders
// @Security     BearerAuth
// @Produce      json
// @Param        page      query     int     false  "Page number (default 1)"
// @Param        limit     query     int     false  "Number of items per page (default 20)"
// @Param        status    query     string  false  "Filter by status"
// @Param        supplier  query     string  false  "Filter by supplier ID"
// @Success      200  {object}  response.Response{data=object}
// @Failure      500  {object}  response.Response
// @Router       /api/supplier-orders [get]
func (h *SupplierOrderHandler) ListSupplierOrders(c *gin.Context) {
	p := pagination.Parse(c)

	orders, total, err := h.supplierOrderService.ListSupplierOrders(c.Request.Context(), p.Page, p.Limit, c.Query("status"), c.Query("supplier"))
	if err != nil {
		status := statusFromError(err)
		c.JSON(status, response.Error(status, "Failed to retrieve supplier orders: "+err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, response.Page(orders, total, p)))
}

// GetSupplierOrder returns one supplier order with its items
// @Summary      Get supplier order
// @Tags         supplier-orders
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Supplier Order ID"
// @Success      200  {object}  response.Response{data=service.SupplierOrderResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/supplier-orders/{id} [get]
func (h *SupplierOrderHandler) GetSupplierOrder(c *gin.Context) {
	order, err := h.supplierOrderService.GetSupplierOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		status := statusFromError(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, order))
}

// CreateSupplierOrder saves a purchase and reconciles stock and prices
// @Summary      Create supplier order
// @Description  Persists the order, then walks its lines updating product stock (additive) and purchase price; per-line failures are reported in the reconcile result without aborting the batch
// @Tags         supplier-orders
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateSupplierOrderRequest  true  "Create Supplier Order Payload"
// @Success      201      {object}  response.Response{data=service.CreateSupplierOrderResult}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/supplier-orders [post]
func (h *SupplierOrderHandler) CreateSupplierOrder(c *gin.Context) {
	var req service.CreateSupplierOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	userID := c.GetString("userID")

	result, err := h.supplierOrderService.CreateSupplierOrder(c.Request.Context(), userID, req)
	if err != nil {
		status := statusFromError(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, result))
}

// UpdateSupplierOrder replaces a pending order's item set
// @Summary      Update supplier order
// @Description  Rejected with 409 once the order has been received or cancelled. Replaces the entire item set and recomputes the total
// @Tags         supplier-orders
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                              true  "Supplier Order ID"
// @Param        payload  body      service.UpdateSupplierOrderRequest  true  "Update Supplier Order Payload"
// @Success      200      {object}  response.Response{data=service.SupplierOrderResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/supplier-orders/{id} [put]
func (h *SupplierOrderHandler) UpdateSupplierOrder(c *gin.Context) {
	var req service.UpdateSupplierOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	userID := c.GetString("userID")

	order, err := h.supplierOrderService.UpdateSupplierOrder(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		status := statusFromError(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, order))
}

// UpdateStatus changes a supplier order's status
// @Summary      Update supplier order status
// @Description  Status changes stay available after item edits are closed
// @Tags         supplier-orders
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string               true  "Supplier Order ID"
// @Param        payload  body      updateStatusRequest  true  "New status"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/supplier-orders/{id}/status [patch]
func (h *SupplierOrderHandler) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	userID := c.GetString("userID")

	if err := h.supplierOrderService.UpdateStatus(c.Request.Context(), userID, c.Param("id"), req.Status); err != nil {
		status := statusFromError(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Supplier order status updated"))
}
