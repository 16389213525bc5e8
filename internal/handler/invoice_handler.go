package handler

import (
	"net/http"

	"shopstock/internal/invoice"
	"shopstock/internal/middleware"
	"shopstock/internal/service"
	"shopstock/pkg/response"

	"github.com/gin-gonic/gin"
)

type InvoiceHandler struct {
	invoiceService service.InvoiceService
}

func NewInvoiceHandler(invoiceService service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

func (h *InvoiceHandler) RegisterRoutes(router *gin.RouterGroup) {
	orders := router.Group("/api/orders")
	{
		orders.GET("/:id/invoice", middleware.RequireRole("admin", "staff"), h.GetInvoice)
		orders.GET("/:id/share-link", middleware.RequireRole("admin", "staff"), h.GetShareLink)
	}
}

// GetInvoice renders an order's invoice document
// @Summary      Render invoice
// @Description  Renders the HTML invoice for an order. Pass download=true to receive it as an attachment
// @Tags         invoices
// @Security     BearerAuth
// @Produce      html
// @Param        id        path      string  true   "Order ID"
// @Param        lang      query     string  false  "Invoice language: en or ar (default en)"
// @Param        download  query     bool    false  "Serve as file attachment"
// @Success      200  {string}  string
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/orders/{id}/invoice [get]
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	lang := invoice.Language(c.DefaultQuery("lang", string(invoice.LangEnglish)))

	rendered, err := h.invoiceService.RenderInvoice(c.Request.Context(), c.Param("id"), lang)
	if err != nil {
		status := statusFromError(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	if c.Query("download") == "true" {
		c.Header("Content-Disposition", `attachment; filename="`+rendered.Filename+`"`)
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(rendered.Document))
}

// GetShareLink builds a WhatsApp deep link carrying the invoice summary
// @Summary      Get WhatsApp share link
// @Description  Builds a wa.me link pre-filled with the invoice summary. The client's stored phone is used unless ?phone= overrides it
// @Tags         invoices
// @Security     BearerAuth
// @Produce      json
// @Param        id     path      string  true   "Order ID"
// @Param        lang   query     string  false  "Message language: en or ar (default en)"
// @Param        phone  query     string  false  "Recipient phone override"
// @Success      200  {object}  response.Response{data=object}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/orders/{id}/share-link [get]
func (h *InvoiceHandler) GetShareLink(c *gin.Context) {
	lang := invoice.Language(c.DefaultQuery("lang", string(invoice.LangEnglish)))

	link, err := h.invoiceService.ShareLink(c.Request.Context(), c.Param("id"), lang, c.Query("phone"))
	if err != nil {
		status := statusFromError(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"link": link}))
}
